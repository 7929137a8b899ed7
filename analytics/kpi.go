package analytics

import (
	"math"

	"github.com/shopspring/decimal"

	"salesdash/models"
)

// ComputeKPIs derives total sales, average rating and average sale for a view.
// An empty view has no averages: they are reported as zero with HasData unset.
func ComputeKPIs(view []models.SalesRecord) models.KPISnapshot {
	snap := models.KPISnapshot{Transactions: len(view)}
	if len(view) == 0 {
		return snap
	}

	total := decimal.Zero
	ratings := 0.0
	for _, r := range view {
		total = total.Add(r.Total)
		ratings += r.Rating
	}

	n := float64(len(view))
	snap.HasData = true
	snap.TotalSales = total.IntPart()
	snap.AvgRating = round2(ratings / n)
	snap.AvgSale = round2(total.InexactFloat64() / n)
	snap.Stars = int(math.RoundToEven(snap.AvgRating))
	return snap
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
