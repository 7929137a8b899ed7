package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"salesdash/models"
)

// AggregateByProductLine sums Total per product line, ordered by ascending
// total. Equal totals keep alphabetical order.
func AggregateByProductLine(view []models.SalesRecord) []models.CategoryTotal {
	sums := map[string]decimal.Decimal{}
	for _, r := range view {
		sums[r.ProductLine] = sums[r.ProductLine].Add(r.Total)
	}

	out := make([]models.CategoryTotal, 0, len(sums))
	for line, total := range sums {
		out = append(out, models.CategoryTotal{ProductLine: line, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c < 0
		}
		return out[i].ProductLine < out[j].ProductLine
	})
	return out
}

// AggregateByHour sums Total per hour of day, ordered by hour. Hours without
// sales are omitted.
func AggregateByHour(view []models.SalesRecord) []models.HourTotal {
	sums := map[int]decimal.Decimal{}
	for _, r := range view {
		sums[r.Hour] = sums[r.Hour].Add(r.Total)
	}

	out := make([]models.HourTotal, 0, len(sums))
	for hour, total := range sums {
		out = append(out, models.HourTotal{Hour: hour, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}

// Summarize computes the KPIs and both aggregations of a filtered view.
func Summarize(view []models.SalesRecord) models.DashboardSummary {
	return models.DashboardSummary{
		KPIs:          ComputeKPIs(view),
		ByProductLine: AggregateByProductLine(view),
		ByHour:        AggregateByHour(view),
	}
}
