package models

import "github.com/shopspring/decimal"

// KPISnapshot holds the headline numbers for a filtered view.
type KPISnapshot struct {
	TotalSales   int64   `json:"totalSales"`
	AvgRating    float64 `json:"avgRating"`
	AvgSale      float64 `json:"avgSale"`
	Stars        int     `json:"stars"`
	Transactions int     `json:"transactions"`
	// HasData is false when the view is empty and the averages are undefined.
	HasData bool `json:"hasData"`
}

// CategoryTotal is the summed sales of one product line.
type CategoryTotal struct {
	ProductLine string          `json:"productLine"`
	Total       decimal.Decimal `json:"total"`
}

// HourTotal is the summed sales of one hour of the day.
type HourTotal struct {
	Hour  int             `json:"hour"`
	Total decimal.Decimal `json:"total"`
}

// DashboardSummary is everything the dashboard shows for one selection.
type DashboardSummary struct {
	KPIs          KPISnapshot     `json:"kpis"`
	ByProductLine []CategoryTotal `json:"byProductLine"`
	ByHour        []HourTotal     `json:"byHour"`
}

// KPIResponse is the JSON shape of KPISnapshot; undefined averages are null.
type KPIResponse struct {
	TotalSales   int64    `json:"totalSales"`
	AvgRating    *float64 `json:"avgRating"`
	AvgSale      *float64 `json:"avgSale"`
	Stars        int      `json:"stars"`
	Transactions int      `json:"transactions"`
}

// Response converts the snapshot for the JSON API.
func (k KPISnapshot) Response() KPIResponse {
	resp := KPIResponse{
		TotalSales:   k.TotalSales,
		Stars:        k.Stars,
		Transactions: k.Transactions,
	}
	if k.HasData {
		rating, sale := k.AvgRating, k.AvgSale
		resp.AvgRating = &rating
		resp.AvgSale = &sale
	}
	return resp
}
