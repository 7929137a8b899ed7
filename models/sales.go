package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesRecord is one row of the supermarket sales sheet.
type SalesRecord struct {
	InvoiceID    string          `json:"invoiceId,omitempty"`
	Branch       string          `json:"branch,omitempty"`
	City         string          `json:"city"`
	CustomerType string          `json:"customerType"`
	Gender       string          `json:"gender"`
	ProductLine  string          `json:"productLine"`
	Quantity     int             `json:"quantity,omitempty"`
	Total        decimal.Decimal `json:"total"`
	Date         string          `json:"date,omitempty"`
	Time         time.Time       `json:"-"`
	Payment      string          `json:"payment,omitempty"`
	Rating       float64         `json:"rating"`
	// Hour is derived from Time when the sheet is loaded.
	Hour int `json:"hour"`
}

// Clock returns the time-of-day as HH:MM:SS.
func (r SalesRecord) Clock() string {
	return r.Time.Format("15:04:05")
}

// Selection holds the allowed values for each filter dimension.
// A nil set keeps every observed value; an empty non-nil set keeps nothing.
type Selection struct {
	Cities        map[string]bool
	CustomerTypes map[string]bool
	Genders       map[string]bool
}

// FilterOptions lists the distinct values observed in the full table,
// in the order they first appear.
type FilterOptions struct {
	Cities        []string `json:"cities"`
	CustomerTypes []string `json:"customerTypes"`
	Genders       []string `json:"genders"`
}
