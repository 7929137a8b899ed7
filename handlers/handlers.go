package handlers

import (
	"log/slog"
	"time"

	"salesdash/analytics"
	"salesdash/config"
	"salesdash/insights"
	"salesdash/models"
)

// Handlers serves the dashboard over one loaded sales table.
// The table is shared read-only between requests.
type Handlers struct {
	table    []models.SalesRecord
	options  models.FilterOptions
	cfg      config.Config
	logger   *slog.Logger
	insights insights.Generator
	loadedAt time.Time
	now      func() time.Time
}

// New builds the handlers. gen may be nil, which disables insights.
func New(table []models.SalesRecord, loadedAt time.Time, cfg config.Config, logger *slog.Logger, gen insights.Generator) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		table:    table,
		options:  analytics.Options(table),
		cfg:      cfg,
		logger:   logger,
		insights: gen,
		loadedAt: loadedAt,
		now:      time.Now,
	}
}

// Options returns the filter values observed in the table.
func (h *Handlers) Options() models.FilterOptions {
	return h.options
}
