// Package dataset loads the supermarket sales table and keeps it for the
// lifetime of the process.
package dataset

import (
	"context"
	"sync"
	"time"

	"salesdash/models"
)

// Source reads the full sales table.
type Source interface {
	Load(ctx context.Context) ([]models.SalesRecord, error)
}

// Cache memoizes the first Load of its source. The returned table is shared
// and must be treated as read-only.
type Cache struct {
	source Source

	once     sync.Once
	records  []models.SalesRecord
	err      error
	loadedAt time.Time
}

func NewCache(source Source) *Cache {
	return &Cache{source: source}
}

// Get loads the table on first use and returns the stored result afterwards.
// A failed load is remembered as well; there is no retry.
func (c *Cache) Get(ctx context.Context) ([]models.SalesRecord, error) {
	c.once.Do(func() {
		c.records, c.err = c.source.Load(ctx)
		c.loadedAt = time.Now()
	})
	return c.records, c.err
}

// LoadedAt is the zero time until Get has run.
func (c *Cache) LoadedAt() time.Time {
	return c.loadedAt
}
