package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// HandleHealth reports that the table is loaded.
// GET /healthz
func (h *Handlers) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "ok",
		"source":   h.cfg.Source,
		"rows":     len(h.table),
		"loadedAt": h.loadedAt,
	})
}
