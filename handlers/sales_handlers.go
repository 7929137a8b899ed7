package handlers

import (
	"github.com/gofiber/fiber/v2"

	"salesdash/analytics"
	"salesdash/models"
	"salesdash/utils"
)

const maxPageSize = 500

// HandleGetOptions returns the distinct values of each filter dimension.
// GET /api/v1/options
func (h *Handlers) HandleGetOptions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": h.options})
}

// HandleGetSummary returns the KPIs and both aggregations for a selection.
// GET /api/v1/summary?city=...&customer_type=...&gender=...
func (h *Handlers) HandleGetSummary(c *fiber.Ctx) error {
	sel, view, err := h.selectedView(c)
	if err != nil {
		return h.badSelection(c, err)
	}

	kpis := analytics.ComputeKPIs(view)
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"selection":     selectedOptions(h.options, sel),
			"kpis":          kpis.Response(),
			"byProductLine": analytics.AggregateByProductLine(view),
			"byHour":        analytics.AggregateByHour(view),
		},
	})
}

// HandleListRecords lists the filtered sales rows, paginated.
// GET /api/v1/records?page=1&pageSize=50
func (h *Handlers) HandleListRecords(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 50)
	if page < 1 || pageSize < 1 || pageSize > maxPageSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "page must be >= 1 and pageSize between 1 and 500"})
	}

	_, view, err := h.selectedView(c)
	if err != nil {
		return h.badSelection(c, err)
	}

	pagination := utils.CreatePagination(len(view), page, pageSize)
	start, end := utils.PageBounds(len(view), pagination)

	return c.JSON(fiber.Map{"success": true, "data": models.PaginatedRecordsResponse{
		Items:      view[start:end],
		Pagination: pagination,
	}})
}
