package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"salesdash/analytics"
	"salesdash/insights"
	"salesdash/metrics"
	"salesdash/models"
)

const insightTimeout = 30 * time.Second

// HandleInsights asks Gemini to narrate the summary of the current selection.
// POST /api/v1/insights?city=...
func (h *Handlers) HandleInsights(c *fiber.Ctx) error {
	if h.insights == nil {
		metrics.InsightRequestsTotal.WithLabelValues("disabled").Inc()
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"success": false, "message": "Insights are not configured"})
	}

	var req models.InsightRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body"})
		}
	}

	sel, view, err := h.selectedView(c)
	if err != nil {
		return h.badSelection(c, err)
	}

	summary := analytics.Summarize(view)
	prompt := insights.BuildPrompt(summary, selectedOptions(h.options, sel), req.Question)

	ctx, cancel := context.WithTimeout(c.UserContext(), insightTimeout)
	defer cancel()

	text, err := h.insights.Generate(ctx, prompt)
	if err != nil {
		metrics.InsightRequestsTotal.WithLabelValues("error").Inc()
		h.logger.Error("gemini request failed", "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"success": false, "message": "Failed to generate insights"})
	}
	metrics.InsightRequestsTotal.WithLabelValues("ok").Inc()

	return c.JSON(fiber.Map{"success": true, "data": models.InsightResponse{
		Model:   h.insights.Model(),
		Text:    text,
		Summary: summary,
	}})
}
