package handlers

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"salesdash/analytics"
	"salesdash/charts"
	"salesdash/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

type choice struct {
	Value    string
	Selected bool
}

type dashboardPage struct {
	Cities           []choice
	CustomerTypes    []choice
	Genders          []choice
	TotalSales       string
	AvgRating        string
	AvgSale          string
	Stars            string
	ProductLineChart template.HTML
	HourlyChart      template.HTML
}

func choices(values []string, set map[string]bool) []choice {
	out := make([]choice, 0, len(values))
	for _, v := range values {
		out = append(out, choice{Value: v, Selected: set == nil || set[v]})
	}
	return out
}

// HandleDashboard renders the dashboard page for the selection in the query string.
// GET /
func (h *Handlers) HandleDashboard(c *fiber.Ctx) error {
	sel, view, err := h.selectedView(c)
	if err != nil {
		return h.badSelection(c, err)
	}

	kpis := analytics.ComputeKPIs(view)
	productChart, err := charts.ProductLineChart(analytics.AggregateByProductLine(view))
	if err != nil {
		h.logger.Error("product line chart failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to render charts")
	}
	hourlyChart, err := charts.HourlyChart(analytics.AggregateByHour(view))
	if err != nil {
		h.logger.Error("hourly chart failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to render charts")
	}

	page := dashboardPage{
		Cities:        choices(h.options.Cities, sel.Cities),
		CustomerTypes: choices(h.options.CustomerTypes, sel.CustomerTypes),
		Genders:       choices(h.options.Genders, sel.Genders),
		TotalSales:    utils.FormatThousands(kpis.TotalSales),
		AvgRating:     utils.FormatAverage(kpis.AvgRating, kpis.HasData),
		AvgSale:       utils.FormatAverage(kpis.AvgSale, kpis.HasData),
		Stars:         utils.Stars(kpis.Stars),
		// go-chart output is generated here, not user input.
		ProductLineChart: template.HTML(productChart),
		HourlyChart:      template.HTML(hourlyChart),
	}

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, page); err != nil {
		h.logger.Error("dashboard template failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to render dashboard")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

// HandleProductLineChart returns the product line chart as SVG.
// GET /api/v1/charts/product-line.svg
func (h *Handlers) HandleProductLineChart(c *fiber.Ctx) error {
	_, view, err := h.selectedView(c)
	if err != nil {
		return h.badSelection(c, err)
	}
	svg, err := charts.ProductLineChart(analytics.AggregateByProductLine(view))
	return h.sendSVG(c, svg, err)
}

// HandleHourlyChart returns the hourly chart as SVG.
// GET /api/v1/charts/hourly.svg
func (h *Handlers) HandleHourlyChart(c *fiber.Ctx) error {
	_, view, err := h.selectedView(c)
	if err != nil {
		return h.badSelection(c, err)
	}
	svg, err := charts.HourlyChart(analytics.AggregateByHour(view))
	return h.sendSVG(c, svg, err)
}

func (h *Handlers) sendSVG(c *fiber.Ctx, svg []byte, err error) error {
	if err != nil {
		h.logger.Error("chart render failed", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to render chart"})
	}
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(svg)
}
