// Package charts renders the dashboard bar charts as SVG.
package charts

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"salesdash/models"
)

const (
	Width  = 640
	Height = 420

	ProductLineTitle = "Sales by Product Line"
	HourlyTitle      = "Sales by Hour"
)

var barColor = drawing.ColorFromHex("0083B8")

func transparent() chart.Style {
	return chart.Style{FillColor: drawing.ColorTransparent}
}

func barStyle() chart.Style {
	return chart.Style{FillColor: barColor, StrokeColor: barColor, StrokeWidth: 1}
}

// ProductLineChart draws one horizontal bar per product line, in the order given.
func ProductLineChart(totals []models.CategoryTotal) ([]byte, error) {
	if len(totals) == 0 {
		return Placeholder(ProductLineTitle), nil
	}

	bars := make([]chart.StackedBar, 0, len(totals))
	for _, t := range totals {
		bars = append(bars, chart.StackedBar{
			Name: t.ProductLine,
			Values: []chart.Value{{
				Label: t.Total.StringFixed(2),
				Value: t.Total.InexactFloat64(),
				Style: barStyle(),
			}},
		})
	}

	c := chart.StackedBarChart{
		Title:        ProductLineTitle,
		Width:        Width,
		Height:       Height,
		IsHorizontal: true,
		BarSpacing:   12,
		Background:   chart.Style{Padding: chart.Box{Top: 48, Left: 140, Right: 20, Bottom: 20}, FillColor: drawing.ColorTransparent},
		Canvas:       transparent(),
		Bars:         bars,
	}
	return render(c.Render)
}

// HourlyChart draws one vertical bar per hour, labelled with every hour.
// Hours missing between the first and last one get an empty bar so the axis
// stays linear.
func HourlyChart(totals []models.HourTotal) ([]byte, error) {
	if len(totals) == 0 {
		return Placeholder(HourlyTitle), nil
	}

	hours := hourAxis(totals)
	bars := make([]chart.Value, 0, len(hours))
	top := 0.0
	for _, t := range hours {
		if v := t.Total.InexactFloat64(); v > top {
			top = v
		}
		bars = append(bars, chart.Value{
			Label: strconv.Itoa(t.Hour),
			Value: t.Total.InexactFloat64(),
			Style: barStyle(),
		})
	}

	c := chart.BarChart{
		Title:      HourlyTitle,
		Width:      Width,
		Height:     Height,
		BarWidth:   24,
		Background: chart.Style{Padding: chart.Box{Top: 48}, FillColor: drawing.ColorTransparent},
		Canvas:     transparent(),
		// Bars grow from zero rather than from the smallest value.
		YAxis: chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: axisMax(top)}},
		Bars:  bars,
	}
	return render(c.Render)
}

// hourAxis spans the first to the last hour of totals (sorted by hour),
// with zero totals for the hours in between.
func hourAxis(totals []models.HourTotal) []models.HourTotal {
	first, last := totals[0].Hour, totals[len(totals)-1].Hour
	out := make([]models.HourTotal, 0, last-first+1)
	i := 0
	for h := first; h <= last; h++ {
		if i < len(totals) && totals[i].Hour == h {
			out = append(out, totals[i])
			i++
			continue
		}
		out = append(out, models.HourTotal{Hour: h})
	}
	return out
}

func axisMax(top float64) float64 {
	if top <= 0 {
		return 1
	}
	return top * 1.05
}

func render(fn func(chart.RendererProvider, io.Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := fn(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}

// Placeholder is the SVG shown in place of a chart with no bars.
func Placeholder(title string) []byte {
	return []byte(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
			`<text x="%d" y="32" text-anchor="middle" font-family="sans-serif" font-size="16" font-weight="bold" font-style="italic">%s</text>`+
			`<text x="%d" y="%d" text-anchor="middle" font-family="sans-serif" font-size="14" fill="#888">No data for the current selection</text>`+
			`</svg>`,
		Width, Height, Width, Height, Width/2, html.EscapeString(title), Width/2, Height/2))
}
