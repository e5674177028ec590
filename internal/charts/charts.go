package charts

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
)

// CategoryPieChart renders the per-category totals as a PNG pie chart.
// Returns nil bytes when there is nothing to draw.
func CategoryPieChart(totals map[string]float64, currency string) ([]byte, error) {
	if len(totals) == 0 {
		return nil, nil
	}

	total := 0.0
	for _, amount := range totals {
		total += amount
	}
	if total <= 0 {
		return nil, nil
	}

	categories := make([]string, 0, len(totals))
	for name := range totals {
		categories = append(categories, name)
	}
	sort.Slice(categories, func(i, j int) bool {
		return totals[categories[i]] > totals[categories[j]]
	})

	values := make([]chart.Value, 0, len(categories))
	for _, name := range categories {
		amount := totals[name]
		percentage := amount / total * 100
		// Slices under 1% clutter the chart more than they inform.
		if percentage <= 1.0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %.2f %s (%.1f%%)", name, amount, currency, percentage),
			Value: amount,
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		})
	}
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Title:  "Expenses by category",
		Width:  800,
		Height: 800,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render category pie chart: %w", err)
	}
	return buffer.Bytes(), nil
}
