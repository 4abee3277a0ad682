package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"
)

const (
	chartWidth      = 48
	chartHeight     = 8
	sparklineWidth  = 30
	sparklineHeight = 3
)

var barStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
}

// numericFields extracts the numeric entries of a backend report row in a
// stable order. The report schema is opaque to the client, so anything that
// arrives as a JSON number is chartable and everything else is prose.
func numericFields(row map[string]any) ([]string, []float64) {
	keys := make([]string, 0, len(row))
	for k, v := range row {
		if _, ok := toFloat(v); ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	values := make([]float64, len(keys))
	for i, k := range keys {
		values[i], _ = toFloat(row[k])
	}
	return keys, values
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// labelFor picks a human label for a report row: the backend tags per-person
// rows with "name" and per-period rows with "period".
func labelFor(row map[string]any, fallback string) string {
	for _, key := range []string{"name", "period", "label"} {
		if v, ok := row[key].(string); ok && v != "" {
			return v
		}
	}
	return fallback
}

// renderBars draws one grouped bar chart from report rows, one bar group per
// row, one bar per numeric field.
func renderBars(rows []map[string]any) string {
	if len(rows) == 0 {
		return ""
	}

	bc := barchart.New(chartWidth, chartHeight)
	pushed := 0
	for i, row := range rows {
		keys, values := numericFields(row)
		if len(keys) == 0 {
			continue
		}
		pushed++
		bar := barchart.BarData{Label: labelFor(row, fmt.Sprintf("#%d", i+1))}
		for j, k := range keys {
			bar.Values = append(bar.Values, barchart.BarValue{
				Name:  k,
				Value: values[j],
				Style: barStyles[j%len(barStyles)],
			})
		}
		bc.Push(bar)
	}
	if pushed == 0 {
		return ""
	}
	bc.Draw()
	return bc.View()
}

// renderTrend draws a sparkline from one numeric field across period rows.
func renderTrend(rows []map[string]any) string {
	if len(rows) == 0 {
		return ""
	}

	// Chart the first numeric field the rows agree on.
	keys, _ := numericFields(rows[0])
	if len(keys) == 0 {
		return ""
	}
	field := keys[0]

	spark := sparkline.New(sparklineWidth, sparklineHeight)
	for _, row := range rows {
		if v, ok := toFloat(row[field]); ok {
			spark.Push(v)
		}
	}
	return labelStyle.Render("  "+field+": ") + "\n" + spark.View()
}

// renderReportText lists the non-numeric report fields as label/value lines.
func renderReportText(spec map[string]any) string {
	keys := make([]string, 0, len(spec))
	for k, v := range spec {
		if _, numeric := toFloat(v); numeric {
			continue
		}
		if _, ok := v.(string); ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(labelStyle.Render("  "+k+": ") + valueStyle.Render(spec[k].(string)) + "\n")
	}
	return b.String()
}
