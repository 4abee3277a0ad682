package tui

import (
	"github.com/chattolabs/chatto/internal/analysis"
	"github.com/chattolabs/chatto/internal/api"
)

// renderValue shows a parameter value, rendering the blank and the date
// sentinels muted so they read as "not set" rather than user input.
func renderValue(key analysis.FieldKey, value string) string {
	switch key {
	case analysis.FieldDateFrom:
		if value == "" || value == api.DateFromStart {
			return mutedStyle.Render(api.DateFromStart)
		}
	case analysis.FieldDateTo:
		if value == "" || value == api.DateUntilNow {
			return mutedStyle.Render(api.DateUntilNow)
		}
	default:
		if value == "" || value == api.NotProvided {
			return mutedStyle.Render(api.NotProvided)
		}
	}
	return valueStyle.Render(value)
}

// renderForm renders the per-kind parameter form. cursor selects the
// highlighted row (-1 for none, used by the read-only share view); editing
// replaces the highlighted row's value with the live input.
func renderForm(kind api.Kind, params api.Params, cursor int, editing string) string {
	out := ""
	for i, key := range analysis.Fields(kind) {
		label := labelStyle.Render(analysis.Label(key))
		value := renderValue(key, analysis.Get(params, key))
		if i == cursor {
			if editing != "" {
				value = editing
			}
			out += selectedStyle.Render("▸ "+analysis.Label(key)) + "  " + value + "\n"
			continue
		}
		out += "  " + label + "  " + value + "\n"
	}
	return out
}
