package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumericFields(t *testing.T) {
	keys, values := numericFields(map[string]any{
		"chemi_score": float64(87),
		"name":        "철수",
		"messages":    120,
		"note":        "말이 많음",
	})
	assert.Equal(t, []string{"chemi_score", "messages"}, keys)
	assert.Equal(t, []float64{87, 120}, values)
}

func TestLabelFor(t *testing.T) {
	assert.Equal(t, "철수", labelFor(map[string]any{"name": "철수"}, "1"))
	assert.Equal(t, "2025-01", labelFor(map[string]any{"period": "2025-01"}, "1"))
	assert.Equal(t, "3", labelFor(map[string]any{"score": 1.0}, "3"))
}

func TestRenderBarsEmpty(t *testing.T) {
	assert.Empty(t, renderBars(nil))
	// Rows without numeric fields have nothing to chart.
	assert.Empty(t, renderBars([]map[string]any{{"name": "철수"}}))
}
