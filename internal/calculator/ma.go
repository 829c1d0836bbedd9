package calculator

import (
	"math"

	"StockSentinel/internal/model"
)

// SMA returns the per-bar simple moving average. Cells before the window
// fills are not available.
func SMA(values []float64, period int) model.Column {
	out := model.NewColumn(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	buf := make([]float64, period)
	for i := period - 1; i < len(values); i++ {
		out[i], _ = windowMeanStd(values[i-period+1:i+1], buf)
	}
	return out
}

// EMA returns the exponential moving average with alpha = 2/(span+1), seeded
// by the first available value and run over the whole series.
func EMA(values []float64, span int) model.Column {
	out := model.NewColumn(len(values))
	if span <= 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1.0)

	start := -1
	for i, v := range values {
		if !math.IsNaN(v) {
			start = i
			break
		}
	}
	if start < 0 {
		return out
	}

	prev := values[start]
	out[start] = prev
	for i := start + 1; i < len(values); i++ {
		v := values[i]
		if !math.IsNaN(v) {
			// incremental form keeps a constant input exactly constant
			prev += alpha * (v - prev)
		}
		out[i] = prev
	}
	return out
}
