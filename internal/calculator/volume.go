package calculator

import "StockSentinel/internal/model"

// VolumeRatio divides each bar's volume by its rolling average. Bars with a
// missing or zero average are not available.
func VolumeRatio(volumes []float64, avg model.Column) model.Column {
	out := model.NewColumn(len(volumes))
	for i, v := range volumes {
		a, ok := avg.At(i)
		if !ok || a == 0 {
			continue
		}
		out[i] = v / a
	}
	return out
}
