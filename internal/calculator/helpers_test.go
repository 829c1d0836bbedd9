package calculator

import (
	"testing"
	"time"

	"StockSentinel/internal/model"

	"github.com/stretchr/testify/require"
)

func seriesFromCloses(t *testing.T, closes []float64) model.PriceSeries {
	t.Helper()
	start := time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)
	bars := make([]model.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = model.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1000,
		}
	}
	s, err := model.NewPriceSeries("TEST", bars)
	require.NoError(t, err)
	return s
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func ramp(n int, from, to float64) []float64 {
	out := make([]float64, n)
	step := (to - from) / float64(n-1)
	for i := range out {
		out[i] = from + step*float64(i)
	}
	return out
}
