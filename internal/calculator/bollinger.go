package calculator

import "StockSentinel/internal/model"

// Bollinger returns upper, middle and lower bands: middle is the period SMA
// and the bands sit k population standard deviations away.
func Bollinger(closes []float64, period int, k float64) (upper, middle, lower model.Column) {
	upper = model.NewColumn(len(closes))
	middle = model.NewColumn(len(closes))
	lower = model.NewColumn(len(closes))
	if period <= 1 || len(closes) < period {
		return upper, middle, lower
	}

	buf := make([]float64, period)
	for i := period - 1; i < len(closes); i++ {
		m, sd := windowMeanStd(closes[i-period+1:i+1], buf)
		middle[i] = m
		upper[i] = m + k*sd
		lower[i] = m - k*sd
	}
	return upper, middle, lower
}

// ClassifyBollinger places a close against the bands. The checks run in
// priority order, so every combination lands in exactly one bucket.
func ClassifyBollinger(close, upper, middle, lower float64) model.BollingerPosition {
	switch {
	case close > upper:
		return model.BollingerAboveUpper
	case close < lower:
		return model.BollingerBelowLower
	case close > middle:
		return model.BollingerUpperHalf
	default:
		return model.BollingerLowerHalf
	}
}

// BollingerPositionAt classifies bar i, or reports N/A while the bands are
// not yet available.
func BollingerPositionAt(close float64, ind model.IndicatorSet, i int) model.BollingerPosition {
	u, okU := ind.BollingerUpper.At(i)
	m, okM := ind.BollingerMiddle.At(i)
	l, okL := ind.BollingerLower.At(i)
	if !okU || !okM || !okL {
		return model.BollingerUnavailable
	}
	return ClassifyBollinger(close, u, m, l)
}
