package calculator

import "StockSentinel/internal/model"

// MACD returns the MACD line (fast EMA minus slow EMA) and its signal line.
func MACD(closes []float64, fast, slow, signal int) (macd, signalLine model.Column) {
	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)
	macd = model.NewColumn(len(closes))
	for i := range closes {
		f, okF := emaFast.At(i)
		s, okS := emaSlow.At(i)
		if okF && okS {
			macd[i] = f - s
		}
	}
	return macd, EMA(macd, signal)
}

// Bias is Bullish only when MACD is strictly above the signal line at the
// latest bar; ties and missing values read Bearish.
func Bias(macd, signalLine model.Column) model.MACDBias {
	m, okM := macd.Last()
	s, okS := signalLine.Last()
	if okM && okS && m > s {
		return model.MACDBullish
	}
	return model.MACDBearish
}
