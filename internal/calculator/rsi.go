package calculator

import "StockSentinel/internal/model"

// RSI computes the relative strength index for every bar from the simple
// rolling mean of gains and losses over the previous period deltas.
// The first period bars are not available.
func RSI(closes []float64, period int) model.Column {
	out := model.NewColumn(len(closes))
	if period <= 0 || len(closes) < period+1 {
		return out
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i] = change
		} else if change < 0 {
			losses[i] = -change
		}
	}

	// Window sums are recomputed per bar so a flat stretch yields exact zeros.
	for i := period; i < len(closes); i++ {
		var sumGain, sumLoss float64
		for j := i - period + 1; j <= i; j++ {
			sumGain += gains[j]
			sumLoss += losses[j]
		}
		out[i] = rsiFromAverages(sumGain/float64(period), sumLoss/float64(period))
	}
	return out
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50.0 // flat window
		}
		return 100.0
	}
	rsi := 100.0 - 100.0/(1.0+avgGain/avgLoss)
	if rsi < 0 {
		return 0
	}
	if rsi > 100 {
		return 100
	}
	return rsi
}

// ClassifyRSI buckets an RSI reading. An unavailable reading is neutral.
func ClassifyRSI(rsi float64, ok bool) model.RSIZone {
	switch {
	case !ok:
		return model.RSINeutral
	case rsi > 70:
		return model.RSIOverbought
	case rsi < 30:
		return model.RSIOversold
	default:
		return model.RSINeutral
	}
}
