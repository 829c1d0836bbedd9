package observer

import (
	"fmt"

	"StockSentinel/internal/calculator"
	"StockSentinel/internal/model"
)

const (
	trendBars      = 90
	levelBars      = 60
	upsideFactor   = 1.05
	strongUpside   = 1.12
	profitBooking  = 1.08
	resistanceRank = 0.9
	supportRank    = 0.1
)

// TrendLabel buckets a percentage change over the trend window.
func TrendLabel(pct float64) string {
	switch {
	case pct > 20:
		return "Strong bullish momentum in the last 3 months"
	case pct > 10:
		return "Bullish momentum in the last 3 months"
	case pct > 5:
		return "Moderately bullish in the last 3 months"
	case pct > -5:
		return "Sideways movement in the last 3 months"
	case pct > -10:
		return "Moderately bearish in the last 3 months"
	case pct > -20:
		return "Bearish momentum in the last 3 months"
	default:
		return "Strong bearish momentum in the last 3 months"
	}
}

// Enhance derives the narrative observations: three-month trend, volume
// surge, breakout level and profit booking zone.
func Enhance(series model.PriceSeries, ind model.IndicatorSet) model.EnhancedObservations {
	var e model.EnhancedObservations
	n := series.Len()
	if n == 0 {
		return e
	}
	closes := series.Closes()
	price := closes[n-1]

	start := n - trendBars
	if start < 0 {
		start = 0
	}
	e.TrendChangePct = (price - closes[start]) / closes[start] * 100
	e.Trend = TrendLabel(e.TrendChangePct)

	e.VolumeSurge = "N/A"
	if avg, ok := ind.Volume10dAvg.Last(); ok && avg != 0 {
		recent := calculator.Mean(calculator.Tail(series.Volumes(), recentVolumeBars))
		e.VolumeSurgePct = (recent - avg) / avg * 100
		e.VolumeSurge = fmt.Sprintf("%.0f%% compared to the 10-day average", e.VolumeSurgePct)
	}

	// Percentile only fails on empty input, which n > 0 rules out.
	resistance, _ := calculator.Percentile(calculator.Tail(series.Highs(), levelBars), resistanceRank)
	support, _ := calculator.Percentile(calculator.Tail(series.Lows(), levelBars), supportRank)
	e.Resistance = calculator.Round2(resistance)
	e.Support = calculator.Round2(support)
	e.UpsideTarget = calculator.Round2(price * upsideFactor)
	e.StrongUpsideTarget = calculator.Round2(price * strongUpside)
	e.ProfitBooking = calculator.Round2(price * profitBooking)

	e.BreakoutPossibility = fmt.Sprintf("If %.2f is broken, next target %.2f", e.Resistance, e.UpsideTarget)
	e.ProfitBookingZone = fmt.Sprintf("%.2f+", e.ProfitBooking)
	return e
}
