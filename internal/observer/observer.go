// Package observer turns indicator columns into display statements.
package observer

import (
	"fmt"

	"StockSentinel/internal/calculator"
	"StockSentinel/internal/model"
)

const (
	volatilityThreshold = 2.0 // percent
	volumeSurgeFactor   = 1.5
	recentVolumeBars    = 5
)

// Generate evaluates each rule independently against the latest bar and
// returns the observations in display order. An empty series yields none.
func Generate(series model.PriceSeries, ind model.IndicatorSet) []model.Observation {
	n := series.Len()
	if n == 0 {
		return nil
	}
	last := n - 1
	price := series.Last().Close

	var out []model.Observation

	if obs, ok := maPosition(price, ind, last); ok {
		out = append(out, obs)
	}
	if obs, ok := maCross(ind, last); ok {
		out = append(out, obs)
	}
	out = append(out, rsiZone(ind, last))
	out = append(out, macdBias(ind))

	if vol, err := calculator.Volatility(series.Closes()); err == nil && vol > volatilityThreshold {
		v := vol
		out = append(out, model.Observation{
			Kind:  model.ObsVolatility,
			Text:  fmt.Sprintf("High volatility observed (%.2f%%)", vol),
			Value: &v,
		})
	}

	volumes := series.Volumes()
	recent := calculator.Mean(calculator.Tail(volumes, recentVolumeBars))
	if recent > calculator.Mean(volumes)*volumeSurgeFactor {
		out = append(out, model.Observation{Kind: model.ObsVolume, Text: "Trading volume is above average"})
	}
	return out
}

// Texts returns the display strings of obs.
func Texts(obs []model.Observation) []string {
	out := make([]string, 0, len(obs))
	for _, o := range obs {
		out = append(out, o.Text)
	}
	return out
}

func maPosition(price float64, ind model.IndicatorSet, i int) (model.Observation, bool) {
	sma50, ok50 := ind.SMA50.At(i)
	sma200, ok200 := ind.SMA200.At(i)
	if !ok50 || !ok200 {
		return model.Observation{}, false
	}
	switch {
	case price > sma50 && price > sma200:
		return model.Observation{Kind: model.ObsMAPosition, Text: "Trading above 50-day and 200-day moving averages"}, true
	case price < sma50 && price < sma200:
		return model.Observation{Kind: model.ObsMAPosition, Text: "Trading below 50-day and 200-day moving averages"}, true
	}
	return model.Observation{}, false
}

// maCross compares the averages at bars i-1 and i. The two branches need
// opposite strict orderings at bar i, so at most one can fire.
func maCross(ind model.IndicatorSet, i int) (model.Observation, bool) {
	prevShort, ok1 := ind.SMA50.At(i - 1)
	prevLong, ok2 := ind.SMA200.At(i - 1)
	curShort, ok3 := ind.SMA50.At(i)
	curLong, ok4 := ind.SMA200.At(i)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return model.Observation{}, false
	}
	switch {
	case prevShort <= prevLong && curShort > curLong:
		return model.Observation{Kind: model.ObsMACross, Text: "Golden Cross detected (50-day MA crossed above 200-day MA)"}, true
	case prevShort >= prevLong && curShort < curLong:
		return model.Observation{Kind: model.ObsMACross, Text: "Death Cross detected (50-day MA crossed below 200-day MA)"}, true
	}
	return model.Observation{}, false
}

func rsiZone(ind model.IndicatorSet, i int) model.Observation {
	rsi, ok := ind.RSI14.At(i)
	obs := model.Observation{Kind: model.ObsRSIZone}
	if ok {
		v := rsi
		obs.Value = &v
	}
	switch calculator.ClassifyRSI(rsi, ok) {
	case model.RSIOverbought:
		obs.Text = "RSI indicates overbought conditions"
	case model.RSIOversold:
		obs.Text = "RSI indicates oversold conditions"
	default:
		obs.Text = "RSI indicates neutral momentum"
	}
	return obs
}

func macdBias(ind model.IndicatorSet) model.Observation {
	if calculator.Bias(ind.MACD, ind.SignalLine) == model.MACDBullish {
		return model.Observation{Kind: model.ObsMACDBias, Text: "MACD shows bullish momentum"}
	}
	return model.Observation{Kind: model.ObsMACDBias, Text: "MACD shows bearish momentum"}
}
