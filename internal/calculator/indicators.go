package calculator

import "StockSentinel/internal/model"

// Indicator windows.
const (
	ShortMAPeriod   = 50
	LongMAPeriod    = 200
	EMAPeriod       = 20
	MACDFast        = 12
	MACDSlow        = 26
	MACDSignal      = 9
	RSIPeriod       = 14
	BollingerPeriod = 20
	BollingerK      = 2.0
	VolumeAvgPeriod = 10
)

// Compute derives every indicator column from the series. Columns are
// aligned to the bars and fully recomputed on each call.
func Compute(series model.PriceSeries) model.IndicatorSet {
	closes := series.Closes()
	volumes := series.Volumes()

	macd, signal := MACD(closes, MACDFast, MACDSlow, MACDSignal)
	upper, middle, lower := Bollinger(closes, BollingerPeriod, BollingerK)
	volAvg := SMA(volumes, VolumeAvgPeriod)

	return model.IndicatorSet{
		SMA50:           SMA(closes, ShortMAPeriod),
		SMA200:          SMA(closes, LongMAPeriod),
		EMA20:           EMA(closes, EMAPeriod),
		EMA12:           EMA(closes, MACDFast),
		EMA26:           EMA(closes, MACDSlow),
		RSI14:           RSI(closes, RSIPeriod),
		MACD:            macd,
		SignalLine:      signal,
		BollingerUpper:  upper,
		BollingerMiddle: middle,
		BollingerLower:  lower,
		Volume10dAvg:    volAvg,
		VolumeRatio:     VolumeRatio(volumes, volAvg),
	}
}
