package model

import "math"

// Column is a per-bar indicator series aligned with a PriceSeries.
// NaN marks a cell that is not available; zero is a real value.
type Column []float64

// NewColumn returns a column of n unavailable cells.
func NewColumn(n int) Column {
	c := make(Column, n)
	for i := range c {
		c[i] = math.NaN()
	}
	return c
}

// At returns the value at i and whether it is available.
func (c Column) At(i int) (float64, bool) {
	if i < 0 || i >= len(c) || math.IsNaN(c[i]) {
		return 0, false
	}
	return c[i], true
}

// Last returns the most recent value and whether it is available.
func (c Column) Last() (float64, bool) { return c.At(len(c) - 1) }

// IndicatorSet holds every derived column for one analysis run.
type IndicatorSet struct {
	SMA50           Column
	SMA200          Column
	EMA20           Column
	EMA12           Column
	EMA26           Column
	RSI14           Column
	MACD            Column
	SignalLine      Column
	BollingerUpper  Column
	BollingerMiddle Column
	BollingerLower  Column
	Volume10dAvg    Column
	VolumeRatio     Column
}

// MACDBias is the MACD-versus-signal reading at the latest bar.
type MACDBias string

const (
	MACDBullish MACDBias = "Bullish"
	MACDBearish MACDBias = "Bearish"
)

// BollingerPosition classifies a close against the bands.
type BollingerPosition string

const (
	BollingerAboveUpper  BollingerPosition = "Above Upper"
	BollingerBelowLower  BollingerPosition = "Below Lower"
	BollingerUpperHalf   BollingerPosition = "Upper Half"
	BollingerLowerHalf   BollingerPosition = "Lower Half"
	BollingerUnavailable BollingerPosition = "N/A"
)

// RSIZone buckets an RSI reading.
type RSIZone string

const (
	RSIOverbought RSIZone = "overbought"
	RSIOversold   RSIZone = "oversold"
	RSINeutral    RSIZone = "neutral"
)
