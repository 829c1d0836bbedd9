package model

import (
	"fmt"
	"time"
)

// PriceBar represents a single daily candlestick bar.
type PriceBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds an ordered, immutable run of bars for one symbol.
// Accessors hand out copies so derived columns never alias the bars.
type PriceSeries struct {
	Symbol    string
	FetchedAt time.Time
	bars      []PriceBar
}

// NewPriceSeries validates ordering and prices and returns the series.
// An empty bar slice is allowed; callers decide whether that means NoData.
func NewPriceSeries(symbol string, bars []PriceBar) (PriceSeries, error) {
	for i, b := range bars {
		if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
			return PriceSeries{}, fmt.Errorf("%w: bar %d (%s) has non-positive price", ErrInvalidSeries, i, b.Date.Format("2006-01-02"))
		}
		if i > 0 && !b.Date.After(bars[i-1].Date) {
			return PriceSeries{}, fmt.Errorf("%w: bar %d (%s) is not after %s", ErrInvalidSeries, i,
				b.Date.Format("2006-01-02"), bars[i-1].Date.Format("2006-01-02"))
		}
	}
	own := make([]PriceBar, len(bars))
	copy(own, bars)
	return PriceSeries{Symbol: symbol, FetchedAt: time.Now(), bars: own}, nil
}

// Len returns the number of bars.
func (s PriceSeries) Len() int { return len(s.bars) }

// Bar returns the i-th bar.
func (s PriceSeries) Bar(i int) PriceBar { return s.bars[i] }

// Last returns the most recent bar. The series must not be empty.
func (s PriceSeries) Last() PriceBar { return s.bars[len(s.bars)-1] }

// Bars returns a copy of all bars.
func (s PriceSeries) Bars() []PriceBar {
	out := make([]PriceBar, len(s.bars))
	copy(out, s.bars)
	return out
}

func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.bars))
	for i, b := range s.bars {
		out[i] = b.Close
	}
	return out
}

func (s PriceSeries) Highs() []float64 {
	out := make([]float64, len(s.bars))
	for i, b := range s.bars {
		out[i] = b.High
	}
	return out
}

func (s PriceSeries) Lows() []float64 {
	out := make([]float64, len(s.bars))
	for i, b := range s.bars {
		out[i] = b.Low
	}
	return out
}

func (s PriceSeries) Volumes() []float64 {
	out := make([]float64, len(s.bars))
	for i, b := range s.bars {
		out[i] = b.Volume
	}
	return out
}
