package calculator

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"StockSentinel/internal/model"

	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m, _ := windowMeanStd(values, nil)
	return m
}

// windowMeanStd returns the mean and population standard deviation of
// window. Both are measured on offsets from the first value, so a constant
// window gives back exactly that value and a zero spread. buf is reused
// for the offsets when it is large enough.
func windowMeanStd(window, buf []float64) (mean, std float64) {
	base := window[0]
	if cap(buf) < len(window) {
		buf = make([]float64, len(window))
	}
	offsets := buf[:len(window)]
	for i, v := range window {
		offsets[i] = v - base
	}
	m, sd := stat.PopMeanStdDev(offsets, nil)
	return base + m, sd
}

// PopStdDev calculates the population standard deviation.
func PopStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	_, std := stat.PopMeanStdDev(values, nil)
	return std
}

// DailyReturns converts closes to fractional close-to-close returns.
func DailyReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return []float64{}
	}
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		returns = append(returns, (closes[i]-closes[i-1])/closes[i-1])
	}
	return returns
}

// Volatility returns the population standard deviation of daily returns,
// in percent. It needs at least two returns.
func Volatility(closes []float64) (float64, error) {
	returns := DailyReturns(closes)
	if len(returns) < 2 {
		return 0, fmt.Errorf("%w: volatility over %d returns", model.ErrInsufficientWindow, len(returns))
	}
	return PopStdDev(returns) * 100, nil
}

// Percentile returns the p-th quantile (0..1) of values, interpolating
// linearly between the two closest ranks at h = (n-1)p. The input is not
// modified.
func Percentile(values []float64, p float64) (float64, error) {
	if len(values) == 0 {
		return 0, errors.New("percentile of empty slice")
	}
	if p < 0 || p > 1 {
		return 0, fmt.Errorf("percentile %v out of range", p)
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	h := float64(len(sorted)-1) * p
	lo := int(math.Floor(h))
	hi := min(lo+1, len(sorted)-1)
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo]), nil
}

// Tail returns the last n values (or all of them when fewer exist).
func Tail(values []float64, n int) []float64 {
	if n >= len(values) {
		return values
	}
	return values[len(values)-n:]
}
