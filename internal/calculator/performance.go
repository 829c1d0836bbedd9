package calculator

import (
	"fmt"

	"StockSentinel/internal/model"
)

// PerformancePeriod is a named look-back measured in bars.
type PerformancePeriod struct {
	Name string
	Bars int
}

// PerformancePeriods lists the report's historical performance windows.
var PerformancePeriods = []PerformancePeriod{
	{"1d", 1},
	{"1w", 7},
	{"1m", 30},
	{"3m", 90},
	{"1y", 365},
	{"3y", 1095},
}

// PeriodReturn returns the percentage change of the last close against the
// close bars earlier.
func PeriodReturn(closes []float64, bars int) (float64, error) {
	n := len(closes)
	if bars <= 0 || n <= bars {
		return 0, fmt.Errorf("%w: %d-bar return over %d closes", model.ErrInsufficientWindow, bars, n)
	}
	past := closes[n-1-bars]
	return (closes[n-1] - past) / past * 100, nil
}

// SimpleReturn returns the percentage change from first to last close.
func SimpleReturn(closes []float64) (float64, error) {
	if len(closes) == 0 {
		return 0, model.ErrNoData
	}
	first := closes[0]
	if first == 0 {
		return 0, fmt.Errorf("first close is zero")
	}
	return (closes[len(closes)-1] - first) / first * 100, nil
}
