package calculator

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 rounds half away from zero to two decimal places. Rounding works on
// the shortest decimal form of v, so 2.675 becomes 2.68 even though its
// binary value sits just below the midpoint. NaN and infinities are returned
// unchanged.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// FormatPercent renders a percentage as "x.xx%", rounding like Round2.
func FormatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	return decimal.NewFromFloat(v).StringFixed(2) + "%"
}
