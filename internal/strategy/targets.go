package strategy

import "StockSentinel/internal/model"

// Offsets from the latest close.
const (
	buyZoneFactor    = 0.97
	stopLossFactor   = 0.92
	target1Factor    = 1.10
	target2Factor    = 1.20
	longTargetFactor = 1.40
	supportFactor    = 0.95
	resistanceFactor = 1.05
)

// Targets derives every price level from lastPrice alone.
func Targets(lastPrice float64) model.TargetSet {
	return model.TargetSet{
		BuyZone:         lastPrice * buyZoneFactor,
		Targets:         []float64{lastPrice * target1Factor, lastPrice * target2Factor},
		LongTarget:      lastPrice * longTargetFactor,
		StopLoss:        lastPrice * stopLossFactor,
		SupportLevel:    lastPrice * supportFactor,
		ResistanceLevel: lastPrice * resistanceFactor,
	}
}

// DividendStability labels a dividend yield given as a fraction.
func DividendStability(yield float64) string {
	pct := yield * 100
	switch {
	case pct > 2:
		return "Strong dividend payout"
	case pct > 1:
		return "Stable dividend payout"
	default:
		return "Low dividend payout"
	}
}
