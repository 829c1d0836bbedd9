package calculator

import (
	"StockSentinel/internal/model"

	"github.com/markcheno/go-talib"
)

// tradingYear is the number of daily bars in a 52-week window.
const tradingYear = 252

// FiftyTwoWeekRange returns the highest high and lowest low over the last
// 252 bars of series, or fewer when the series is shorter.
func FiftyTwoWeekRange(series model.PriceSeries) (high, low float64, err error) {
	n := series.Len()
	if n == 0 {
		return 0, 0, model.ErrNoData
	}
	window := min(n, tradingYear)
	if window < 2 {
		// talib needs a period of at least two
		b := series.Last()
		return b.High, b.Low, nil
	}
	high = talib.Max(series.Highs(), window)[n-1]
	low = talib.Min(series.Lows(), window)[n-1]
	return high, low, nil
}
