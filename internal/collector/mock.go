package collector

import (
	"context"
	"math"
	"time"

	"StockSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Bars and Fundamentals are keyed by symbol; Errors forces a failure.
type MockFetcher struct {
	Price        float64
	Bars         map[string][]model.PriceBar
	Fundamentals map[string]model.FundamentalSnapshot
	Errors       map[string]error
	FundErrors   map[string]error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.PriceBar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := m.Errors[symbol]; err != nil {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	return generateMockBars(m.Price, days), nil
}

func (m *MockFetcher) FetchFundamentals(ctx context.Context, symbol string) (model.FundamentalSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return model.FundamentalSnapshot{}, err
	}
	if err := m.FundErrors[symbol]; err != nil {
		return model.FundamentalSnapshot{}, err
	}
	if f, ok := m.Fundamentals[symbol]; ok {
		return f, nil
	}
	return model.FundamentalSnapshot{Name: symbol}, nil
}

// generateMockBars builds count daily bars drifting gently upward around basePrice.
func generateMockBars(basePrice float64, count int) []model.PriceBar {
	if basePrice <= 0 {
		basePrice = 100
	}
	end := time.Now().UTC().Truncate(24 * time.Hour)
	bars := make([]model.PriceBar, count)
	for i := 0; i < count; i++ {
		p := basePrice * math.Pow(1.001, float64(i-count/2))
		bars[i] = model.PriceBar{
			Date:   end.AddDate(0, 0, -(count - 1 - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
