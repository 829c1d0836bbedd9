package collector

import (
	"context"

	"StockSentinel/internal/model"
)

// BarFetcher returns daily bars covering the last days calendar days.
type BarFetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.PriceBar, error)
	Name() string
}

// FundamentalsFetcher returns a company snapshot. Fields the source does not
// provide stay zero.
type FundamentalsFetcher interface {
	FetchFundamentals(ctx context.Context, symbol string) (model.FundamentalSnapshot, error)
}

// Fetcher is a data source that serves both bars and fundamentals.
type Fetcher interface {
	BarFetcher
	FundamentalsFetcher
}
