package collector

import (
	"context"
	"fmt"

	"StockSentinel/internal/model"

	"github.com/wnjoon/go-yfinance/pkg/models"
	"github.com/wnjoon/go-yfinance/pkg/ticker"
	"golang.org/x/time/rate"
)

// YFinanceFetcher implements Fetcher on top of go-yfinance, which handles
// Yahoo's cookie and crumb flow and exposes the full quote summary.
type YFinanceFetcher struct {
	limiter *rate.Limiter
}

// NewYFinanceFetcher creates a fetcher. requestsPerSecond <= 0 disables rate limiting.
func NewYFinanceFetcher(requestsPerSecond float64) *YFinanceFetcher {
	f := &YFinanceFetcher{}
	if requestsPerSecond > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
	return f
}

func (f *YFinanceFetcher) Name() string { return "yfinance" }

func (f *YFinanceFetcher) wait(ctx context.Context) error {
	if f.limiter == nil {
		return ctx.Err()
	}
	return f.limiter.Wait(ctx)
}

func (f *YFinanceFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.PriceBar, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	t, err := ticker.New(symbol)
	if err != nil {
		return nil, fmt.Errorf("yfinance ticker %s: %w", symbol, err)
	}
	defer t.Close()

	history, err := t.History(models.HistoryParams{
		Period:     yahooRange(days),
		Interval:   "1d",
		AutoAdjust: true,
	})
	if err != nil {
		return nil, fmt.Errorf("yfinance history %s: %w", symbol, err)
	}

	bars := make([]model.PriceBar, 0, len(history))
	for _, b := range history {
		bars = append(bars, model.PriceBar{
			Date:   b.Date,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: float64(b.Volume),
		})
	}
	return bars, nil
}

func (f *YFinanceFetcher) FetchFundamentals(ctx context.Context, symbol string) (model.FundamentalSnapshot, error) {
	if err := f.wait(ctx); err != nil {
		return model.FundamentalSnapshot{}, err
	}
	t, err := ticker.New(symbol)
	if err != nil {
		return model.FundamentalSnapshot{}, fmt.Errorf("yfinance ticker %s: %w", symbol, err)
	}
	defer t.Close()

	info, err := t.Info()
	if err != nil {
		return model.FundamentalSnapshot{}, fmt.Errorf("yfinance info %s: %w", symbol, err)
	}
	return snapshotFromInfo(info), nil
}

func snapshotFromInfo(info *models.Info) model.FundamentalSnapshot {
	name := info.LongName
	if name == "" {
		name = info.ShortName
	}
	return model.FundamentalSnapshot{
		Name:             name,
		MarketCap:        float64(info.MarketCap),
		TrailingPE:       info.TrailingPE,
		TrailingEPS:      info.TrailingEps,
		DividendYield:    info.DividendYield,
		PriceToBook:      info.PriceToBook,
		FiftyTwoWeekHigh: info.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:  info.FiftyTwoWeekLow,
		Sector:           info.Sector,
	}
}
