package collector

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"StockSentinel/internal/calculator"
	"StockSentinel/internal/model"

	"github.com/rs/zerolog"
)

// MarketData is everything the analyzer needs for one symbol.
type MarketData struct {
	Series       model.PriceSeries
	Fundamentals model.FundamentalSnapshot
}

// Collector fetches and validates market data for analysis.
type Collector struct {
	Fetcher      BarFetcher
	Fundamentals FundamentalsFetcher // optional
	LookbackDays int
	log          zerolog.Logger
}

// NewCollector creates a new Collector. If fetcher also implements
// FundamentalsFetcher it is used for fundamentals.
func NewCollector(fetcher BarFetcher, lookbackDays int, log zerolog.Logger) *Collector {
	c := &Collector{
		Fetcher:      fetcher,
		LookbackDays: lookbackDays,
		log:          log.With().Str("component", "collector").Str("source", fetcher.Name()).Logger(),
	}
	if ff, ok := fetcher.(FundamentalsFetcher); ok {
		c.Fundamentals = ff
	}
	return c
}

// FetchSeries fetches days of daily bars and builds a validated series.
// A failed fetch or an empty result is a NoData error.
func (c *Collector) FetchSeries(ctx context.Context, symbol string, days int) (model.PriceSeries, error) {
	bars, err := c.Fetcher.FetchDailyBars(ctx, symbol, days)
	if err != nil {
		return model.PriceSeries{}, model.NoDataError(symbol, fmt.Errorf("fetch daily bars: %w", err))
	}
	bars = cleanBars(bars)
	if len(bars) == 0 {
		return model.PriceSeries{}, model.NoDataError(symbol, nil)
	}
	series, err := model.NewPriceSeries(symbol, bars)
	if err != nil {
		return model.PriceSeries{}, model.NoDataError(symbol, err)
	}
	return series, nil
}

// Collect fetches the price history and fundamentals for symbol. Missing
// fundamentals degrade to a Missing snapshot whose 52-week range comes from
// the series.
func (c *Collector) Collect(ctx context.Context, symbol string) (*MarketData, error) {
	series, err := c.FetchSeries(ctx, symbol, c.LookbackDays)
	if err != nil {
		return nil, err
	}

	fund, err := c.fetchFundamentals(ctx, symbol)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.log.Warn().Err(err).Str("symbol", symbol).Msg("fundamentals unavailable, continuing without them")
		fund = model.FundamentalSnapshot{Missing: true}
	}

	if fund.FiftyTwoWeekHigh == 0 || fund.FiftyTwoWeekLow == 0 {
		if h, l, err := calculator.FiftyTwoWeekRange(series); err == nil {
			fund.FiftyTwoWeekHigh = h
			fund.FiftyTwoWeekLow = l
		}
	}
	return &MarketData{Series: series, Fundamentals: fund}, nil
}

func (c *Collector) fetchFundamentals(ctx context.Context, symbol string) (model.FundamentalSnapshot, error) {
	if c.Fundamentals == nil {
		return model.FundamentalSnapshot{}, model.ErrFundamentalsMissing
	}
	fund, err := c.Fundamentals.FetchFundamentals(ctx, symbol)
	if err != nil {
		return model.FundamentalSnapshot{}, errors.Join(model.ErrFundamentalsMissing, err)
	}
	return fund, nil
}

// cleanBars sorts bars by date, drops bars with non-positive prices and
// keeps only the last bar for any repeated day.
func cleanBars(bars []model.PriceBar) []model.PriceBar {
	out := make([]model.PriceBar, 0, len(bars))
	for _, b := range bars {
		if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	deduped := out[:0]
	for _, b := range out {
		n := len(deduped)
		if n > 0 && sameDay(deduped[n-1], b) {
			deduped[n-1] = b
			continue
		}
		deduped = append(deduped, b)
	}
	return deduped
}

func sameDay(a, b model.PriceBar) bool {
	ay, am, ad := a.Date.UTC().Date()
	by, bm, bd := b.Date.UTC().Date()
	return ay == by && am == bm && ad == bd
}
