package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"StockSentinel/internal/model"
)

// RESTFetcher implements Fetcher against a generic JSON market-data API:
//
//	GET {base}/api/v1/bars/daily?symbol=X&days=N   -> [{timestamp, open, high, low, close, volume}]
//	GET {base}/api/v1/fundamentals?symbol=X        -> restFundamentals
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string) *RESTFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &RESTFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

type restFundamentals struct {
	Name             string  `json:"name"`
	Sector           string  `json:"sector"`
	MarketCap        float64 `json:"market_cap"`
	TrailingPE       float64 `json:"trailing_pe"`
	TrailingEPS      float64 `json:"trailing_eps"`
	DividendYield    float64 `json:"dividend_yield"`
	PriceToBook      float64 `json:"price_to_book"`
	FiftyTwoWeekHigh float64 `json:"fifty_two_week_high"`
	FiftyTwoWeekLow  float64 `json:"fifty_two_week_low"`
}

func (f *RESTFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.PriceBar, error) {
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&days=%d", f.BaseURL, url.QueryEscape(symbol), days)
	var raw []restBar
	if err := f.getJSON(ctx, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	bars := make([]model.PriceBar, len(raw))
	for i, rb := range raw {
		bars[i] = model.PriceBar{
			Date:   time.Unix(rb.Timestamp, 0).UTC(),
			Open:   rb.Open,
			High:   rb.High,
			Low:    rb.Low,
			Close:  rb.Close,
			Volume: rb.Volume,
		}
	}
	return bars, nil
}

func (f *RESTFetcher) FetchFundamentals(ctx context.Context, symbol string) (model.FundamentalSnapshot, error) {
	endpoint := fmt.Sprintf("%s/api/v1/fundamentals?symbol=%s", f.BaseURL, url.QueryEscape(symbol))
	var raw restFundamentals
	if err := f.getJSON(ctx, endpoint, &raw); err != nil {
		return model.FundamentalSnapshot{}, fmt.Errorf("fetch fundamentals: %w", err)
	}
	return model.FundamentalSnapshot{
		Name:             raw.Name,
		MarketCap:        raw.MarketCap,
		TrailingPE:       raw.TrailingPE,
		TrailingEPS:      raw.TrailingEPS,
		DividendYield:    raw.DividendYield,
		PriceToBook:      raw.PriceToBook,
		FiftyTwoWeekHigh: raw.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:  raw.FiftyTwoWeekLow,
		Sector:           raw.Sector,
	}, nil
}

func (f *RESTFetcher) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
