package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"StockSentinel/internal/collector"
	"StockSentinel/internal/model"
	"StockSentinel/internal/peers"
	"StockSentinel/internal/recorder"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTable = peers.Table{
	{Name: "Technology", Symbols: []string{"TCS.NS", "INFY.NS", "WIPRO.NS", "HCLTECH.NS"}},
	{Name: "Energy", Symbols: []string{"RELIANCE.NS", "ONGC.NS"}},
}

func barsFromCloses(closes []float64) []model.PriceBar {
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = model.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 5000,
		}
	}
	return bars
}

func flat(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// rising climbs linearly from 100 to 200.
func rising(n int) []float64 {
	out := make([]float64, n)
	step := 100 / float64(n-1)
	for i := range out {
		out[i] = 100 + step*float64(i)
	}
	return out
}

func newTestAnalyzer(f *collector.MockFetcher) *Analyzer {
	log := zerolog.Nop()
	col := collector.NewCollector(f, 1095, log)
	cmp := peers.NewComparator(testTable, col, log)
	a := New(col, cmp, ".NS", log)
	a.now = func() time.Time { return time.Date(2024, 6, 3, 16, 30, 0, 0, time.UTC) }
	return a
}

func TestAnalyzeFlatSeries(t *testing.T) {
	f := &collector.MockFetcher{
		Price: 100,
		Bars:  map[string][]model.PriceBar{"FLAT.NS": barsFromCloses(flat(400, 100))},
		Fundamentals: map[string]model.FundamentalSnapshot{
			"FLAT.NS": {Name: "Flat Industries", Sector: "Energy", TrailingPE: 40},
		},
	}
	a := newTestAnalyzer(f)

	r, err := a.Analyze(context.Background(), "flat")
	require.NoError(t, err)

	assert.Equal(t, "FLAT", r.Symbol)
	assert.Equal(t, "Flat Industries", r.Name)
	assert.Equal(t, 100.0, r.LastPrice)
	assert.Equal(t, model.Votes{Bullish: 0, Bearish: 3}, r.Votes)
	assert.Equal(t, model.Votes{Bullish: 0, Bearish: 4}, r.TrendVotes)
	assert.Equal(t, model.ActionSell, r.Recommendations.ShortTerm6M)
	assert.Equal(t, model.ActionHold, r.Recommendations.ShortTerm1Y)
	assert.Equal(t, model.ActionHold, r.Recommendations.LongTerm3Y)
	assert.Equal(t, model.ActionSell, r.BuySellSuggestions.ShortTerm.Action)

	ma := r.TechnicalAnalysis.MovingAverages
	require.NotNil(t, ma.SMA50)
	require.NotNil(t, ma.SMA200)
	assert.Equal(t, 100.0, *ma.SMA50)
	assert.Equal(t, 100.0, *ma.SMA200)

	ti := r.TechnicalAnalysis.Indicators
	require.NotNil(t, ti.RSI)
	assert.Equal(t, 50.0, *ti.RSI)
	assert.Equal(t, model.MACDBearish, ti.MACD)
	assert.Equal(t, model.BollingerLowerHalf, ti.BollingerBands)

	hp := r.HistoricalPerformance
	assert.Equal(t, "0.00%", hp.OneDay)
	assert.Equal(t, "0.00%", hp.OneYear)
	assert.Equal(t, "N/A", hp.ThreeYear)

	assert.Equal(t, 36.0, r.Fundamentals.SectorPE)
	assert.Equal(t, 101.0, r.Fundamentals.High52W)
	assert.Equal(t, 99.0, r.Fundamentals.Low52W)

	assert.Equal(t, []float64{110, 120}, r.BuySellSuggestions.ShortTerm.Target)
	assert.Equal(t, 97.0, r.BuySellSuggestions.ShortTerm.BuyZone)
	assert.Equal(t, 92.0, r.BuySellSuggestions.ShortTerm.StopLoss)
	assert.Equal(t, 140.0, r.BuySellSuggestions.LongTerm.Target)
	assert.Equal(t, "6M - 1Y", r.BuySellSuggestions.ShortTerm.Duration)
	assert.Equal(t, "3Y", r.BuySellSuggestions.LongTerm.Duration)

	require.Len(t, r.SimilarCompanies, 2)
	assert.Equal(t, "RELIANCE", r.SimilarCompanies[0].Symbol)
	assert.Equal(t, "ONGC", r.SimilarCompanies[1].Symbol)
}

func TestAnalyzeFlatSeriesAtFractionalPrices(t *testing.T) {
	for _, price := range []float64{2950.55, 17.3} {
		f := &collector.MockFetcher{
			Price: price,
			Bars:  map[string][]model.PriceBar{"FLAT.NS": barsFromCloses(flat(400, price))},
			Fundamentals: map[string]model.FundamentalSnapshot{
				"FLAT.NS": {Name: "Flat Industries", Sector: "Energy", TrailingPE: 20},
			},
		}
		a := newTestAnalyzer(f)

		r, err := a.Analyze(context.Background(), "flat")
		require.NoError(t, err, "price %v", price)

		assert.Equal(t, model.Votes{Bullish: 0, Bearish: 3}, r.Votes, "price %v", price)
		assert.Equal(t, 0, r.TrendVotes.Bullish, "price %v", price)
		assert.Equal(t, model.ActionSell, r.Recommendations.ShortTerm6M, "price %v", price)
		assert.Equal(t, model.ActionHold, r.Recommendations.ShortTerm1Y, "price %v", price)
		assert.Equal(t, model.ActionHold, r.Recommendations.LongTerm3Y, "price %v", price)
		assert.Equal(t, model.BollingerLowerHalf, r.TechnicalAnalysis.Indicators.BollingerBands, "price %v", price)

		ma := r.TechnicalAnalysis.MovingAverages
		require.NotNil(t, ma.SMA50)
		assert.Equal(t, price, *ma.SMA50, "price %v", price)
	}
}

func TestAnalyzeRisingSeries(t *testing.T) {
	f := &collector.MockFetcher{
		Price: 100,
		Bars:  map[string][]model.PriceBar{"TCS.NS": barsFromCloses(rising(250))},
		Fundamentals: map[string]model.FundamentalSnapshot{
			"TCS.NS": {
				Name:          "Tata Consultancy Services",
				Sector:        "Technology",
				TrailingPE:    25,
				TrailingEPS:   120.456,
				MarketCap:     1e12,
				DividendYield: 0.015,
			},
		},
		Errors: map[string]error{"WIPRO.NS": errors.New("timeout")},
	}
	a := newTestAnalyzer(f)

	r, err := a.Analyze(context.Background(), "TCS")
	require.NoError(t, err)

	assert.Equal(t, "TCS", r.Symbol)
	assert.GreaterOrEqual(t, r.TrendVotes.Bullish, 3)
	assert.Equal(t, model.ActionBuy, r.Recommendations.ShortTerm1Y)
	assert.Equal(t, model.ActionStrongBuy, r.Recommendations.LongTerm3Y)
	assert.Equal(t, model.MACDBullish, r.TechnicalAnalysis.Indicators.MACD)
	assert.Contains(t, r.KeyObservations, "Trading above 50-day and 200-day moving averages")

	fs := r.Fundamentals
	assert.Equal(t, 8300000.0, fs.MarketCapCr)
	assert.Equal(t, 22.5, fs.SectorPE)
	assert.Equal(t, 120.46, fs.EPS)
	assert.Equal(t, "1.50%", fs.DividendYield)

	// the subject is never its own peer and the failed peer is skipped
	require.Len(t, r.SimilarCompanies, 2)
	assert.Equal(t, "INFY", r.SimilarCompanies[0].Symbol)
	assert.Equal(t, "HCLTECH", r.SimilarCompanies[1].Symbol)
	require.Len(t, r.PeerErrors, 1)
	var pe *model.PeerFetchError
	require.ErrorAs(t, r.PeerErrors[0], &pe)
	assert.Equal(t, "WIPRO.NS", pe.Peer)
}

func TestAnalyzeMissingFundamentals(t *testing.T) {
	f := &collector.MockFetcher{
		Price:      100,
		Bars:       map[string][]model.PriceBar{"ACME.NS": barsFromCloses(rising(250))},
		FundErrors: map[string]error{"ACME.NS": errors.New("502 bad gateway")},
	}
	a := newTestAnalyzer(f)

	r, err := a.Analyze(context.Background(), "ACME")
	require.NoError(t, err)

	assert.True(t, r.FundamentalsMissing)
	assert.Equal(t, "ACME", r.Name)
	assert.Equal(t, 0.0, r.Fundamentals.PERatio)
	assert.Equal(t, "0.00%", r.Fundamentals.DividendYield)
	// no PE means the long horizon tops out at Buy
	assert.Equal(t, model.ActionBuy, r.Recommendations.LongTerm3Y)
	assert.Greater(t, r.Fundamentals.High52W, 0.0)
	// without a sector there is nothing to compare against
	assert.Empty(t, r.SimilarCompanies)
	assert.NotNil(t, r.SimilarCompanies)
}

func TestAnalyzeNoData(t *testing.T) {
	f := &collector.MockFetcher{
		Bars: map[string][]model.PriceBar{"GHOST.NS": {}},
	}
	a := newTestAnalyzer(f)

	r, err := a.Analyze(context.Background(), "GHOST")
	assert.Nil(t, r)
	assert.ErrorIs(t, err, model.ErrNoData)
}

func TestAnalyzeRecordsReport(t *testing.T) {
	dir := t.TempDir()
	rec, err := recorder.NewJSONFileRecorder(dir)
	require.NoError(t, err)

	f := &collector.MockFetcher{
		Price: 100,
		Bars:  map[string][]model.PriceBar{"TCS.NS": barsFromCloses(rising(250))},
	}
	a := newTestAnalyzer(f)
	a.Recorder = rec

	_, err = a.Analyze(context.Background(), "TCS")
	require.NoError(t, err)

	data, err := os.ReadFile(rec.Path("TCS"))
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "TCS", decoded["symbol"])
	assert.Contains(t, decoded, "similar_companies")
	assert.NotContains(t, decoded, "GeneratedAt")
}

func TestAnalyzeAllKeepsOrder(t *testing.T) {
	f := &collector.MockFetcher{
		Price:  100,
		Errors: map[string]error{"BAD.NS": errors.New("delisted")},
	}
	a := newTestAnalyzer(f)
	a.Peers = nil

	results := a.AnalyzeAll(context.Background(), []string{"TCS", "BAD", "INFY"})
	require.Len(t, results, 3)
	assert.Equal(t, "TCS", results[0].Symbol)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, model.ErrNoData)
	assert.Nil(t, results[1].Report)
	assert.Equal(t, "INFY", results[2].Report.Symbol)
}

func TestAssembleEmptySeries(t *testing.T) {
	_, err := Assemble(Inputs{Symbol: "X"})
	assert.ErrorIs(t, err, model.ErrNoData)
}

func TestAssembleJSONUsesEmptyLists(t *testing.T) {
	s, err := model.NewPriceSeries("ONE", barsFromCloses([]float64{10}))
	require.NoError(t, err)
	in := Derive("ONE", s, model.FundamentalSnapshot{Missing: true})

	r, err := Assemble(in)
	require.NoError(t, err)
	assert.Nil(t, r.TechnicalAnalysis.MovingAverages.SMA50)
	assert.Nil(t, r.TechnicalAnalysis.Indicators.RSI)
	assert.Equal(t, model.BollingerUnavailable, r.TechnicalAnalysis.Indicators.BollingerBands)
	assert.Equal(t, "N/A", r.HistoricalPerformance.OneDay)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"similar_companies":[]`)
	assert.Contains(t, string(data), `"sma_50":null`)
	assert.NotContains(t, string(data), `"key_observations":null`)
}
