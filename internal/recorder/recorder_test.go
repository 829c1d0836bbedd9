package recorder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"StockSentinel/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(symbol string, price float64) *model.Report {
	rsi := 55.5
	return &model.Report{
		Symbol:    symbol,
		Name:      symbol + " Ltd",
		LastPrice: price,
		TechnicalAnalysis: model.TechnicalAnalysis{
			Indicators: model.IndicatorSummary{RSI: &rsi, MACD: model.MACDBullish, BollingerBands: model.BollingerUpperHalf},
		},
		KeyObservations: []string{"MACD shows bullish momentum"},
		Recommendations: model.RecommendationSet{
			ShortTerm6M: model.ActionBuy,
			ShortTerm1Y: model.ActionBuy,
			LongTerm3Y:  model.ActionStrongBuy,
		},
		SimilarCompanies: []model.PeerPerformance{{Symbol: "INFY", Performance1Y: "12.50%"}},
		GeneratedAt:      time.Now(),
	}
}

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	rec, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	require.NoError(t, err)
	defer rec.Close()

	_, err = rec.LatestReport("TCS")
	assert.ErrorIs(t, err, ErrNotFound)

	first := sampleReport("TCS", 3500)
	require.NoError(t, rec.RecordReport(first))

	second := sampleReport("TCS", 3550.25)
	second.GeneratedAt = first.GeneratedAt
	second.PeerErrors = []error{
		&model.PeerFetchError{Peer: "WIPRO.NS", Err: errors.New("timeout")},
	}
	require.NoError(t, rec.RecordReport(second))
	require.NoError(t, rec.RecordReport(sampleReport("INFY", 1500)))

	got, err := rec.LatestReport("TCS")
	require.NoError(t, err)
	assert.Equal(t, 3550.25, got.LastPrice, "same-second reports resolve by insertion order")
	assert.Equal(t, model.ActionStrongBuy, got.Recommendations.LongTerm3Y)
	require.NotNil(t, got.TechnicalAnalysis.Indicators.RSI)
	assert.Equal(t, 55.5, *got.TechnicalAnalysis.Indicators.RSI)
	assert.Equal(t, "12.50%", got.SimilarCompanies[0].Performance1Y)

	peers, err := rec.PeerFailures("TCS")
	require.NoError(t, err)
	assert.Equal(t, []string{"WIPRO.NS"}, peers)
}

func TestSQLiteRecorder_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	rec, err := NewSQLiteRecorder(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, rec.RecordReport(sampleReport("SBIN", 800)))
	require.NoError(t, rec.Close())

	rec, err = NewSQLiteRecorder(path, zerolog.Nop())
	require.NoError(t, err)
	defer rec.Close()
	got, err := rec.LatestReport("SBIN")
	require.NoError(t, err)
	assert.Equal(t, 800.0, got.LastPrice)
}

func TestJSONFileRecorder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	rec, err := NewJSONFileRecorder(dir)
	require.NoError(t, err)

	_, err = rec.LatestReport("TCS")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, rec.RecordReport(sampleReport("TCS", 3500)))
	assert.FileExists(t, filepath.Join(dir, "TCS_analysis_report.json"))

	data, err := os.ReadFile(rec.Path("TCS"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"short_term_6m": "Buy"`)
	assert.Contains(t, string(data), `"similar_companies": [`)
	assert.NotContains(t, string(data), "GeneratedAt")

	got, err := rec.LatestReport("tcs")
	require.NoError(t, err)
	assert.Equal(t, "TCS Ltd", got.Name)
}

type failingRecorder struct{ closed bool }

func (f *failingRecorder) RecordReport(*model.Report) error { return errors.New("disk full") }
func (f *failingRecorder) Close() error                     { f.closed = true; return nil }

func TestMultiRecorder(t *testing.T) {
	dir := t.TempDir()
	js, err := NewJSONFileRecorder(dir)
	require.NoError(t, err)
	bad := &failingRecorder{}

	multi := MultiRecorder{bad, js, NewNoopRecorder()}
	err = multi.RecordReport(sampleReport("ITC", 450))
	assert.ErrorContains(t, err, "disk full")
	assert.FileExists(t, js.Path("ITC"), "later recorders still run after a failure")

	require.NoError(t, multi.Close())
	assert.True(t, bad.closed)
}
