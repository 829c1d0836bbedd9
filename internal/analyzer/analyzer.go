// Package analyzer runs the full pipeline for one symbol: fetch, compute,
// compare against peers and assemble the report.
package analyzer

import (
	"context"
	"errors"
	"time"

	"StockSentinel/internal/collector"
	"StockSentinel/internal/metrics"
	"StockSentinel/internal/model"
	"StockSentinel/internal/peers"
	"StockSentinel/internal/recorder"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultUSDINRRate  = 83.0
	DefaultConcurrency = 2
)

// Analyzer owns the collaborators of one analysis run. Peers, Recorder and
// Metrics are optional.
type Analyzer struct {
	Collector   *collector.Collector
	Peers       *peers.Comparator
	Recorder    recorder.Recorder
	Metrics     *metrics.Metrics
	Suffix      string
	USDINRRate  float64
	Concurrency int

	now func() time.Time
	log zerolog.Logger
}

// New creates an Analyzer with default rate and concurrency.
func New(col *collector.Collector, cmp *peers.Comparator, suffix string, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		Collector:   col,
		Peers:       cmp,
		Suffix:      suffix,
		USDINRRate:  DefaultUSDINRRate,
		Concurrency: DefaultConcurrency,
		now:         time.Now,
		log:         log.With().Str("component", "analyzer").Logger(),
	}
}

// Analyze produces the report for symbol. Only a missing price history or a
// cancelled context is an error; peer and fundamentals gaps are reported
// inside the Report.
func (a *Analyzer) Analyze(ctx context.Context, symbol string) (*model.Report, error) {
	start := time.Now()
	report, err := a.analyze(ctx, symbol)
	a.Metrics.ObserveAnalysis(analysisResult(err), time.Since(start))
	return report, err
}

func (a *Analyzer) analyze(ctx context.Context, symbol string) (*model.Report, error) {
	ticker := collector.NormalizeSymbol(symbol, a.Suffix)
	display := collector.DisplaySymbol(ticker, a.Suffix)
	log := a.log.With().Str("symbol", ticker).Logger()

	data, err := a.Collector.Collect(ctx, ticker)
	if err != nil {
		log.Error().Err(err).Msg("collect failed")
		return nil, err
	}
	if data.Fundamentals.Missing {
		a.Metrics.FundamentalsMissingInc()
	}

	// The series and snapshot are read-only from here on, so the indicator
	// stages and the peer fetches can share them.
	var (
		in      Inputs
		peerRes peers.Result
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		in = Derive(display, data.Series, data.Fundamentals)
		return nil
	})
	if a.Peers != nil {
		g.Go(func() error {
			res, err := a.Peers.Compare(gctx, ticker, data.Fundamentals.Sector)
			if err != nil {
				return err
			}
			peerRes = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	in.Peers = a.displayPeers(peerRes.Peers)
	in.PeerErrors = peerRes.Errors
	in.USDINRRate = a.usdinr()
	in.GeneratedAt = a.clock()

	report, err := Assemble(in)
	if err != nil {
		return nil, err
	}

	log.Info().
		Float64("last_price", report.LastPrice).
		Int("bullish", report.TrendVotes.Bullish).
		Int("bearish", report.TrendVotes.Bearish).
		Str("short_6m", string(report.Recommendations.ShortTerm6M)).
		Str("short_1y", string(report.Recommendations.ShortTerm1Y)).
		Str("long_3y", string(report.Recommendations.LongTerm3Y)).
		Int("peers", len(report.SimilarCompanies)).
		Int("peer_errors", len(report.PeerErrors)).
		Msg("analysis complete")

	if a.Recorder != nil {
		err := a.Recorder.RecordReport(&report)
		a.Metrics.ReportRecorded(err)
		if err != nil {
			log.Error().Err(err).Msg("record report")
		}
	}
	return &report, nil
}

// Result is the outcome of one symbol in a batch.
type Result struct {
	Symbol string
	Report *model.Report
	Err    error
}

// AnalyzeAll runs Analyze over symbols with bounded concurrency. Results
// keep the input order; one failed symbol does not stop the others.
func (a *Analyzer) AnalyzeAll(ctx context.Context, symbols []string) []Result {
	results := make([]Result, len(symbols))
	g, gctx := errgroup.WithContext(ctx)
	limit := a.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	g.SetLimit(limit)
	for i, sym := range symbols {
		g.Go(func() error {
			report, err := a.Analyze(gctx, sym)
			results[i] = Result{Symbol: sym, Report: report, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (a *Analyzer) displayPeers(in []model.PeerPerformance) []model.PeerPerformance {
	out := make([]model.PeerPerformance, len(in))
	for i, p := range in {
		p.Symbol = collector.DisplaySymbol(p.Symbol, a.Suffix)
		out[i] = p
	}
	return out
}

func (a *Analyzer) usdinr() float64 {
	if a.USDINRRate <= 0 {
		return DefaultUSDINRRate
	}
	return a.USDINRRate
}

func (a *Analyzer) clock() time.Time {
	if a.now == nil {
		return time.Now()
	}
	return a.now()
}

func analysisResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, model.ErrNoData):
		return "no_data"
	default:
		return "error"
	}
}
