package peers

import (
	"context"
	"errors"
	"strings"
	"time"

	"StockSentinel/internal/calculator"
	"StockSentinel/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultLimit        = 3
	DefaultTimeout      = 15 * time.Second
	DefaultLookbackDays = 365
)

// SeriesSource fetches a validated price series.
type SeriesSource interface {
	FetchSeries(ctx context.Context, symbol string, days int) (model.PriceSeries, error)
}

// FailureObserver is told about every skipped peer.
type FailureObserver interface {
	PeerFetchFailed(peer string)
}

// Result is the outcome of one comparison. Peers keeps table order;
// Errors holds one *model.PeerFetchError per skipped peer.
type Result struct {
	Peers   []model.PeerPerformance
	Errors  []error
	Matched bool
}

// Comparator fetches up to Limit peers concurrently. Each fetch gets its own
// timeout and is never retried.
type Comparator struct {
	Table        Table
	Source       SeriesSource
	Limit        int
	Timeout      time.Duration
	LookbackDays int
	Observer     FailureObserver // optional
	log          zerolog.Logger
}

// NewComparator creates a comparator with default limits.
func NewComparator(table Table, source SeriesSource, log zerolog.Logger) *Comparator {
	return &Comparator{
		Table:        table,
		Source:       source,
		Limit:        DefaultLimit,
		Timeout:      DefaultTimeout,
		LookbackDays: DefaultLookbackDays,
		log:          log.With().Str("component", "peers").Logger(),
	}
}

// Candidates returns the peers that would be fetched for symbol in sector.
func (c *Comparator) Candidates(symbol, sector string) ([]string, bool) {
	symbols, matched := c.Table.Match(sector)
	limit := c.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	out := make([]string, 0, limit)
	for _, s := range symbols {
		if strings.EqualFold(s, symbol) {
			continue
		}
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out, matched
}

// Compare measures each candidate's simple return over the lookback.
// Failed peers are skipped and reported in Result.Errors; Compare itself
// only fails when ctx is cancelled.
func (c *Comparator) Compare(ctx context.Context, symbol, sector string) (Result, error) {
	candidates, matched := c.Candidates(symbol, sector)
	if len(candidates) == 0 {
		return Result{Peers: []model.PeerPerformance{}, Matched: matched}, nil
	}
	if !matched {
		c.log.Warn().Str("symbol", symbol).Str("sector", sector).Msg("no sector match, using the first table entry")
	}

	type outcome struct {
		perf model.PeerPerformance
		err  error
	}
	outcomes := make([]outcome, len(candidates))

	// Workers never return an error so one failed peer cannot cancel the rest.
	g, gctx := errgroup.WithContext(ctx)
	for i, peer := range candidates {
		g.Go(func() error {
			perf, err := c.fetchOne(gctx, peer)
			outcomes[i] = outcome{perf: perf, err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	res := Result{Peers: make([]model.PeerPerformance, 0, len(candidates)), Matched: matched}
	for i, o := range outcomes {
		if o.err != nil {
			pe := &model.PeerFetchError{Peer: candidates[i], Err: o.err}
			c.log.Warn().Err(o.err).Str("peer", candidates[i]).Msg("peer skipped")
			if c.Observer != nil {
				c.Observer.PeerFetchFailed(candidates[i])
			}
			res.Errors = append(res.Errors, pe)
			continue
		}
		res.Peers = append(res.Peers, o.perf)
	}
	return res, nil
}

func (c *Comparator) fetchOne(ctx context.Context, peer string) (model.PeerPerformance, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	days := c.LookbackDays
	if days <= 0 {
		days = DefaultLookbackDays
	}
	series, err := c.Source.FetchSeries(ctx, peer, days)
	if err != nil {
		return model.PeerPerformance{}, err
	}
	if series.Len() < 2 {
		return model.PeerPerformance{}, errors.New("need at least two bars")
	}
	ret, err := calculator.SimpleReturn(series.Closes())
	if err != nil {
		return model.PeerPerformance{}, err
	}
	return model.PeerPerformance{
		Symbol:        peer,
		Performance1Y: calculator.FormatPercent(ret),
		Return:        ret,
	}, nil
}
