// Package scheduler runs the watchlist analysis on a cron schedule and
// answers chat commands.
package scheduler

import (
	"context"
	"fmt"
	"strings"

	"StockSentinel/internal/analyzer"
	"StockSentinel/internal/metrics"
	"StockSentinel/internal/model"
	"StockSentinel/internal/notifier"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const sendRetries = 3

// ReportAnalyzer produces reports for one or many symbols.
type ReportAnalyzer interface {
	Analyze(ctx context.Context, symbol string) (*model.Report, error)
	AnalyzeAll(ctx context.Context, symbols []string) []analyzer.Result
}

// Sender delivers a formatted message.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages the cron task and the command handler.
type Scheduler struct {
	Cron      *cron.Cron
	Analyzer  ReportAnalyzer
	Notifier  Sender // optional
	Metrics   *metrics.Metrics
	Watchlist []string
	Ctx       context.Context

	log zerolog.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, a ReportAnalyzer, n Sender, watchlist []string, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Analyzer:  a,
		Notifier:  n,
		Watchlist: watchlist,
		Ctx:       ctx,
		log:       log.With().Str("component", "scheduler").Logger(),
	}
}

// RegisterAll registers the watchlist analysis task.
func (s *Scheduler) RegisterAll(analysisCron string) error {
	if _, err := s.Cron.AddFunc(analysisCron, s.watchlistTask); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Int("symbols", len(s.Watchlist)).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// RunNow executes the watchlist task immediately.
func (s *Scheduler) RunNow() {
	s.watchlistTask()
}

func (s *Scheduler) watchlistTask() {
	if len(s.Watchlist) == 0 {
		s.log.Warn().Msg("watchlist is empty, nothing to analyse")
		return
	}
	s.log.Info().Strs("symbols", s.Watchlist).Msg("running watchlist analysis")

	results := s.Analyzer.AnalyzeAll(s.Ctx, s.Watchlist)
	var reports []*model.Report
	failed := make(map[string]error)
	for _, res := range results {
		if res.Err != nil {
			s.log.Error().Err(res.Err).Str("symbol", res.Symbol).Msg("analysis failed")
			failed[res.Symbol] = res.Err
			continue
		}
		reports = append(reports, res.Report)
		s.trySend(notifier.FormatReport(res.Report))
	}
	s.trySend(notifier.FormatDigest(reports, failed))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp(s.Watchlist)
	}
	// "/analyze@MyBot TCS" is how Telegram addresses commands in groups.
	name, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")
	switch name {
	case "/analyze", "/a":
		if len(fields) < 2 {
			return "Usage: /analyze SYMBOL"
		}
		symbol := fields[1]
		report, err := s.Analyzer.Analyze(ctx, symbol)
		if err != nil {
			s.log.Error().Err(err).Str("symbol", symbol).Msg("command analysis failed")
			return notifier.FormatFailure(strings.ToUpper(symbol), err)
		}
		return notifier.FormatReport(report)
	case "/watchlist":
		s.watchlistTask()
		return ""
	default:
		return notifier.FormatHelp(s.Watchlist)
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	err := s.Notifier.SendWithRetry(s.Ctx, text, sendRetries)
	s.Metrics.NotificationSent(err)
	if err != nil {
		s.log.Error().Err(err).Msg("send notification")
	}
}
