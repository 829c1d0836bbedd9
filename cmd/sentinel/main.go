package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"StockSentinel/internal/analyzer"
	"StockSentinel/internal/collector"
	"StockSentinel/internal/config"
	"StockSentinel/internal/logger"
	"StockSentinel/internal/metrics"
	"StockSentinel/internal/notifier"
	"StockSentinel/internal/peers"
	"StockSentinel/internal/recorder"
	"StockSentinel/internal/scheduler"
	"StockSentinel/internal/server"

	"github.com/rs/zerolog"
)

func main() {
	defaultCfg := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultCfg = v
	}
	cfgPath := flag.String("config", defaultCfg, "Path to the YAML config file")
	symbol := flag.String("analyze", "", "Analyse one symbol, print the JSON report and exit")
	runNow := flag.Bool("run-now", os.Getenv("RUN_ON_START") == "true", "Run the watchlist analysis once at startup")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	logger.SetGlobalLogger(log)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	fetcher := newFetcher(cfg)
	log.Info().Str("source", fetcher.Name()).Msg("data source selected")

	table := peers.DefaultTable
	if cfg.Peers.TableFile != "" {
		table, err = peers.LoadTable(cfg.Peers.TableFile)
		if err != nil {
			log.Fatal().Err(err).Msg("load peer table")
		}
	}

	m := metrics.NewMetrics()
	col := collector.NewCollector(fetcher, cfg.DataSource.LookbackDays, log)

	cmp := peers.NewComparator(table, col, log)
	cmp.Limit = cfg.Peers.Limit
	cmp.Timeout = time.Duration(cfg.Peers.TimeoutSeconds) * time.Second
	cmp.LookbackDays = cfg.DataSource.PeerLookbackDays
	cmp.Observer = m

	recs, store := newRecorders(cfg, log)
	defer recs.Close()

	an := analyzer.New(col, cmp, cfg.DataSource.ExchangeSuffix, log)
	an.Recorder = recs
	an.Metrics = m
	an.USDINRRate = cfg.Fundamentals.USDINRRate

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *symbol != "" {
		code := analyzeOnce(ctx, an, *symbol, log)
		recs.Close()
		os.Exit(code)
	}

	// Telegram is optional; without it reports are only recorded.
	var sender scheduler.Sender
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log)
	if tn.Enabled() {
		sender = tn
	} else {
		log.Warn().Msg("telegram not configured, notifications disabled")
	}

	sched := scheduler.NewScheduler(ctx, an, sender, cfg.Watchlist, log)
	sched.Metrics = m
	if err := sched.RegisterAll(cfg.Schedule.AnalysisCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	if tn.Enabled() {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info().Msg("telegram polling started")
	}

	srv := server.New(server.Config{
		Port:      cfg.Server.Port,
		Log:       log,
		Analyzer:  an,
		Store:     store,
		Metrics:   m,
		Watchlist: cfg.Watchlist,
		Suffix:    cfg.DataSource.ExchangeSuffix,
	})
	go func() {
		if err := srv.Start(); err != nil {
			log.Error().Err(err).Msg("http server")
			cancel()
		}
	}()

	if *runNow {
		log.Info().Msg("run-now enabled, executing watchlist analysis")
		go sched.RunNow()
	}

	log.Info().Strs("watchlist", cfg.Watchlist).Msg("StockSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Info().Msg("shutdown signal received, stopping...")
	case <-ctx.Done():
	}
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	log.Info().Msg("StockSentinel stopped")
}

func newFetcher(cfg *config.Config) collector.BarFetcher {
	ds := cfg.DataSource
	switch ds.Provider {
	case config.ProviderREST:
		return collector.NewRESTFetcher(ds.BaseURL, ds.APIKey, cfg.Proxy)
	case config.ProviderYFinance:
		return collector.NewYFinanceFetcher(ds.RequestsPerSecond)
	case config.ProviderMock:
		return &collector.MockFetcher{Price: 100}
	default:
		return collector.NewYahooFetcher(cfg.Proxy, ds.RequestsPerSecond)
	}
}

// newRecorders opens every configured recorder. One that fails to open is
// skipped with a warning. The store reads from SQLite when available and
// falls back to the JSON files.
func newRecorders(cfg *config.Config, log zerolog.Logger) (recorder.MultiRecorder, recorder.Store) {
	var (
		recs  recorder.MultiRecorder
		store recorder.Store
	)
	if cfg.Reports.Dir != "" {
		jr, err := recorder.NewJSONFileRecorder(cfg.Reports.Dir)
		if err != nil {
			log.Warn().Err(err).Msg("init json recorder failed, skipping")
		} else {
			recs = append(recs, jr)
			store = jr
		}
	}
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, skipping")
		} else {
			recs = append(recs, sr)
			store = sr
		}
	}
	if len(recs) == 0 {
		recs = append(recs, recorder.NewNoopRecorder())
	}
	return recs, store
}

func analyzeOnce(ctx context.Context, an *analyzer.Analyzer, symbol string, log zerolog.Logger) int {
	report, err := an.Analyze(ctx, symbol)
	if err != nil {
		log.Error().Err(err).Str("symbol", symbol).Msg("analysis failed")
		return 1
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Error().Err(err).Msg("encode report")
		return 1
	}
	return 0
}
