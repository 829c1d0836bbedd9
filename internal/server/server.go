// Package server exposes reports and metrics over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"StockSentinel/internal/collector"
	"StockSentinel/internal/metrics"
	"StockSentinel/internal/model"
	"StockSentinel/internal/recorder"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// ReportAnalyzer runs a fresh analysis for one symbol.
type ReportAnalyzer interface {
	Analyze(ctx context.Context, symbol string) (*model.Report, error)
}

// Config holds server configuration
type Config struct {
	Port      int
	Log       zerolog.Logger
	Analyzer  ReportAnalyzer
	Store     recorder.Store // optional
	Metrics   *metrics.Metrics
	Watchlist []string
	Suffix    string
	DevMode   bool
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	cfg    Config
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
		cfg:    cfg,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	// a fresh analysis fetches the subject and its peers
	s.router.Use(middleware.Timeout(75 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Handle("/metrics", s.cfg.Metrics.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/watchlist", s.handleWatchlist)
		r.Get("/analysis/{symbol}", s.handleAnalysis)
		r.Get("/reports/{symbol}", s.handleLatestReport)
	})
}

// Start starts the HTTP server. It returns nil after Shutdown.
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	list := s.cfg.Watchlist
	if list == nil {
		list = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"symbols": list})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	report, err := s.cfg.Analyzer.Analyze(r.Context(), symbol)
	switch {
	case errors.Is(err, model.ErrNoData):
		writeError(w, http.StatusNotFound, err)
		return
	case err != nil:
		s.log.Error().Err(err).Str("symbol", symbol).Msg("analysis failed")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleLatestReport(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Store == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("report storage disabled"))
		return
	}
	ticker := collector.NormalizeSymbol(chi.URLParam(r, "symbol"), s.cfg.Suffix)
	symbol := collector.DisplaySymbol(ticker, s.cfg.Suffix)

	report, err := s.cfg.Store.LatestReport(symbol)
	switch {
	case errors.Is(err, recorder.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
		return
	case err != nil:
		s.log.Error().Err(err).Str("symbol", symbol).Msg("load report")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
