// Package metrics exposes Prometheus counters for the analysis pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the sentinel. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	AnalysesTotal       *prometheus.CounterVec // labels: result=ok|no_data|error
	AnalysisDur         prometheus.Histogram
	PeerFailures        prometheus.Counter
	FundamentalsMissing prometheus.Counter
	ReportsRecorded     *prometheus.CounterVec // labels: result=ok|error
	NotificationsSent   *prometheus.CounterVec // labels: result=ok|error
}

// NewMetrics registers all metrics on a fresh registry that also carries
// the Go runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_analyses_total",
			Help: "Analyses run, by result",
		}, []string{"result"}),
		AnalysisDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sentinel_analysis_duration_seconds",
			Help:    "Wall time of one symbol analysis including data fetches",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		PeerFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_peer_fetch_failures_total",
			Help: "Peers skipped because their history could not be fetched",
		}),
		FundamentalsMissing: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_fundamentals_missing_total",
			Help: "Analyses that ran without a fundamentals snapshot",
		}),
		ReportsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_reports_recorded_total",
			Help: "Reports handed to the recorder, by result",
		}, []string{"result"}),
		NotificationsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_notifications_total",
			Help: "Telegram messages sent, by result",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.AnalysesTotal,
		m.AnalysisDur,
		m.PeerFailures,
		m.FundamentalsMissing,
		m.ReportsRecorded,
		m.NotificationsSent,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveAnalysis records one finished analysis.
func (m *Metrics) ObserveAnalysis(result string, took time.Duration) {
	if m == nil {
		return
	}
	m.AnalysesTotal.WithLabelValues(result).Inc()
	m.AnalysisDur.Observe(took.Seconds())
}

// PeerFetchFailed counts a skipped peer.
func (m *Metrics) PeerFetchFailed(string) {
	if m == nil {
		return
	}
	m.PeerFailures.Inc()
}

func (m *Metrics) FundamentalsMissingInc() {
	if m == nil {
		return
	}
	m.FundamentalsMissing.Inc()
}

func (m *Metrics) ReportRecorded(err error) {
	if m == nil {
		return
	}
	m.ReportsRecorded.WithLabelValues(resultLabel(err)).Inc()
}

func (m *Metrics) NotificationSent(err error) {
	if m == nil {
		return
	}
	m.NotificationsSent.WithLabelValues(resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
