// Package metrics defines the Prometheus collectors of the ranking service
// and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "resume_ranker"

// Ranking pass outcomes.
const (
	ResultOK      = "ok"
	ResultEmpty   = "empty"
	ResultNoQuery = "no_query"
)

// Metrics holds all Prometheus collectors for the service. Each instance owns
// its registry so several servers can live in one process.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	RankingPassesTotal   *prometheus.CounterVec
	RankingDuration      prometheus.Histogram
	RankedDocuments      prometheus.Histogram
	DocumentsAddedTotal  prometheus.Counter
	ActiveSessions       prometheus.Gauge
}

// New creates and registers all collectors, including the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Number of HTTP requests currently being processed.",
			},
		),
		RankingPassesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ranking_passes_total",
				Help:      "Total ranking passes by result (ok, empty, no_query).",
			},
			[]string{"result"},
		),
		RankingDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "ranking_duration_seconds",
				Help:      "Duration of a full scoring pass in seconds.",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
		),
		RankedDocuments: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "ranked_documents",
				Help:      "Number of documents scored per ranking pass.",
				Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 1000},
			},
		),
		DocumentsAddedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "documents_added_total",
				Help:      "Total documents added to ranking sessions.",
			},
		),
		ActiveSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_sessions",
				Help:      "Number of ranking sessions held in memory.",
			},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.RankingPassesTotal,
		m.RankingDuration,
		m.RankedDocuments,
		m.DocumentsAddedTotal,
		m.ActiveSessions,
	)

	return m
}

// ObserveRanking records one ranking pass.
func (m *Metrics) ObserveRanking(result string, documents int, seconds float64) {
	m.RankingPassesTotal.WithLabelValues(result).Inc()
	if result != ResultOK {
		return
	}
	m.RankingDuration.Observe(seconds)
	m.RankedDocuments.Observe(float64(documents))
}

// Registry returns the registry the collectors are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
