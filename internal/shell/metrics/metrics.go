// Package metrics exposes Prometheus instrumentation for the explorer.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// =============================================================================
// Metrics
// =============================================================================

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	CacheStaleServed prometheus.Counter
	RefreshCycles    prometheus.Counter
	RefreshFailures  prometheus.Counter
	FetchDuration    prometheus.Histogram
}

// New creates and registers all collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "statesexplorer",
			Name:      "http_requests_total",
			Help:      "HTTP requests handled, by route and status class.",
		}, []string{"route", "status"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "statesexplorer",
			Name:      "cache_hits_total",
			Help:      "Dataset listings served from a fresh cache entry.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "statesexplorer",
			Name:      "cache_misses_total",
			Help:      "Dataset listings that required a source fetch.",
		}),
		CacheStaleServed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "statesexplorer",
			Name:      "cache_stale_served_total",
			Help:      "Dataset listings served stale because the source failed.",
		}),
		RefreshCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "statesexplorer",
			Name:      "refresh_cycles_total",
			Help:      "Background cache refresh cycles completed.",
		}),
		RefreshFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "statesexplorer",
			Name:      "refresh_failures_total",
			Help:      "Background cache refresh cycles that failed.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "statesexplorer",
			Name:      "source_fetch_duration_seconds",
			Help:      "Duration of dataset fetches from the source.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.CacheHits,
		m.CacheMisses,
		m.CacheStaleServed,
		m.RefreshCycles,
		m.RefreshFailures,
		m.FetchDuration,
	)
	return m
}

// Handler returns the /metrics HTTP handler for the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
