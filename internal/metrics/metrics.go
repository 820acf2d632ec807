// Package metrics exposes the service's Prometheus counters on a private registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Composition metrics
	CompositionsSaved   *prometheus.CounterVec
	ValidationFailures  *prometheus.CounterVec
	SynergyComputations prometheus.Counter

	// Video cache metrics
	VideoCacheHits   prometheus.Counter
	VideoCacheMisses prometheus.Counter
	VideoFetchErrors prometheus.Counter

	// Live builder sessions
	BuilderSessions prometheus.Gauge
}

// NewCollector creates a collector with its own registry, so several can coexist in tests.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		CompositionsSaved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "compositions_saved_total",
				Help:      "Compositions written, by operation",
			},
			[]string{"operation"},
		),
		ValidationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "composition_validation_failures_total",
				Help:      "Rejected composition saves, by field",
			},
			[]string{"field"},
		),
		SynergyComputations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "synergy_previews_total",
				Help:      "Synergy previews served",
			},
		),
		VideoCacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "video_cache_hits_total",
				Help:      "Video list requests served from cache",
			},
		),
		VideoCacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "video_cache_misses_total",
				Help:      "Video list requests that hit the upstream API",
			},
		),
		VideoFetchErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "video_fetch_errors_total",
				Help:      "Failed upstream video fetches",
			},
		),
		BuilderSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "builder_sessions",
				Help:      "Open live builder sessions",
			},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.CompositionsSaved,
		c.ValidationFailures,
		c.SynergyComputations,
		c.VideoCacheHits,
		c.VideoCacheMisses,
		c.VideoFetchErrors,
		c.BuilderSessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
