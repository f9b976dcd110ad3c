package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config contains metrics configuration.
type Config struct {
	// Namespace is the metric name prefix.
	// Default: "spyglass"
	Namespace string

	// Subsystem is the metric name subsystem segment.
	// Default: "client"
	Subsystem string

	// RequestDurationBuckets overrides the latency histogram buckets.
	RequestDurationBuckets []float64
}

// Collector registers and records all client metrics.
//
// Metrics:
//   - spyglass_client_requests_total: request count by operation and status
//   - spyglass_client_request_duration_seconds: request latency by operation
//   - spyglass_client_errors_total: error count by class
//   - spyglass_client_cache_hits_total / cache_misses_total
type Collector struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorsTotal     *prometheus.CounterVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
}

// NewCollector creates a collector and registers its metrics on the
// given registry. A nil registry creates a private one.
func NewCollector(cfg Config, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "spyglass"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "client"
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		// Search round-trips land between a few ms and a few seconds.
		cfg.RequestDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	}

	c := &Collector{
		registry: registry,

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "requests_total",
				Help:      "Total number of requests sent to the search service",
			},
			[]string{"operation", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "request_duration_seconds",
				Help:      "Duration of search service requests in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"operation"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "errors_total",
				Help:      "Total number of request failures by error class",
			},
			[]string{"class"},
		),

		cacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cache_hits_total",
				Help:      "Total number of search responses served from the local cache",
			},
		),

		cacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cache_misses_total",
				Help:      "Total number of searches not found in the local cache",
			},
		),
	}

	registry.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.errorsTotal,
		c.cacheHits,
		c.cacheMisses,
	)

	return c
}

// ObserveRequest records one completed request.
func (c *Collector) ObserveRequest(operation, status string, duration time.Duration) {
	c.requestsTotal.WithLabelValues(operation, status).Inc()
	c.requestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordError records a request failure by error class.
func (c *Collector) RecordError(class string) {
	c.errorsTotal.WithLabelValues(class).Inc()
}

// RecordCacheHit records a search served from the local cache.
func (c *Collector) RecordCacheHit() {
	c.cacheHits.Inc()
}

// RecordCacheMiss records a search that missed the local cache.
func (c *Collector) RecordCacheMiss() {
	c.cacheMisses.Inc()
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns an HTTP handler exposing the collector's registry in
// the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
