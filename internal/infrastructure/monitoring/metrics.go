package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Traversal metrics
	Traversals        *prometheus.CounterVec
	TraversalDuration *prometheus.HistogramVec
	TraversalRecords  *prometheus.HistogramVec
	TraversalErrors   prometheus.Counter

	// Response cache metrics
	CacheLookups       *prometheus.CounterVec
	CacheInvalidations prometheus.Counter

	// Operation metrics
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec

	registerer prometheus.Registerer
	startTime  time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests   int64   `json:"total_requests"`
	TotalErrors     int64   `json:"total_errors"`
	TotalTraversals int64   `json:"total_traversals"`
	TotalDuration   float64 `json:"-"`
	RequestCount    int64   `json:"-"`
	AvgLatencyMs    float64 `json:"avg_latency_ms"`
	UptimeSeconds   float64 `json:"uptime_seconds"`
}

// CacheStatsFunc reports the live state of a cache
type CacheStatsFunc func() (entries int, hits, misses, evictions uint64)

// NewMetrics creates a metrics collector registered with reg.
// A nil reg uses the default Prometheus registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	m := &Metrics{
		registerer: reg,
		startTime:  time.Now(),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "explorer_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "explorer_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "explorer_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "explorer_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		// Traversal metrics
		Traversals: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "explorer_traversals_total",
				Help: "Total number of traversals by kind and outcome",
			},
			[]string{"kind", "status"},
		),
		TraversalDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "explorer_traversal_duration_seconds",
				Help:    "Traversal duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"kind"},
		),
		TraversalRecords: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "explorer_traversal_records",
				Help:    "Number of records returned per traversal",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"kind"},
		),
		TraversalErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "explorer_traversal_recovered_errors_total",
				Help: "Per-node errors recovered inside traversals",
			},
		),

		// Response cache metrics
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "explorer_response_cache_lookups_total",
				Help: "Response cache lookups by result",
			},
			[]string{"result"},
		),
		CacheInvalidations: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "explorer_response_cache_invalidated_total",
				Help: "Response cache entries dropped by mutations",
			},
		),

		// Operation metrics
		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "explorer_operations_total",
				Help: "Filesystem mutations and launches by outcome",
			},
			[]string{"operation", "status"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "explorer_operation_duration_seconds",
				Help:    "Filesystem mutation duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"operation"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "explorer_uptime_seconds",
			Help: "Process uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// RegisterCache exposes a cache's live counters under the given name
func (m *Metrics) RegisterCache(name string, stats CacheStatsFunc) {
	factory := promauto.With(m.registerer)
	labels := prometheus.Labels{"cache": name}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name:        "explorer_cache_entries",
			Help:        "Current number of cache entries",
			ConstLabels: labels,
		},
		func() float64 { n, _, _, _ := stats(); return float64(n) },
	)
	factory.NewCounterFunc(
		prometheus.CounterOpts{
			Name:        "explorer_cache_hits_total",
			Help:        "Total cache hits",
			ConstLabels: labels,
		},
		func() float64 { _, h, _, _ := stats(); return float64(h) },
	)
	factory.NewCounterFunc(
		prometheus.CounterOpts{
			Name:        "explorer_cache_misses_total",
			Help:        "Total cache misses",
			ConstLabels: labels,
		},
		func() float64 { _, _, mi, _ := stats(); return float64(mi) },
	)
	factory.NewCounterFunc(
		prometheus.CounterOpts{
			Name:        "explorer_cache_evictions_total",
			Help:        "Total cache evictions",
			ConstLabels: labels,
		},
		func() float64 { _, _, _, e := stats(); return float64(e) },
	)
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	// Update snapshot
	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	m.snapshot.RequestCount++
	if status[0] == '4' || status[0] == '5' {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordTraversal records a finished traversal
func (m *Metrics) RecordTraversal(kind string, duration time.Duration, records, recovered int, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.Traversals.WithLabelValues(kind, status).Inc()
	if err == nil {
		m.TraversalDuration.WithLabelValues(kind).Observe(duration.Seconds())
		m.TraversalRecords.WithLabelValues(kind).Observe(float64(records))
	}
	if recovered > 0 {
		m.TraversalErrors.Add(float64(recovered))
	}

	m.mu.Lock()
	m.snapshot.TotalTraversals++
	m.mu.Unlock()
}

// RecordCacheLookup records a response cache hit or miss
func (m *Metrics) RecordCacheLookup(hit bool) {
	if hit {
		m.CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.CacheLookups.WithLabelValues("miss").Inc()
}

// RecordInvalidation records dropped response cache entries
func (m *Metrics) RecordInvalidation(dropped int) {
	if dropped > 0 {
		m.CacheInvalidations.Add(float64(dropped))
	}
}

// RecordOperation records a mutation or launch
func (m *Metrics) RecordOperation(operation, status string, duration time.Duration) {
	m.Operations.WithLabelValues(operation, status).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// Snapshot returns current totals for the JSON health endpoint
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	snap := m.snapshot
	m.mu.RUnlock()

	if snap.RequestCount > 0 {
		snap.AvgLatencyMs = snap.TotalDuration / float64(snap.RequestCount) * 1000
	}
	snap.UptimeSeconds = time.Since(m.startTime).Seconds()
	return snap
}
