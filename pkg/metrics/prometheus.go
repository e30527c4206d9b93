// Package metrics provides Prometheus metrics for the photon MVA estimator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the estimator service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Scoring
	scoresTotal    *prometheus.CounterVec
	scoringErrors  *prometheus.CounterVec
	scoringLatency *prometheus.HistogramVec
	scoreValues    *prometheus.HistogramVec

	// Model bank
	modelsLoaded prometheus.Gauge
	modelLoadErr prometheus.Counter

	// Batches
	batchesTotal prometheus.Counter
	batchSize    prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "phomva",
		subsystem:        "estimator",
		histogramBuckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.scoresTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scores_total",
		Help:      "Total number of candidates scored, by category",
	}, []string{"category"})

	m.scoringErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_errors_total",
		Help:      "Total number of failed scoring calls, by error kind",
	}, []string{"kind"})

	m.scoringLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_latency_ms",
		Help:      "Time to assemble features and evaluate the model in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"category"})

	m.scoreValues = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_value",
		Help:      "Distribution of raw classifier outputs, by category",
		Buckets:   prometheus.LinearBuckets(-1, 0.2, 11),
	}, []string{"category"})

	m.modelsLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "models_loaded",
		Help:      "Number of category models held by the model bank",
	})

	m.modelLoadErr = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "model_load_errors_total",
		Help:      "Total number of model bank construction failures",
	})

	m.batchesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batches_total",
		Help:      "Total number of event batches scored",
	})

	m.batchSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_candidates",
		Help:      "Number of candidates per scored event batch",
		Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "errors_total",
		Help:      "Total number of HTTP errors by endpoint and type",
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_usage_bytes",
		Help:      "Heap bytes allocated",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutine_count",
		Help:      "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "gc_pause_time_milliseconds",
		Help:      "Average GC pause time in milliseconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// RecordScore counts one successful score and its value.
func RecordScore(category string, score float64) {
	globalManager.scoresTotal.WithLabelValues(category).Inc()
	globalManager.scoreValues.WithLabelValues(category).Observe(score)
}

// RecordScoringError counts one failed scoring call.
func RecordScoringError(kind string) {
	globalManager.scoringErrors.WithLabelValues(kind).Inc()
}

// RecordScoringLatency records scoring latency in milliseconds.
func RecordScoringLatency(category string, latencyMs float64) {
	globalManager.scoringLatency.WithLabelValues(category).Observe(latencyMs)
}

// UpdateModelsLoaded sets the number of models held by the bank.
func UpdateModelsLoaded(count int) {
	globalManager.modelsLoaded.Set(float64(count))
}

// RecordModelLoadError counts a failed model bank construction.
func RecordModelLoadError() {
	globalManager.modelLoadErr.Inc()
}

// RecordBatch counts one scored batch of n candidates.
func RecordBatch(n int) {
	globalManager.batchesTotal.Inc()
	globalManager.batchSize.Observe(float64(n))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an HTTP error for an endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the allocated heap size.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records the average GC pause in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
