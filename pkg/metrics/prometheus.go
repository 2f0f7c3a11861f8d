// Package metrics provides Prometheus metrics for the vibematch service.
package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
	engineSubsystem        = "engine"
)

// latencyBucketsMs covers sub-millisecond profile builds up to slow catalog scans.
var latencyBucketsMs = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 25, 50, 100, 250} //nolint:gochecknoglobals // bucket table

// Manager manages all Prometheus metrics for the vibematch service.
type Manager struct {
	namespace       string
	refreshInterval time.Duration
	registry        prometheus.Registerer

	// Engine metrics
	eventsRecorded          *prometheus.CounterVec
	eventsRejected          *prometheus.CounterVec
	eventsDuplicate         prometheus.Counter
	anomaliesDetected       *prometheus.CounterVec
	profileBuildLatency     prometheus.Histogram
	recommendLatency        prometheus.Histogram
	recommendationsReturned prometheus.Histogram

	// Session and catalog state
	activeSessions prometheus.Gauge
	catalogItems   prometheus.Gauge
	catalogReloads *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	rateLimited         prometheus.Counter

	errorRateByComponent *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
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
		namespace:       "vibematch",
		refreshInterval: defaultRefreshInterval,
		registry:        prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one block per metric
	auto := promauto.With(m.registry)

	m.eventsRecorded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: engineSubsystem,
		Name:      "events_recorded_total",
		Help:      "Events appended to a session log, by content type and action",
	}, []string{"content_type", "action"})

	m.eventsRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: engineSubsystem,
		Name:      "events_rejected_total",
		Help:      "Events refused by validation, by reason",
	}, []string{"reason"})

	m.eventsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: engineSubsystem,
		Name:      "events_duplicate_total",
		Help:      "Events acknowledged as duplicates of an already recorded event id",
	})

	m.anomaliesDetected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: engineSubsystem,
		Name:      "anomalies_detected_total",
		Help:      "Behavioral anomalies detected, by type",
	}, []string{"type"})

	m.profileBuildLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: engineSubsystem,
		Name:      "profile_build_duration_ms",
		Help:      "Time to build a behavioral profile in milliseconds",
		Buckets:   latencyBucketsMs,
	})

	m.recommendLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: engineSubsystem,
		Name:      "recommend_duration_ms",
		Help:      "Time to rank the catalog in milliseconds",
		Buckets:   latencyBucketsMs,
	})

	m.recommendationsReturned = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: engineSubsystem,
		Name:      "recommendations_returned",
		Help:      "Number of recommendations returned per request",
		Buckets:   []float64{0, 1, 3, 5, 10, 20, 50},
	})

	m.activeSessions = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: engineSubsystem,
		Name:      "active_sessions",
		Help:      "Sessions currently held in memory",
	})

	m.catalogItems = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "catalog",
		Name:      "items",
		Help:      "Items in the current catalog snapshot",
	})

	m.catalogReloads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "catalog",
		Name:      "reloads_total",
		Help:      "Catalog reload attempts, by result",
	}, []string{"result"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.rateLimited = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Requests refused by the event rate limiter",
	})

	m.errorRateByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: engineSubsystem,
		Name:      "errors_by_component_total",
		Help:      "Errors by component and error type",
	}, []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_usage_bytes",
		Help:      "Heap bytes in use",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutine_count",
		Help:      "Number of goroutines",
	})
}

// RunSystemCollector samples memory and goroutine gauges every refresh
// interval until ctx is done.
func (m *Manager) RunSystemCollector(ctx context.Context) {
	ticker := time.NewTicker(m.refreshInterval)
	defer ticker.Stop()
	for {
		m.sampleSystem()
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (m *Manager) sampleSystem() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.systemMemoryUsage.Set(float64(ms.HeapInuse))
	m.systemGoroutineCount.Set(float64(runtime.NumGoroutine()))
}

// Default returns the global manager registered on the custom registry.
func Default() *Manager {
	return globalManager
}

// RecordEventRecorded increments the recorded events counter.
func RecordEventRecorded(contentType, action string) {
	globalManager.eventsRecorded.WithLabelValues(contentType, action).Inc()
}

// RecordEventRejected increments the rejected events counter.
func RecordEventRejected(reason string) {
	globalManager.eventsRejected.WithLabelValues(reason).Inc()
}

// RecordEventDuplicate increments the duplicate events counter.
func RecordEventDuplicate() {
	globalManager.eventsDuplicate.Inc()
}

// RecordAnomaly increments the anomaly counter for anomalyType.
func RecordAnomaly(anomalyType string) {
	globalManager.anomaliesDetected.WithLabelValues(anomalyType).Inc()
}

// RecordProfileBuildLatency records profile build latency in milliseconds.
func RecordProfileBuildLatency(latencyMs float64) {
	globalManager.profileBuildLatency.Observe(latencyMs)
}

// RecordRecommendLatency records ranking latency in milliseconds.
func RecordRecommendLatency(latencyMs float64) {
	globalManager.recommendLatency.Observe(latencyMs)
}

// RecordRecommendationsReturned records the size of a recommendation list.
func RecordRecommendationsReturned(n int) {
	globalManager.recommendationsReturned.Observe(float64(n))
}

// UpdateActiveSessions sets the active sessions gauge.
func UpdateActiveSessions(count int) {
	globalManager.activeSessions.Set(float64(count))
}

// UpdateCatalogItems sets the catalog size gauge.
func UpdateCatalogItems(count int) {
	globalManager.catalogItems.Set(float64(count))
}

// RecordCatalogReload counts a reload attempt; result is "ok" or "error".
func RecordCatalogReload(result string) {
	globalManager.catalogReloads.WithLabelValues(result).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in seconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordRateLimited counts a request refused by the rate limiter.
func RecordRateLimited() {
	globalManager.rateLimited.Inc()
}

// RecordErrorByComponent records an error by component and type.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
