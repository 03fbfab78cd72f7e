// Package metrics provides Prometheus metrics for the pitchside dashboard service.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultNamespace = "pitchside"
	defaultSubsystem = "dashboard"
)

// Load results used as the "result" label on dataset loads.
const (
	LoadOK        = "ok"
	LoadFailed    = "failed"
	LoadNoData    = "no_data"
	LoadUnchanged = "unchanged"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Dataset Metrics - what the DataSource delivered
	datasetLoads       *prometheus.CounterVec
	datasetLoadLatency prometheus.Histogram
	datasetVersion     prometheus.Gauge
	datasetPlayers     prometheus.Gauge
	datasetTeams       prometheus.Gauge
	datasetMatches     prometheus.Gauge

	// View Metrics - derived view assembly and memoization
	viewBuilds       *prometheus.CounterVec
	viewCacheHits    *prometheus.CounterVec
	viewCacheMisses  *prometheus.CounterVec
	viewBuildLatency *prometheus.HistogramVec
	cacheEntries     prometheus.Gauge
	viewRejected     *prometheus.CounterVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var (
	mu             sync.RWMutex
	globalManager  *Manager            //nolint:gochecknoglobals // intentional global for singleton metrics manager
	customRegistry *prometheus.Registry //nolint:gochecknoglobals // intentional global for metrics registry
)

// Initialize global metrics with defaults so packages can record before Init.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	customRegistry = prometheus.NewRegistry()
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Init replaces the global manager with one built from opts on a fresh
// registry. Call it once during startup, before serving /healthz.
func Init(opts ...Option) *Manager {
	reg := prometheus.NewRegistry()
	m := NewManager(append([]Option{WithPrometheusRegistry(reg)}, opts...)...)

	mu.Lock()
	customRegistry = reg
	globalManager = m
	mu.Unlock()
	return m
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        defaultNamespace,
		subsystem:        defaultSubsystem,
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels, Buckets: m.histogramBuckets}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.datasetLoads = auto.NewCounterVec(m.counterOpts("dataset_loads_total", "Dataset loads by result"), []string{"result"})
	m.datasetLoadLatency = auto.NewHistogram(m.histogramOpts("dataset_load_latency_milliseconds", "Time spent fetching and decoding a dataset"))
	m.datasetVersion = auto.NewGauge(m.gaugeOpts("dataset_version", "Version of the dataset currently served"))
	m.datasetPlayers = auto.NewGauge(m.gaugeOpts("dataset_players", "Players in the current dataset"))
	m.datasetTeams = auto.NewGauge(m.gaugeOpts("dataset_teams", "Teams in the current dataset"))
	m.datasetMatches = auto.NewGauge(m.gaugeOpts("dataset_matches", "Matches in the current dataset"))

	m.viewBuilds = auto.NewCounterVec(m.counterOpts("view_builds_total", "Derived views computed from the dataset"), []string{"view"})
	m.viewCacheHits = auto.NewCounterVec(m.counterOpts("view_cache_hits_total", "View requests served from the memo cache"), []string{"view"})
	m.viewCacheMisses = auto.NewCounterVec(m.counterOpts("view_cache_misses_total", "View requests that had to be recomputed"), []string{"view"})
	m.viewBuildLatency = auto.NewHistogramVec(m.histogramOpts("view_build_latency_milliseconds", "Time spent assembling a view"), []string{"view"})
	m.cacheEntries = auto.NewGauge(m.gaugeOpts("cache_entries", "Entries currently held by the view cache"))
	m.viewRejected = auto.NewCounterVec(m.counterOpts("view_rejected_total", "View requests short-circuited by the source state"), []string{"view", "reason"})

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByType = auto.NewCounterVec(m.counterOpts("errors_by_type_total", "Errors by type and severity"), []string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts("errors_by_endpoint_total", "Errors by endpoint"), []string{"endpoint", "method", "error_type"})
	m.errorLatency = auto.NewHistogramVec(m.histogramOpts("error_latency_milliseconds", "Latency of operations that ended in an error"), []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_bytes", "Heap bytes allocated"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutines", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_milliseconds", "Average GC pause in milliseconds"))
}

func current() *Manager {
	mu.RLock()
	defer mu.RUnlock()
	return globalManager
}

// Dataset Metrics Functions.

// RecordDatasetLoad counts a dataset load with its result label.
func RecordDatasetLoad(result string, latencyMs float64) {
	m := current()
	m.datasetLoads.WithLabelValues(result).Inc()
	m.datasetLoadLatency.Observe(latencyMs)
}

// UpdateDatasetShape publishes the version and entity counts of the served dataset.
func UpdateDatasetShape(version uint64, players, teams, matches int) {
	m := current()
	m.datasetVersion.Set(float64(version))
	m.datasetPlayers.Set(float64(players))
	m.datasetTeams.Set(float64(teams))
	m.datasetMatches.Set(float64(matches))
}

// View Metrics Functions.

// RecordViewBuild counts a view computation and its latency.
func RecordViewBuild(view string, latencyMs float64) {
	m := current()
	m.viewBuilds.WithLabelValues(view).Inc()
	m.viewBuildLatency.WithLabelValues(view).Observe(latencyMs)
}

// RecordCacheHit counts a memoized view served from cache.
func RecordCacheHit(view string) {
	current().viewCacheHits.WithLabelValues(view).Inc()
}

// RecordCacheMiss counts a view request that missed the cache.
func RecordCacheMiss(view string) {
	current().viewCacheMisses.WithLabelValues(view).Inc()
}

// UpdateCacheEntries sets the number of entries in the view cache.
func UpdateCacheEntries(n int) {
	current().cacheEntries.Set(float64(n))
}

// RecordViewRejected counts a view request refused because the source is loading or failed.
func RecordViewRejected(view, reason string) {
	current().viewRejected.WithLabelValues(view, reason).Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	current().httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	current().httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error Metrics Functions.

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	current().errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	current().errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	current().errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	current().systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	current().systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	current().systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	mu.RLock()
	defer mu.RUnlock()
	return customRegistry
}
