package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics. A nil *Metrics is valid and records
// nothing, so resolvers can run without a collector.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Resolution metrics
	ModeQueries     *prometheus.CounterVec
	ModeEvaluations *prometheus.CounterVec
	HostResolutions *prometheus.CounterVec
	CachedModes     prometheus.Gauge

	// Collaborator metrics
	FlagRefreshes *prometheus.CounterVec
	SettingsKeys  prometheus.Gauge

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests   int64 `json:"total_requests"`
	TotalErrors     int64 `json:"total_errors"`
	ModeQueries     int64 `json:"mode_queries"`
	ModeEvaluations int64 `json:"mode_evaluations"`
	HostResolutions int64 `json:"host_resolutions"`
}

// NewMetrics creates a metrics collector registered with reg. Passing
// prometheus.DefaultRegisterer exposes the metrics on promhttp.Handler().
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostconfig_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hostconfig_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "path"},
		),

		// Resolution metrics
		ModeQueries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostconfig_mode_queries_total",
				Help: "Total number of diagnostic mode queries",
			},
			[]string{"key"},
		),
		ModeEvaluations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostconfig_mode_evaluations_total",
				Help: "Diagnostic mode policy evaluations; at most one per key",
			},
			[]string{"key", "mode", "reason"},
		),
		HostResolutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostconfig_host_variant_resolutions_total",
				Help: "Out-of-process host toggle resolutions",
			},
			[]string{"toggle", "value"},
		),
		CachedModes: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "hostconfig_cached_modes",
				Help: "Number of setting keys with a cached mode",
			},
		),

		// Collaborator metrics
		FlagRefreshes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostconfig_flag_refreshes_total",
				Help: "Remote feature flag refresh attempts",
			},
			[]string{"status"},
		),
		SettingsKeys: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "hostconfig_settings_keys",
				Help: "Number of persisted settings loaded",
			},
		),

		// System metrics
		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "hostconfig_uptime_seconds",
				Help: "Process uptime in seconds",
			},
		),
	}

	return m
}

// UpdateUptime refreshes the uptime gauge
func (m *Metrics) UpdateUptime() {
	if m == nil {
		return
	}
	m.Uptime.Set(time.Since(m.startTime).Seconds())
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalRequests++
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordModeQuery records a GetMode call
func (m *Metrics) RecordModeQuery(key string) {
	if m == nil {
		return
	}
	m.ModeQueries.WithLabelValues(key).Inc()

	m.mu.Lock()
	m.snapshot.ModeQueries++
	m.mu.Unlock()
}

// RecordModeEvaluation records one policy evaluation
func (m *Metrics) RecordModeEvaluation(key, mode, reason string) {
	if m == nil {
		return
	}
	m.ModeEvaluations.WithLabelValues(key, mode, reason).Inc()

	m.mu.Lock()
	m.snapshot.ModeEvaluations++
	m.mu.Unlock()
}

// SetCachedModes sets the number of cached keys
func (m *Metrics) SetCachedModes(count int) {
	if m == nil {
		return
	}
	m.CachedModes.Set(float64(count))
}

// RecordHostResolution records a host toggle decision
func (m *Metrics) RecordHostResolution(toggle string, value bool) {
	if m == nil {
		return
	}
	v := "false"
	if value {
		v = "true"
	}
	m.HostResolutions.WithLabelValues(toggle, v).Inc()

	m.mu.Lock()
	m.snapshot.HostResolutions++
	m.mu.Unlock()
}

// RecordFlagRefresh records a remote flag refresh ("success" or "error")
func (m *Metrics) RecordFlagRefresh(status string) {
	if m == nil {
		return
	}
	m.FlagRefreshes.WithLabelValues(status).Inc()
}

// SetSettingsKeys sets the number of loaded settings
func (m *Metrics) SetSettingsKeys(count int) {
	if m == nil {
		return
	}
	m.SettingsKeys.Set(float64(count))
}

// Snapshot returns current counter values for the JSON API
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
