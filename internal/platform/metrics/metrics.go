package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the process-wide Prometheus metrics that do not belong to a
// single service.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	ActiveSessions      prometheus.Gauge
	StorageErrors       *prometheus.CounterVec
}

// New creates and registers the process metrics with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the metrics with reg. Tests pass a fresh
// registry to avoid duplicate registration panics.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "harborbank_http_requests_total",
			Help: "HTTP requests by route pattern, method and status code",
		}, []string{"route", "method", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "harborbank_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "harborbank_active_sessions",
			Help: "1 while a user is signed in, 0 otherwise",
		}),
		StorageErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "harborbank_storage_errors_total",
			Help: "Failed durable storage operations by operation",
		}, []string{"operation"}),
	}
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(route, method, status string, seconds float64) {
	m.HTTPRequests.WithLabelValues(route, method, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(route).Observe(seconds)
}

// SetSessionActive flips the active session gauge.
func (m *Metrics) SetSessionActive(active bool) {
	if active {
		m.ActiveSessions.Set(1)
		return
	}
	m.ActiveSessions.Set(0)
}

// IncrementStorageError counts a failed storage operation.
func (m *Metrics) IncrementStorageError(operation string) {
	m.StorageErrors.WithLabelValues(operation).Inc()
}
