// Package metrics provides Prometheus metrics for dashboard API operations.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for dashboard API operations.
type Metrics struct {
	enabled bool

	// Authentication metrics
	loginAttemptsTotal prometheus.Counter
	loginFailuresTotal *prometheus.CounterVec
	sessionActive      prometheus.Gauge

	// Gateway metrics
	requestsTotal   *prometheus.CounterVec
	requestDuration prometheus.Histogram
}

// New creates and registers Prometheus metrics.
// If enabled is false, returns a no-op Metrics instance.
func New(enabled bool) *Metrics {
	m := &Metrics{enabled: enabled}

	if !enabled {
		return m
	}

	// Authentication metrics
	m.loginAttemptsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentadmin_login_attempts_total",
		Help: "Total login attempts",
	})

	m.loginFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentadmin_login_failures_total",
		Help: "Total login failures",
	}, []string{"reason"})

	m.sessionActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rentadmin_session_active",
		Help: "Whether an authenticated session is present (0 or 1)",
	})

	// Gateway metrics
	m.requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentadmin_requests_total",
		Help: "Total API requests by method and status code",
	}, []string{"method", "status"})

	m.requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rentadmin_request_duration_seconds",
		Help:    "API request duration in seconds",
		Buckets: prometheus.DefBuckets,
	})

	return m
}

// RecordLoginAttempt records a login attempt.
func (m *Metrics) RecordLoginAttempt() {
	if !m.enabled {
		return
	}
	m.loginAttemptsTotal.Inc()
}

// RecordLoginFailure records a failed login.
func (m *Metrics) RecordLoginFailure(reason string) {
	if !m.enabled {
		return
	}
	m.loginFailuresTotal.WithLabelValues(reason).Inc()
}

// SetSessionActive sets the session presence gauge.
func (m *Metrics) SetSessionActive(active bool) {
	if !m.enabled {
		return
	}
	v := 0.0
	if active {
		v = 1.0
	}
	m.sessionActive.Set(v)
}

// RecordRequest records a completed API request.
// A status of 0 means the request never reached the server.
func (m *Metrics) RecordRequest(method string, status int, elapsed time.Duration) {
	if !m.enabled {
		return
	}
	m.requestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.requestDuration.Observe(elapsed.Seconds())
}
