package metrics

import (
	"sync"
	"time"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ensure Metrics implements core.Recorder at compile time
var _ core.Recorder = (*Metrics)(nil)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Authentication Metrics
	AuthAttemptsTotal       *prometheus.CounterVec
	AuthDuration            *prometheus.HistogramVec
	TokenValidationTotal    *prometheus.CounterVec
	TokenValidationDuration *prometheus.HistogramVec
	KeyFetchTotal           *prometheus.CounterVec
	KeyFetchDuration        prometheus.Histogram
	UsersProvisionedTotal   *prometheus.CounterVec

	// Authorization Metrics
	AuthorizationDeniedTotal *prometheus.CounterVec

	// Resource Gauges
	UsersTotal    *prometheus.GaugeVec
	ProjectsTotal prometheus.Gauge
	TasksTotal    *prometheus.GaugeVec

	// HTTP Request Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Database Query Metrics
	DatabaseQueryErrorsTotal *prometheus.CounterVec
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Init returns the Prometheus recorder when enabled and a no-op recorder
// otherwise. Prometheus collectors are registered at most once per process.
func Init(enabled bool) core.Recorder {
	if !enabled {
		return NewNoopMetrics()
	}

	once.Do(func() {
		defaultMetrics = initMetrics()
	})
	return defaultMetrics
}

func initMetrics() *Metrics {
	return &Metrics{
		AuthAttemptsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taskboard_auth_attempts_total",
				Help: "Total number of authentication attempts",
			},
			[]string{"method", "result"}, // method: local, external, register
		),
		AuthDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "taskboard_auth_duration_seconds",
				Help:    "Time spent authenticating a request",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		TokenValidationTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taskboard_token_validations_total",
				Help: "Total number of bearer token validations",
			},
			[]string{"provider", "result"}, // result: valid, invalid, expired, key_unavailable
		),
		TokenValidationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "taskboard_token_validation_duration_seconds",
				Help:    "Time spent validating bearer tokens",
				Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"provider"},
		),
		KeyFetchTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taskboard_signing_key_fetches_total",
				Help: "Total number of signing key set downloads",
			},
			[]string{"result"},
		),
		KeyFetchDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "taskboard_signing_key_fetch_duration_seconds",
				Help:    "Time spent downloading the signing key set",
				Buckets: prometheus.DefBuckets,
			},
		),
		UsersProvisionedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taskboard_users_provisioned_total",
				Help: "Users created or reconciled on external login",
			},
			[]string{"outcome"}, // created, reconciled
		),
		AuthorizationDeniedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taskboard_authorization_denied_total",
				Help: "Total number of requests denied by authorization checks",
			},
			[]string{"action"},
		),
		UsersTotal: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "taskboard_users",
				Help: "Current number of users by login provider",
			},
			[]string{"provider"},
		),
		ProjectsTotal: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "taskboard_projects",
				Help: "Current number of projects",
			},
		),
		TasksTotal: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "taskboard_tasks",
				Help: "Current number of tasks by status",
			},
			[]string{"status"},
		),
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Current number of HTTP requests being served",
			},
		),
		DatabaseQueryErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "database_query_errors_total",
				Help: "Total number of database query errors during metric collection",
			},
			[]string{"operation"},
		),
	}
}

func result(success bool) string {
	if success {
		return resultSuccess
	}
	return resultFailure
}

// RecordAuthAttempt records a login or registration attempt
func (m *Metrics) RecordAuthAttempt(method string, success bool, duration time.Duration) {
	m.AuthAttemptsTotal.WithLabelValues(method, result(success)).Inc()
	m.AuthDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordTokenValidation records a bearer token validation
func (m *Metrics) RecordTokenValidation(provider, result string, duration time.Duration) {
	m.TokenValidationTotal.WithLabelValues(provider, result).Inc()
	m.TokenValidationDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordKeyFetch records a signing key set download
func (m *Metrics) RecordKeyFetch(success bool, duration time.Duration) {
	m.KeyFetchTotal.WithLabelValues(result(success)).Inc()
	m.KeyFetchDuration.Observe(duration.Seconds())
}

func (m *Metrics) RecordUserProvisioned(outcome string) {
	m.UsersProvisionedTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordAuthorizationDenied(action string) {
	m.AuthorizationDeniedTotal.WithLabelValues(action).Inc()
}

// SetUsersCount sets the user gauge for provider (for periodic updates)
func (m *Metrics) SetUsersCount(provider string, count int64) {
	m.UsersTotal.WithLabelValues(provider).Set(float64(count))
}

// SetProjectsCount sets the project gauge (for periodic updates)
func (m *Metrics) SetProjectsCount(count int64) {
	m.ProjectsTotal.Set(float64(count))
}

// SetTasksCount sets the task gauge for status (for periodic updates)
func (m *Metrics) SetTasksCount(status string, count int64) {
	m.TasksTotal.WithLabelValues(status).Set(float64(count))
}

// RecordDatabaseQueryError records a database query error during metric collection
func (m *Metrics) RecordDatabaseQueryError(operation string) {
	m.DatabaseQueryErrorsTotal.WithLabelValues(operation).Inc()
}
