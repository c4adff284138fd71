package core

import (
	"context"
	"time"
)

// Recorder defines the interface for recording application metrics.
// Implementations include Metrics (Prometheus-based) and NoopMetrics (no-op).
type Recorder interface {
	// Authentication
	RecordAuthAttempt(method string, success bool, duration time.Duration)
	RecordTokenValidation(provider, result string, duration time.Duration)
	RecordKeyFetch(success bool, duration time.Duration)
	RecordUserProvisioned(outcome string)

	// Authorization
	RecordAuthorizationDenied(action string)

	// Gauge Setters (for periodic updates)
	SetUsersCount(provider string, count int64)
	SetProjectsCount(count int64)
	SetTasksCount(status string, count int64)

	// Database Operations
	RecordDatabaseQueryError(operation string)
}

// MetricsStore defines the DB operations needed by the gauge cache wrapper.
type MetricsStore interface {
	CountUsersByProvider(ctx context.Context) (map[string]int64, error)
	CountProjects(ctx context.Context) (int64, error)
	CountTasksByStatus(ctx context.Context) (map[string]int64, error)
}
