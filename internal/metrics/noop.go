package metrics

import (
	"time"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"
)

// NoopMetrics is used when metrics are disabled. Every method does nothing.
type NoopMetrics struct{}

var _ core.Recorder = (*NoopMetrics)(nil)

// NewNoopMetrics creates a new no-operation metrics recorder
func NewNoopMetrics() core.Recorder {
	return &NoopMetrics{}
}

func (n *NoopMetrics) RecordAuthAttempt(method string, success bool, duration time.Duration) {}
func (n *NoopMetrics) RecordTokenValidation(provider, result string, duration time.Duration) {}
func (n *NoopMetrics) RecordKeyFetch(success bool, duration time.Duration)                    {}
func (n *NoopMetrics) RecordUserProvisioned(outcome string)                                   {}
func (n *NoopMetrics) RecordAuthorizationDenied(action string)                                {}
func (n *NoopMetrics) SetUsersCount(provider string, count int64)                             {}
func (n *NoopMetrics) SetProjectsCount(count int64)                                           {}
func (n *NoopMetrics) SetTasksCount(status string, count int64)                               {}
func (n *NoopMetrics) RecordDatabaseQueryError(operation string)                              {}
