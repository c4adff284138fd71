package metrics

import (
	"strconv"
	"time"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"

	"github.com/gin-gonic/gin"
)

// HTTPMetricsMiddleware records request count, duration and in-flight
// requests. It is a pass-through unless m is the Prometheus recorder.
func HTTPMetricsMiddleware(m core.Recorder) gin.HandlerFunc {
	metrics, ok := m.(*Metrics)
	if !ok {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		// Skip metrics endpoint to avoid self-recording
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		c.Next()

		duration := time.Since(start).Seconds()
		method := c.Request.Method
		path := normalizePath(c.FullPath()) // route pattern, not the raw path
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
	}
}

// normalizePath returns the route pattern (e.g. "/api/tasks/:id"), or
// "unknown" for unmatched requests so label cardinality stays bounded.
func normalizePath(fullPath string) string {
	if fullPath == "" {
		return "unknown"
	}
	return fullPath
}
