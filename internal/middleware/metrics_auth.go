package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MetricsAuthMiddleware guards the metrics endpoint with a static bearer
// token. An empty token leaves the endpoint open.
func MetricsAuthMiddleware(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expected == "" {
			c.Next()
			return
		}

		provided, ok := bearerToken(c)
		if !ok {
			abortMetrics(c, "Bearer token required")
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			zap.L().Warn("[Metrics] Invalid scrape token", zap.String("client_ip", c.ClientIP()))
			abortMetrics(c, "Invalid token")
			return
		}

		c.Next()
	}
}

func abortMetrics(c *gin.Context, description string) {
	c.Header("WWW-Authenticate", `Bearer realm="Metrics"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":             "unauthorized",
		"error_description": description,
	})
}
