package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const testMetricsToken = "test-secret-token-123"

func newMetricsRouter(token string) *gin.Engine {
	r := gin.New()
	r.Use(MetricsAuthMiddleware(token))
	r.GET("/metrics", func(c *gin.Context) {
		c.String(http.StatusOK, "metrics")
	})
	return r
}

func TestMetricsAuthMiddleware_NoAuthConfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newMetricsRouter("")

	w := httptest.NewRecorder()
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "/metrics", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "metrics", w.Body.String())
}

func TestMetricsAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantMessage string
	}{
		{"valid token", "Bearer " + testMetricsToken, http.StatusOK, "metrics"},
		{"lower-case scheme", "bearer " + testMetricsToken, http.StatusOK, "metrics"},
		{"wrong token", "Bearer wrong-token", http.StatusUnauthorized, "Invalid token"},
		{"no header", "", http.StatusUnauthorized, "Bearer token required"},
		{"basic scheme", "Basic dGVzdDp0ZXN0", http.StatusUnauthorized, "Bearer token required"},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, "Bearer token required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newMetricsRouter(testMetricsToken)
			w := httptest.NewRecorder()
			req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "/metrics", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantMessage)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, `Bearer realm="Metrics"`, w.Header().Get("WWW-Authenticate"))
			}
		})
	}
}
