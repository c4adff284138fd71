package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/config"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/metrics"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/middleware"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// setupRouter configures the Gin router with all routes and middleware
func setupRouter(
	cfg *config.Config,
	db *store.Store,
	authenticator middleware.Authenticator,
	h handlerSet,
	recorder core.Recorder,
	rateLimiters rateLimitMiddlewares,
) *gin.Engine {
	setupGinMode(cfg)
	r := gin.New()

	// Metrics middleware goes first so it observes the full request
	r.Use(metrics.HTTPMetricsMiddleware(recorder))
	r.Use(requestLogger(), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))

	r.GET("/health", createHealthCheckHandler(db))
	setupMetricsEndpoint(r, cfg)

	setupAllRoutes(r, authenticator, h, rateLimiters)

	zap.L().Info("[Server] Routes registered",
		zap.String("addr", cfg.ServerAddr),
		zap.String("environment", cfg.Environment),
		zap.Bool("external_auth", cfg.ExternalAuthEnabled))
	return r
}

func corsConfig(cfg *config.Config) cors.Config {
	return cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "WWW-Authenticate"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// setupMetricsEndpoint configures the Prometheus metrics endpoint
func setupMetricsEndpoint(r *gin.Engine, cfg *config.Config) {
	switch {
	case !cfg.MetricsEnabled:
		zap.L().Info("[Metrics] Endpoint disabled")
	case cfg.MetricsToken != "":
		zap.L().Info("[Metrics] Endpoint enabled at /metrics with Bearer token authentication")
		r.GET(
			"/metrics",
			middleware.MetricsAuthMiddleware(cfg.MetricsToken),
			gin.WrapH(promhttp.Handler()),
		)
	default:
		zap.L().Info("[Metrics] Endpoint enabled at /metrics (no authentication)")
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

// setupAllRoutes configures all application routes
func setupAllRoutes(
	r *gin.Engine,
	authenticator middleware.Authenticator,
	h handlerSet,
	rateLimiters rateLimitMiddlewares,
) {
	requireAuth := middleware.RequireAuth(authenticator)
	requireExternal := middleware.RequireExternalAuth(authenticator)

	authGroup := r.Group("/api/auth", rateLimiters.auth)
	{
		authGroup.POST("/register", h.auth.Register)
		authGroup.POST("/login", h.auth.Login)
		authGroup.GET("/profile", requireAuth, h.auth.Profile)
		authGroup.PUT("/profile", requireAuth, h.auth.UpdateProfile)
		authGroup.POST("/logout", requireAuth, h.auth.Logout)

		// Identity provider tokens
		authGroup.GET("/entra/profile", requireExternal, h.external.Profile)
		authGroup.PUT("/entra/profile", requireExternal, h.external.UpdateProfile)
		authGroup.POST("/entra/logout", requireExternal, h.external.Logout)
		authGroup.POST("/entra/validate-token",
			middleware.OptionalExternalAuth(authenticator), h.external.ValidateToken)
	}

	api := r.Group("/api", rateLimiters.api, requireAuth)

	projects := api.Group("/projects")
	{
		projects.POST("", h.project.Create)
		projects.GET("", h.project.List)
		projects.GET("/:id", h.project.Get)
		projects.PUT("/:id", h.project.Update)
		projects.DELETE("/:id", h.project.Delete)
		projects.POST("/:id/collaborators", h.project.AddCollaborator)
		projects.DELETE("/:id/collaborators/:userId", h.project.RemoveCollaborator)
	}

	tasks := api.Group("/tasks")
	{
		tasks.POST("", h.task.Create)
		tasks.GET("", h.task.List)
		tasks.GET("/:id", h.task.Get)
		tasks.PUT("/:id", h.task.Update)
		tasks.PATCH("/:id/reorder", h.task.Reorder)
		tasks.DELETE("/:id", h.task.Delete)
	}

	api.GET("/dashboard/stats", h.dashboard.Stats)
	api.GET("/users/search", h.user.Search)
}

// createHealthCheckHandler creates health check endpoint handler
func createHealthCheckHandler(db *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Health(ctx); err != nil {
			zap.L().Warn("[Server] Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "disconnected",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"database": "connected",
		})
	}
}

// requestLogger writes one structured access log line per request
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if userID := middleware.GetUserID(c); userID != "" {
			fields = append(fields, zap.String("user_id", userID))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			zap.L().Error("[Server] Request", fields...)
		case status >= http.StatusBadRequest:
			zap.L().Info("[Server] Request", fields...)
		default:
			zap.L().Debug("[Server] Request", fields...)
		}
	}
}

// setupGinMode sets Gin mode based on environment configuration
func setupGinMode(cfg *config.Config) {
	mode := ginModeMap[cfg.IsProduction]
	gin.SetMode(mode)
	zap.L().Info("[Server] Gin mode", zap.String("mode", ginModeLogMessage[cfg.IsProduction]))
}

var ginModeMap = map[bool]string{
	true:  gin.ReleaseMode,
	false: gin.DebugMode,
}

var ginModeLogMessage = map[bool]string{
	true:  "Release (production)",
	false: "Debug (development)",
}
