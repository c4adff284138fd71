package bootstrap

import (
	"context"
	"net/http"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/config"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/models"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/store"

	"github.com/appleboy/graceful"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Application holds all initialized components
type Application struct {
	Config *config.Config

	// Core infrastructure
	DB                   *store.Store
	MetricsRecorder      core.Recorder
	MetricsCache         core.Cache[map[string]int64]
	MetricsCacheCloser   func() error
	UserCache            core.Cache[models.User]
	UserCacheCloser      func() error
	RateLimitRedisClient *redis.Client

	// Token handling
	SessionIssuer    core.SessionIssuer
	ExternalVerifier core.ExternalVerifier // nil when external auth is disabled

	// Business and HTTP layers
	Services   serviceSet
	HandlerSet handlerSet
	Router     *gin.Engine
	Server     *http.Server
}

// Run initializes and starts the application. It blocks until shutdown.
func Run(ctx context.Context, cfg *config.Config) error {
	app := &Application{Config: cfg}

	// Phase 1: Validate configuration
	if err := validateAllConfiguration(cfg); err != nil {
		return err
	}

	// Phase 2: Initialize infrastructure
	if err := app.initializeInfrastructure(ctx); err != nil {
		return err
	}

	// Phase 3: Initialize business layer
	app.initializeBusinessLayer()

	// Phase 4: Initialize HTTP layer
	if err := app.initializeHTTPLayer(); err != nil {
		return err
	}

	// Phase 5: Start server with graceful shutdown
	app.startWithGracefulShutdown()

	return nil
}

// initializeInfrastructure sets up database, metrics, caches, Redis and token handling
func (app *Application) initializeInfrastructure(ctx context.Context) error {
	var err error

	app.DB, err = initializeDatabase(ctx, app.Config)
	if err != nil {
		return err
	}

	app.MetricsRecorder = initializeMetrics(app.Config)
	app.MetricsCache, app.MetricsCacheCloser, err = initializeMetricsCache(ctx, app.Config)
	if err != nil {
		return err
	}

	app.UserCache, app.UserCacheCloser, err = initializeUserCache(ctx, app.Config)
	if err != nil {
		return err
	}

	// Redis (for rate limiting)
	app.RateLimitRedisClient, err = initializeRateLimitRedisClient(ctx, app.Config)
	if err != nil {
		return err
	}

	app.SessionIssuer = initializeSessionIssuer(app.Config)
	app.ExternalVerifier = initializeExternalVerifier(app.Config, app.MetricsRecorder)

	return nil
}

// initializeBusinessLayer sets up services
func (app *Application) initializeBusinessLayer() {
	app.Services = initializeServices(
		app.Config,
		app.DB,
		app.SessionIssuer,
		app.ExternalVerifier,
		app.UserCache,
		app.MetricsRecorder,
	)
}

// initializeHTTPLayer sets up handlers, router, and server
func (app *Application) initializeHTTPLayer() error {
	app.HandlerSet = initializeHandlers(app.Services)

	rateLimiters, err := setupRateLimiting(app.Config, app.RateLimitRedisClient)
	if err != nil {
		return err
	}

	app.Router = setupRouter(
		app.Config,
		app.DB,
		app.Services.identity,
		app.HandlerSet,
		app.MetricsRecorder,
		rateLimiters,
	)
	app.Server = createHTTPServer(app.Config, app.Router)
	return nil
}

// startWithGracefulShutdown starts the server and handles graceful shutdown
func (app *Application) startWithGracefulShutdown() {
	m := graceful.NewManager()

	// Add jobs
	addServerRunningJob(m, app.Server)
	addServerShutdownJob(m, app.Server)
	addRedisClientShutdownJob(m, app.RateLimitRedisClient)
	addMetricsGaugeUpdateJob(m, app.Config, app.DB, app.MetricsRecorder, app.MetricsCache)
	addExpiredEntryCleanupJob(m, app.MetricsCache)
	addCacheCleanupJob(m, "metrics", app.MetricsCacheCloser)
	addCacheCleanupJob(m, "user", app.UserCacheCloser)
	addDatabaseShutdownJob(m, app.DB)

	// Wait for graceful shutdown
	<-m.Done()
	zap.L().Info("[Server] Shutdown complete")
}
