package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/cache"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/config"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/metrics"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/models"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/store"

	"github.com/appleboy/graceful"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const expiredEntryCleanupInterval = 10 * time.Minute

// createHTTPServer creates the HTTP server instance
func createHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// addServerRunningJob adds the HTTP server running job
func addServerRunningJob(m *graceful.Manager, srv *http.Server) {
	m.AddRunningJob(func(ctx context.Context) error {
		go func() {
			zap.L().Info("[Server] Listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				zap.L().Fatal("[Server] Failed to start server", zap.Error(err))
			}
		}()
		<-ctx.Done()
		return nil
	})
}

// addServerShutdownJob adds HTTP server shutdown handler
func addServerShutdownJob(m *graceful.Manager, srv *http.Server) {
	m.AddShutdownJob(func() error {
		zap.L().Info("[Server] Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			zap.L().Error("[Server] Server forced to shutdown", zap.Error(err))
			return err
		}

		zap.L().Info("[Server] Server exited")
		return nil
	})
}

// addRedisClientShutdownJob adds Redis client shutdown handler
func addRedisClientShutdownJob(m *graceful.Manager, redisClient *redis.Client) {
	if redisClient == nil {
		return
	}

	m.AddShutdownJob(func() error {
		if err := redisClient.Close(); err != nil {
			zap.L().Error("[Server] Error closing Redis client", zap.Error(err))
			return err
		}
		zap.L().Info("[Server] Redis connection closed")
		return nil
	})
}

// addDatabaseShutdownJob closes the connection pool
func addDatabaseShutdownJob(m *graceful.Manager, db *store.Store) {
	m.AddShutdownJob(func() error {
		if err := db.Close(); err != nil {
			zap.L().Error("[Server] Error closing database", zap.Error(err))
			return err
		}
		return nil
	})
}

// addMetricsGaugeUpdateJob adds periodic metrics gauge update job
func addMetricsGaugeUpdateJob(
	m *graceful.Manager,
	cfg *config.Config,
	db *store.Store,
	recorder core.Recorder,
	metricsCache core.Cache[map[string]int64],
) {
	if !cfg.MetricsEnabled || !cfg.MetricsGaugeUpdateEnabled || metricsCache == nil {
		return
	}

	m.AddRunningJob(func(ctx context.Context) error {
		ticker := time.NewTicker(cfg.MetricsGaugeUpdateInterval)
		defer ticker.Stop()

		cacheWrapper := metrics.NewCacheWrapper(db, metricsCache)

		// Update immediately on startup
		updateGaugeMetricsWithCache(ctx, cacheWrapper, recorder, cfg.MetricsGaugeUpdateInterval)

		for {
			select {
			case <-ticker.C:
				updateGaugeMetricsWithCache(
					ctx,
					cacheWrapper,
					recorder,
					cfg.MetricsGaugeUpdateInterval,
				)
			case <-ctx.Done():
				return nil
			}
		}
	})
}

// addExpiredEntryCleanupJob sweeps expired gauge snapshots out of the
// in-process cache, which otherwise only drops them lazily on read.
func addExpiredEntryCleanupJob(m *graceful.Manager, metricsCache core.Cache[map[string]int64]) {
	memCache, ok := metricsCache.(*cache.MemoryCache[map[string]int64])
	if !ok {
		return
	}

	m.AddRunningJob(func(ctx context.Context) error {
		ticker := time.NewTicker(expiredEntryCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if removed := memCache.DeleteExpired(); removed > 0 {
					zap.L().Debug("[Metrics] Expired cache entries removed", zap.Int("count", removed))
				}
			case <-ctx.Done():
				return nil
			}
		}
	})
}

// addCacheCleanupJob closes a cache on shutdown
func addCacheCleanupJob(m *graceful.Manager, name string, closer func() error) {
	if closer == nil {
		return
	}

	m.AddShutdownJob(func() error {
		if err := closer(); err != nil {
			zap.L().Error("[Server] Error closing cache", zap.String("cache", name), zap.Error(err))
		} else {
			zap.L().Info("[Server] Cache closed", zap.String("cache", name))
		}
		return nil
	})
}

// errorLogger handles rate-limited error logging
type errorLogger struct {
	mu              sync.Mutex
	lastErrorTimes  map[string]time.Time
	rateLimitWindow time.Duration
}

// newErrorLogger creates a new error logger with rate limiting
func newErrorLogger(window time.Duration) *errorLogger {
	return &errorLogger{
		lastErrorTimes:  make(map[string]time.Time),
		rateLimitWindow: window,
	}
}

// logIfNeeded logs an error only if rate limit allows. It reports whether
// the error was logged.
func (e *errorLogger) logIfNeeded(operation string, err error) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()
	lastTime, exists := e.lastErrorTimes[operation]
	if exists && now.Sub(lastTime) < e.rateLimitWindow {
		return false
	}

	zap.L().Warn("[Metrics] Gauge query failed",
		zap.String("operation", operation),
		zap.Duration("suppressed_for", e.rateLimitWindow),
		zap.Error(err))
	e.lastErrorTimes[operation] = now
	return true
}

var gaugeErrorLogger = newErrorLogger(5 * time.Minute)

// updateGaugeMetricsWithCache updates gauge metrics using a cache-backed store.
// With a shared cache only one instance per TTL window hits the database.
func updateGaugeMetricsWithCache(
	ctx context.Context,
	cacheWrapper *metrics.CacheWrapper,
	m core.Recorder,
	cacheTTL time.Duration,
) {
	users, err := cacheWrapper.GetUsersByProvider(ctx, cacheTTL)
	if err != nil {
		m.RecordDatabaseQueryError("count_users")
		gaugeErrorLogger.logIfNeeded("count_users", err)
	} else {
		for _, provider := range []string{models.ProviderLocal, models.ProviderExternal} {
			m.SetUsersCount(provider, users[provider])
		}
	}

	projects, err := cacheWrapper.GetProjectsCount(ctx, cacheTTL)
	if err != nil {
		m.RecordDatabaseQueryError("count_projects")
		gaugeErrorLogger.logIfNeeded("count_projects", err)
	} else {
		m.SetProjectsCount(projects)
	}

	tasks, err := cacheWrapper.GetTasksByStatus(ctx, cacheTTL)
	if err != nil {
		m.RecordDatabaseQueryError("count_tasks")
		gaugeErrorLogger.logIfNeeded("count_tasks", err)
	} else {
		for _, status := range models.TaskStatuses {
			m.SetTasksCount(status, tasks[status])
		}
	}
}
