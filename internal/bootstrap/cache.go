package bootstrap

import (
	"context"
	"fmt"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/cache"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/config"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/metrics"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/models"

	"go.uber.org/zap"
)

const (
	userCachePrefix    = "taskboard:users:"
	metricsCachePrefix = "taskboard:metrics:"
)

// initializeMetrics initializes Prometheus metrics
func initializeMetrics(cfg *config.Config) core.Recorder {
	recorder := metrics.Init(cfg.MetricsEnabled)
	if cfg.MetricsEnabled {
		zap.L().Info("[Metrics] Prometheus metrics initialized")
	} else {
		zap.L().Info("[Metrics] Metrics disabled (using noop implementation)")
	}
	return recorder
}

// initializeMetricsCache initializes the gauge cache based on configuration.
// Returns nil when gauges are not refreshed.
func initializeMetricsCache(
	ctx context.Context,
	cfg *config.Config,
) (core.Cache[map[string]int64], func() error, error) {
	if !cfg.MetricsEnabled || !cfg.MetricsGaugeUpdateEnabled {
		return nil, nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.RedisConnTimeout)
	defer cancel()

	switch cfg.MetricsCacheType {
	case config.MetricsCacheTypeRedisAside:
		c, err := cache.NewRueidisAsideCache[map[string]int64](
			cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			metricsCachePrefix,
			cfg.MetricsGaugeUpdateInterval,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize redis-aside metrics cache: %w", err)
		}
		zap.L().Info("[Metrics] Gauge cache: redis-aside",
			zap.String("addr", cfg.RedisAddr),
			zap.Int("db", cfg.RedisDB))
		return c, c.Close, nil

	case config.MetricsCacheTypeRedis:
		c, err := cache.NewRueidisCache[map[string]int64](
			ctx,
			cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			metricsCachePrefix,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize redis metrics cache: %w", err)
		}
		zap.L().Info("[Metrics] Gauge cache: redis",
			zap.String("addr", cfg.RedisAddr),
			zap.Int("db", cfg.RedisDB))
		return c, c.Close, nil

	default: // memory
		c := cache.NewMemoryCache[map[string]int64]()
		zap.L().Info("[Metrics] Gauge cache: memory (single instance only)")
		return c, c.Close, nil
	}
}

// initializeUserCache initializes the user cache (always enabled, defaults to memory)
func initializeUserCache(
	ctx context.Context,
	cfg *config.Config,
) (core.Cache[models.User], func() error, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.RedisConnTimeout)
	defer cancel()

	switch cfg.UserCacheType {
	case config.UserCacheTypeRedisAside:
		c, err := cache.NewRueidisAsideCache[models.User](
			cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			userCachePrefix,
			cfg.UserCacheTTL,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize redis-aside user cache: %w", err)
		}
		zap.L().Info("[Identity] User cache: redis-aside",
			zap.String("addr", cfg.RedisAddr),
			zap.Duration("ttl", cfg.UserCacheTTL))
		return c, c.Close, nil

	case config.UserCacheTypeRedis:
		c, err := cache.NewRueidisCache[models.User](
			ctx,
			cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			userCachePrefix,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize redis user cache: %w", err)
		}
		zap.L().Info("[Identity] User cache: redis",
			zap.String("addr", cfg.RedisAddr),
			zap.Duration("ttl", cfg.UserCacheTTL))
		return c, c.Close, nil

	default: // memory
		c := cache.NewLRUCache[models.User](cfg.UserCacheSize, cfg.UserCacheTTL)
		zap.L().Info("[Identity] User cache: memory (single instance only)",
			zap.Int("size", cfg.UserCacheSize),
			zap.Duration("ttl", cfg.UserCacheTTL))
		return c, c.Close, nil
	}
}
