package bootstrap

import (
	"context"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/config"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/middleware"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// initializeRateLimitRedisClient initializes the go-redis client for rate limiting.
// Returns nil if rate limiting is disabled or using memory store.
// Note: rate limiting must use go-redis because ulule/limiter depends on go-redis types.
func initializeRateLimitRedisClient(
	ctx context.Context,
	cfg *config.Config,
) (*redis.Client, error) {
	if !cfg.EnableRateLimit || cfg.RateLimitStore != config.RateLimitStoreRedis {
		return nil, nil //nolint:nilnil // redis client not needed in this configuration
	}

	client, err := middleware.CreateRedisClient(
		ctx,
		cfg.RedisAddr,
		cfg.RedisPassword,
		cfg.RedisDB,
		cfg.RedisConnTimeout,
	)
	if err != nil {
		return nil, err
	}

	zap.L().Info("[RateLimit] Redis client initialized",
		zap.String("addr", cfg.RedisAddr),
		zap.Int("db", cfg.RedisDB))
	return client, nil
}
