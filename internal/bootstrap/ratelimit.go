package bootstrap

import (
	"fmt"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/config"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// rateLimitMiddlewares holds rate limiting middlewares for the route groups
type rateLimitMiddlewares struct {
	auth gin.HandlerFunc
	api  gin.HandlerFunc
}

// setupRateLimiting configures rate limiting middlewares based on configuration.
// redisClient is nil unless the redis store is selected.
func setupRateLimiting(
	cfg *config.Config,
	redisClient *redis.Client,
) (rateLimitMiddlewares, error) {
	if !cfg.EnableRateLimit {
		zap.L().Info("[RateLimit] Rate limiting disabled")
		noOpMiddleware := func(c *gin.Context) { c.Next() }
		return rateLimitMiddlewares{auth: noOpMiddleware, api: noOpMiddleware}, nil
	}
	return createRateLimiters(cfg, redisClient)
}

// createRateLimiters creates one limiter per route group. Each keeps its own
// counters under a distinct key prefix.
func createRateLimiters(
	cfg *config.Config,
	redisClient *redis.Client,
) (rateLimitMiddlewares, error) {
	storeType := middleware.RateLimitStoreType(cfg.RateLimitStore)
	if storeType == middleware.RateLimitStoreRedis {
		zap.L().Info("[RateLimit] Using shared Redis store")
	} else {
		zap.L().Info("[RateLimit] Using in-memory store (single instance only)")
	}

	createLimiter := func(requests int, group string) (gin.HandlerFunc, error) {
		limiter, err := middleware.NewRateLimiter(middleware.RateLimitConfig{
			Requests:    requests,
			Window:      cfg.RateLimitWindow,
			StoreType:   storeType,
			RedisClient: redisClient,
			Prefix:      "taskboard:ratelimit:" + group,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create rate limiter for %s: %w", group, err)
		}
		zap.L().Info("[RateLimit] Limiter configured",
			zap.String("group", group),
			zap.Int("requests", requests),
			zap.Duration("window", cfg.RateLimitWindow))
		return limiter, nil
	}

	authLimiter, err := createLimiter(cfg.AuthRateLimit, "auth")
	if err != nil {
		return rateLimitMiddlewares{}, err
	}
	apiLimiter, err := createLimiter(cfg.APIRateLimit, "api")
	if err != nil {
		return rateLimitMiddlewares{}, err
	}
	return rateLimitMiddlewares{auth: authLimiter, api: apiLimiter}, nil
}
