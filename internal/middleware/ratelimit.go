package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	limiterRedis "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.uber.org/zap"
)

// RateLimitStoreType defines the type of rate limit store
type RateLimitStoreType string

const (
	// RateLimitStoreMemory uses in-memory storage (single instance only)
	RateLimitStoreMemory RateLimitStoreType = "memory"
	// RateLimitStoreRedis uses Redis storage (shared between instances)
	RateLimitStoreRedis RateLimitStoreType = "redis"
)

const defaultRateLimitPrefix = "ratelimit"

// RateLimitConfig holds the configuration for one limiter
type RateLimitConfig struct {
	Requests int           // requests allowed per window and client IP
	Window   time.Duration // defaults to one minute

	StoreType       RateLimitStoreType
	RedisClient     *redis.Client // required for the redis store, shared between limiters
	Prefix          string        // key prefix, distinct per limiter on a shared store
	CleanupInterval time.Duration // memory store only
}

// NewRateLimiter creates a per-IP rate limiter. Exceeding the limit answers
// 429 with a JSON error body.
func NewRateLimiter(config RateLimitConfig) (gin.HandlerFunc, error) {
	if config.Requests <= 0 {
		return nil, fmt.Errorf("rate limit must be positive, got %d", config.Requests)
	}
	window := config.Window
	if window <= 0 {
		window = time.Minute
	}
	prefix := config.Prefix
	if prefix == "" {
		prefix = defaultRateLimitPrefix
	}

	rate := limiter.Rate{
		Period: window,
		Limit:  int64(config.Requests),
	}

	var (
		store limiter.Store
		err   error
	)
	switch config.StoreType {
	case RateLimitStoreRedis:
		if config.RedisClient == nil {
			return nil, errors.New("redis rate limit store requires a redis client")
		}
		store, err = limiterRedis.NewStoreWithOptions(config.RedisClient, limiter.StoreOptions{
			Prefix: prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}

	case RateLimitStoreMemory:
		fallthrough
	default:
		cleanup := config.CleanupInterval
		if cleanup <= 0 {
			cleanup = limiter.DefaultCleanUpInterval
		}
		store = memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          prefix,
			CleanUpInterval: cleanup,
		})
	}

	instance := limiter.New(store, rate)

	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			zap.L().Warn("[RateLimit] Limit reached",
				zap.String("limiter", prefix),
				zap.String("client_ip", c.ClientIP()),
				zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":             "rate_limit_exceeded",
				"error_description": "Too many requests. Please try again later.",
			})
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			// Fail open: a broken limiter store must not take the API down.
			zap.L().Error("[RateLimit] Store error", zap.String("limiter", prefix), zap.Error(err))
			c.Next()
		}),
	), nil
}

// CreateRedisClient connects to Redis and verifies the connection.
func CreateRedisClient(
	ctx context.Context,
	addr, password string,
	db int,
	timeout time.Duration,
) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return client, nil
}
