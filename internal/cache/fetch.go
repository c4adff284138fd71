package cache

import (
	"context"
	"time"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"
)

// getWithFetch is the cache-aside read shared by the implementations that
// have no native stampede protection: read, fetch on miss, store, return.
// A failed Set does not fail the read.
func getWithFetch[T any](
	ctx context.Context,
	c core.Cache[T],
	key string,
	ttl time.Duration,
	fetchFunc func(ctx context.Context, key string) (T, error),
) (T, error) {
	if value, err := c.Get(ctx, key); err == nil {
		return value, nil
	}

	value, err := fetchFunc(ctx, key)
	if err != nil {
		var zero T
		return zero, err
	}

	_ = c.Set(ctx, key, value, ttl)
	return value, nil
}
