package metrics

import (
	"context"
	"time"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"
)

// Cache keys for the gauge snapshots.
const (
	cacheKeyUsers    = "gauges:users"
	cacheKeyProjects = "gauges:projects"
	cacheKeyTasks    = "gauges:tasks"
)

// CacheWrapper provides a read-through cache for gauge counts so that, with a
// shared cache, only one instance per TTL window queries the database.
type CacheWrapper struct {
	store core.MetricsStore
	cache core.Cache[map[string]int64]
}

// NewCacheWrapper creates a new cache wrapper for metrics.
func NewCacheWrapper(store core.MetricsStore, cache core.Cache[map[string]int64]) *CacheWrapper {
	return &CacheWrapper{
		store: store,
		cache: cache,
	}
}

// GetUsersByProvider returns user counts keyed by login provider.
func (w *CacheWrapper) GetUsersByProvider(
	ctx context.Context,
	ttl time.Duration,
) (map[string]int64, error) {
	return w.cache.GetWithFetch(ctx, cacheKeyUsers, ttl,
		func(ctx context.Context, _ string) (map[string]int64, error) {
			return w.store.CountUsersByProvider(ctx)
		})
}

// GetProjectsCount returns the total number of projects.
func (w *CacheWrapper) GetProjectsCount(ctx context.Context, ttl time.Duration) (int64, error) {
	counts, err := w.cache.GetWithFetch(ctx, cacheKeyProjects, ttl,
		func(ctx context.Context, _ string) (map[string]int64, error) {
			n, err := w.store.CountProjects(ctx)
			if err != nil {
				return nil, err
			}
			return map[string]int64{"total": n}, nil
		})
	if err != nil {
		return 0, err
	}
	return counts["total"], nil
}

// GetTasksByStatus returns task counts keyed by status.
func (w *CacheWrapper) GetTasksByStatus(
	ctx context.Context,
	ttl time.Duration,
) (map[string]int64, error) {
	return w.cache.GetWithFetch(ctx, cacheKeyTasks, ttl,
		func(ctx context.Context, _ string) (map[string]int64, error) {
			return w.store.CountTasksByStatus(ctx)
		})
}
