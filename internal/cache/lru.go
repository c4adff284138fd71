package cache

import (
	"context"
	"time"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Compile-time interface check.
var _ core.Cache[struct{}] = (*LRUCache[struct{}])(nil)

// LRUCache is a bounded in-process cache: at most size entries, each living
// for the TTL given at construction. When full, the least recently used entry
// is evicted. The ttl argument of Set and MSet is ignored; the cache-wide TTL
// applies. Safe for concurrent use.
type LRUCache[T any] struct {
	lru *expirable.LRU[string, T]
}

// NewLRUCache creates a cache holding at most size entries for ttl each.
func NewLRUCache[T any](size int, ttl time.Duration) *LRUCache[T] {
	return &LRUCache[T]{
		lru: expirable.NewLRU[string, T](size, nil, ttl),
	}
}

func (c *LRUCache[T]) Get(ctx context.Context, key string) (T, error) {
	if value, ok := c.lru.Get(key); ok {
		return value, nil
	}
	var zero T
	return zero, ErrCacheMiss
}

func (c *LRUCache[T]) Set(ctx context.Context, key string, value T, _ time.Duration) error {
	c.lru.Add(key, value)
	return nil
}

func (c *LRUCache[T]) MGet(ctx context.Context, keys []string) (map[string]T, error) {
	result := make(map[string]T, len(keys))
	for _, key := range keys {
		if value, ok := c.lru.Get(key); ok {
			result[key] = value
		}
	}
	return result, nil
}

func (c *LRUCache[T]) MSet(ctx context.Context, values map[string]T, _ time.Duration) error {
	for key, value := range values {
		c.lru.Add(key, value)
	}
	return nil
}

func (c *LRUCache[T]) Delete(ctx context.Context, key string) error {
	c.lru.Remove(key)
	return nil
}

// Close purges all entries.
func (c *LRUCache[T]) Close() error {
	c.lru.Purge()
	return nil
}

func (c *LRUCache[T]) Health(ctx context.Context) error {
	return nil
}

// GetWithFetch retrieves a value using the cache-aside pattern.
// Concurrent misses for the same key may each call fetchFunc; the last
// result stored wins.
func (c *LRUCache[T]) GetWithFetch(
	ctx context.Context,
	key string,
	ttl time.Duration,
	fetchFunc func(ctx context.Context, key string) (T, error),
) (T, error) {
	return getWithFetch[T](ctx, c, key, ttl, fetchFunc)
}

// Len returns the number of live entries.
func (c *LRUCache[T]) Len() int {
	return c.lru.Len()
}
