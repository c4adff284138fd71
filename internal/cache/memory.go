package cache

import (
	"context"
	"sync"
	"time"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"
)

var _ core.Cache[struct{}] = (*MemoryCache[struct{}])(nil)

type entry[T any] struct {
	value    T
	deadline time.Time
}

func (e entry[T]) expired(now time.Time) bool {
	return !now.Before(e.deadline)
}

// MemoryCache holds the gauge snapshots of a single API instance, keyed by
// gauge name. The key space is fixed by the caller, so nothing bounds it;
// expired snapshots are hidden on read and removed by DeleteExpired, which
// the server's cleanup job calls periodically. Tests also use it as a
// stand-in user cache.
type MemoryCache[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
}

func NewMemoryCache[T any]() *MemoryCache[T] {
	return &MemoryCache[T]{entries: make(map[string]entry[T])}
}

// lookup returns the live value for key. Callers hold at least the read lock.
func (m *MemoryCache[T]) lookup(key string, now time.Time) (T, bool) {
	e, ok := m.entries[key]
	if !ok || e.expired(now) {
		var zero T
		return zero, false
	}
	return e.value, true
}

func (m *MemoryCache[T]) Get(_ context.Context, key string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.lookup(key, time.Now())
	if !ok {
		return v, ErrCacheMiss
	}
	return v, nil
}

func (m *MemoryCache[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) error {
	return m.MSet(ctx, map[string]T{key: value}, ttl)
}

// MGet omits missing and expired keys.
func (m *MemoryCache[T]) MGet(_ context.Context, keys []string) (map[string]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := time.Now()
	found := make(map[string]T, len(keys))
	for _, k := range keys {
		if v, ok := m.lookup(k, now); ok {
			found[k] = v
		}
	}
	return found, nil
}

// MSet gives every value the same deadline.
func (m *MemoryCache[T]) MSet(_ context.Context, values map[string]T, ttl time.Duration) error {
	deadline := time.Now().Add(ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range values {
		m.entries[k] = entry[T]{value: v, deadline: deadline}
	}
	return nil
}

func (m *MemoryCache[T]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Close drops every snapshot. The cache stays usable afterwards.
func (m *MemoryCache[T]) Close() error {
	m.mu.Lock()
	m.entries = make(map[string]entry[T])
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache[T]) Health(context.Context) error {
	return nil
}

// GetWithFetch recomputes a snapshot on miss. Concurrent misses may each
// query the database; the gauge job is the only caller and runs serially.
func (m *MemoryCache[T]) GetWithFetch(
	ctx context.Context,
	key string,
	ttl time.Duration,
	fetchFunc func(ctx context.Context, key string) (T, error),
) (T, error) {
	return getWithFetch[T](ctx, m, key, ttl, fetchFunc)
}

// Len counts stored entries, including expired ones not yet swept.
func (m *MemoryCache[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// DeleteExpired sweeps expired entries and reports how many it removed.
func (m *MemoryCache[T]) DeleteExpired() int {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for k, e := range m.entries {
		if e.expired(now) {
			delete(m.entries, k)
			removed++
		}
	}
	return removed
}
