package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/rueidisaside"
)

// Compile-time interface check.
var _ core.Cache[struct{}] = (*RueidisAsideCache[struct{}])(nil)

// RueidisAsideCache is a Redis cache with client-side caching (RESP3 tracking)
// and stampede protection on GetWithFetch: concurrent misses for one key run
// fetchFunc once across all instances. Values are JSON encoded.
type RueidisAsideCache[T any] struct {
	client    rueidisaside.CacheAsideClient
	keyPrefix string
	clientTTL time.Duration
}

// NewRueidisAsideCache creates a cache-aside client. clientTTL bounds how long
// values stay in the local client-side cache before Redis is consulted again.
func NewRueidisAsideCache[T any](
	addr, password string,
	db int,
	keyPrefix string,
	clientTTL time.Duration,
) (*RueidisAsideCache[T], error) {
	client, err := rueidisaside.NewClient(rueidisaside.ClientOption{
		ClientOption: rueidis.ClientOption{
			InitAddress:       []string{addr},
			Password:          password,
			SelectDB:          db,
			CacheSizeEachConn: 16 * 1024 * 1024,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create rueidisaside client: %w", err)
	}

	return &RueidisAsideCache[T]{
		client:    client,
		keyPrefix: keyPrefix,
		clientTTL: clientTTL,
	}, nil
}

// Get reads through the client-side cache. A missing key is reported as
// ErrCacheMiss without populating anything.
func (r *RueidisAsideCache[T]) Get(ctx context.Context, key string) (T, error) {
	var zero T

	val, err := r.client.Get(
		ctx,
		r.clientTTL,
		r.keyPrefix+key,
		func(ctx context.Context, key string) (string, error) {
			return "", ErrCacheMiss
		},
	)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return zero, ErrCacheMiss
		}
		return zero, unavailable(err)
	}
	if val == "" {
		return zero, ErrCacheMiss
	}

	return decodeValue[T](val)
}

// GetWithFetch lets rueidisaside coordinate the fetch so that fetchFunc runs
// once per key even under concurrent load.
func (r *RueidisAsideCache[T]) GetWithFetch(
	ctx context.Context,
	key string,
	ttl time.Duration,
	fetchFunc func(ctx context.Context, key string) (T, error),
) (T, error) {
	var zero T

	val, err := r.client.Get(
		ctx,
		ttl,
		r.keyPrefix+key,
		func(ctx context.Context, _ string) (string, error) {
			value, err := fetchFunc(ctx, key)
			if err != nil {
				return "", err
			}
			return encodeValue(value)
		},
	)
	if err != nil {
		return zero, err
	}

	return decodeValue[T](val)
}

func (r *RueidisAsideCache[T]) Set(
	ctx context.Context,
	key string,
	value T,
	ttl time.Duration,
) error {
	encoded, err := encodeValue(value)
	if err != nil {
		return err
	}

	client := r.client.Client()
	cmd := client.B().Set().Key(r.keyPrefix + key).Value(encoded).Ex(ttl).Build()
	if err := client.Do(ctx, cmd).Error(); err != nil {
		return unavailable(err)
	}
	return nil
}

func (r *RueidisAsideCache[T]) MGet(ctx context.Context, keys []string) (map[string]T, error) {
	result := make(map[string]T, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	fullKeys := make([]string, len(keys))
	for i, key := range keys {
		fullKeys[i] = r.keyPrefix + key
	}

	client := r.client.Client()
	resp := client.DoCache(ctx, client.B().Mget().Key(fullKeys...).Cache(), r.clientTTL)
	if err := resp.Error(); err != nil {
		return nil, unavailable(err)
	}

	values, err := resp.ToArray()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}

	for i, val := range values {
		if val.IsNil() {
			continue
		}
		str, err := val.ToString()
		if err != nil {
			continue
		}
		item, err := decodeValue[T](str)
		if err != nil {
			continue
		}
		result[keys[i]] = item
	}
	return result, nil
}

func (r *RueidisAsideCache[T]) MSet(
	ctx context.Context,
	values map[string]T,
	ttl time.Duration,
) error {
	if len(values) == 0 {
		return nil
	}

	client := r.client.Client()
	cmds := make(rueidis.Commands, 0, len(values))
	for key, value := range values {
		encoded, err := encodeValue(value)
		if err != nil {
			return err
		}
		cmds = append(cmds,
			client.B().Set().Key(r.keyPrefix+key).Value(encoded).Ex(ttl).Build())
	}

	for _, resp := range client.DoMulti(ctx, cmds...) {
		if err := resp.Error(); err != nil {
			return unavailable(err)
		}
	}
	return nil
}

// Delete removes the key; rueidisaside also invalidates client-side copies.
func (r *RueidisAsideCache[T]) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.keyPrefix+key); err != nil {
		return unavailable(err)
	}
	return nil
}

func (r *RueidisAsideCache[T]) Close() error {
	r.client.Close()
	return nil
}

func (r *RueidisAsideCache[T]) Health(ctx context.Context) error {
	client := r.client.Client()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		return unavailable(err)
	}
	return nil
}
