package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"

	"github.com/redis/rueidis"
)

var _ core.Cache[struct{}] = (*RueidisCache[struct{}])(nil)

// RueidisCache stores JSON-encoded values in Redis under keyPrefix.
// Used when several API instances must share cached user records or gauge counts.
type RueidisCache[T any] struct {
	client    rueidis.Client
	keyPrefix string
}

// NewRueidisCache connects without client-side caching and pings the server
// before returning.
func NewRueidisCache[T any](
	ctx context.Context,
	addr, password string,
	db int,
	keyPrefix string,
) (*RueidisCache[T], error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{addr},
		Password:     password,
		SelectDB:     db,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &RueidisCache[T]{client: client, keyPrefix: keyPrefix}, nil
}

func (r *RueidisCache[T]) key(k string) string {
	return r.keyPrefix + k
}

func (r *RueidisCache[T]) setCommand(key string, value T, ttl time.Duration) (rueidis.Completed, error) {
	encoded, err := encodeValue(value)
	if err != nil {
		return rueidis.Completed{}, err
	}
	return r.client.B().Set().Key(r.key(key)).Value(encoded).Ex(ttl).Build(), nil
}

func (r *RueidisCache[T]) Get(ctx context.Context, key string) (T, error) {
	var zero T
	str, err := r.client.Do(ctx, r.client.B().Get().Key(r.key(key)).Build()).ToString()
	switch {
	case rueidis.IsRedisNil(err):
		return zero, ErrCacheMiss
	case err != nil:
		return zero, unavailable(err)
	}
	return decodeValue[T](str)
}

func (r *RueidisCache[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) error {
	cmd, err := r.setCommand(key, value, ttl)
	if err != nil {
		return err
	}
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return unavailable(err)
	}
	return nil
}

// MGet returns only the keys that were present and decodable.
func (r *RueidisCache[T]) MGet(ctx context.Context, keys []string) (map[string]T, error) {
	result := make(map[string]T, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	fullKeys := make([]string, len(keys))
	for i, k := range keys {
		fullKeys[i] = r.key(k)
	}

	values, err := r.client.Do(ctx, r.client.B().Mget().Key(fullKeys...).Build()).ToArray()
	if err != nil {
		return nil, unavailable(err)
	}

	for i, val := range values {
		str, err := val.ToString()
		if err != nil {
			continue
		}
		if item, err := decodeValue[T](str); err == nil {
			result[keys[i]] = item
		}
	}
	return result, nil
}

// MSet pipelines one SET per entry so every key gets its own expiry.
func (r *RueidisCache[T]) MSet(ctx context.Context, values map[string]T, ttl time.Duration) error {
	cmds := make(rueidis.Commands, 0, len(values))
	for k, v := range values {
		cmd, err := r.setCommand(k, v, ttl)
		if err != nil {
			return err
		}
		cmds = append(cmds, cmd)
	}

	for _, resp := range r.client.DoMulti(ctx, cmds...) {
		if err := resp.Error(); err != nil {
			return unavailable(err)
		}
	}
	return nil
}

func (r *RueidisCache[T]) Delete(ctx context.Context, key string) error {
	if err := r.client.Do(ctx, r.client.B().Del().Key(r.key(key)).Build()).Error(); err != nil {
		return unavailable(err)
	}
	return nil
}

func (r *RueidisCache[T]) Close() error {
	r.client.Close()
	return nil
}

func (r *RueidisCache[T]) Health(ctx context.Context) error {
	if err := r.client.Do(ctx, r.client.B().Ping().Build()).Error(); err != nil {
		return unavailable(err)
	}
	return nil
}

// GetWithFetch is plain cache-aside without stampede protection;
// RueidisAsideCache covers that case.
func (r *RueidisCache[T]) GetWithFetch(
	ctx context.Context,
	key string,
	ttl time.Duration,
	fetchFunc func(ctx context.Context, key string) (T, error),
) (T, error) {
	return getWithFetch[T](ctx, r, key, ttl, fetchFunc)
}

func decodeValue[T any](raw string) (T, error) {
	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return value, nil
}

func encodeValue[T any](value T) (string, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return string(encoded), nil
}
