package cache

import (
	"errors"
	"fmt"
)

var (
	// ErrCacheMiss indicates the requested key was not found in cache
	ErrCacheMiss = errors.New("cache: key not found")

	// ErrCacheUnavailable indicates the cache backend is unavailable
	ErrCacheUnavailable = errors.New("cache: backend unavailable")

	// ErrInvalidValue indicates the cached value cannot be parsed
	ErrInvalidValue = errors.New("cache: invalid value")
)

// unavailable wraps a backend failure so callers can match ErrCacheUnavailable.
func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
}
