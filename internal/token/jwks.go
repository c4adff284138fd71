package token

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/retry"

	"github.com/go-jose/go-jose/v4"
	"go.uber.org/zap"
)

var _ core.KeySource = (*JWKSKeySource)(nil)

// maxJWKSBodySize caps how much of a key set response is read.
const maxJWKSBodySize = 1 << 20

// defaultRefreshCooldown is the minimum gap between two key set downloads
// triggered by unknown key ids.
const defaultRefreshCooldown = 10 * time.Second

// JWKSKeySource resolves signing keys from the issuer's published JSON Web
// Key Set. Keys are cached by key id; an unknown key id triggers a fresh
// download, so signing key rotation is picked up without a restart.
type JWKSKeySource struct {
	url          string
	client       *retry.Client
	keys         core.Cache[any]
	keyTTL       time.Duration
	fetchTimeout time.Duration
	metrics      core.Recorder

	mu              sync.Mutex
	lastFetch       time.Time
	refreshCooldown time.Duration
}

// JWKSOption configures a JWKSKeySource.
type JWKSOption func(*JWKSKeySource)

// WithFetchTimeout bounds each download, retries included.
func WithFetchTimeout(d time.Duration) JWKSOption {
	return func(s *JWKSKeySource) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithRefreshCooldown sets the minimum interval between downloads caused by
// unknown key ids. Zero disables the cooldown.
func WithRefreshCooldown(d time.Duration) JWKSOption {
	return func(s *JWKSKeySource) {
		if d >= 0 {
			s.refreshCooldown = d
		}
	}
}

// NewJWKSKeySource creates a key source for the key set at url. keys holds
// the parsed public keys for keyTTL; it should be bounded (see cache.LRUCache).
func NewJWKSKeySource(
	url string,
	client *retry.Client,
	keys core.Cache[any],
	keyTTL time.Duration,
	metrics core.Recorder,
	opts ...JWKSOption,
) *JWKSKeySource {
	s := &JWKSKeySource{
		url:             url,
		client:          client,
		keys:            keys,
		keyTTL:          keyTTL,
		fetchTimeout:    10 * time.Second,
		metrics:         metrics,
		refreshCooldown: defaultRefreshCooldown,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the public key published under kid.
// A download failure yields ErrKeyUnavailable; a kid absent from a
// successfully downloaded set yields ErrInvalidToken.
func (s *JWKSKeySource) Key(ctx context.Context, kid string) (any, error) {
	if kid == "" {
		return nil, fmt.Errorf("%w: token header has no kid", ErrInvalidToken)
	}

	if key, err := s.keys.Get(ctx, kid); err == nil {
		return key, nil
	}

	// One download at a time; waiters re-check the cache afterwards.
	s.mu.Lock()
	defer s.mu.Unlock()

	if key, err := s.keys.Get(ctx, kid); err == nil {
		return key, nil
	}

	if !s.lastFetch.IsZero() && time.Since(s.lastFetch) < s.refreshCooldown {
		return nil, fmt.Errorf("%w: unknown signing key %q", ErrInvalidToken, kid)
	}

	fetched, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	s.lastFetch = time.Now()

	if err := s.keys.MSet(ctx, fetched, s.keyTTL); err != nil {
		zap.L().Warn("[JWKS] Failed to cache signing keys", zap.Error(err))
	}

	key, ok := fetched[kid]
	if !ok {
		return nil, fmt.Errorf("%w: unknown signing key %q", ErrInvalidToken, kid)
	}
	return key, nil
}

// fetch downloads the key set and returns its signature keys by key id.
func (s *JWKSKeySource) fetch(ctx context.Context) (map[string]any, error) {
	start := time.Now()
	keys, err := s.download(ctx)
	s.metrics.RecordKeyFetch(err == nil, time.Since(start))
	if err != nil {
		zap.L().Error("[JWKS] Failed to fetch signing keys",
			zap.String("url", s.url),
			zap.Error(err),
		)
		return nil, err
	}

	zap.L().Debug("[JWKS] Signing keys refreshed",
		zap.Int("keys", len(keys)),
		zap.Duration("took", time.Since(start)),
	)
	return keys, nil
}

func (s *JWKSKeySource) download(ctx context.Context) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	resp, err := s.client.Get(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: key set endpoint returned HTTP %d",
			ErrKeyUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxJWKSBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read key set: %v", ErrKeyUnavailable, err)
	}

	var set jose.JSONWebKeySet
	if err := json.Unmarshal(body, &set); err != nil {
		return nil, fmt.Errorf("%w: malformed key set: %v", ErrKeyUnavailable, err)
	}

	keys := make(map[string]any, len(set.Keys))
	for _, k := range set.Keys {
		if k.KeyID == "" || !k.IsPublic() || (k.Use != "" && k.Use != "sig") {
			continue
		}
		keys[k.KeyID] = k.Key
	}
	return keys, nil
}
