package token

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/cache"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/metrics"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/retry"

	"github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "https://login.example.com/tenant-1/v2.0"
	testAudience = "client-app-id"
)

// fakeIssuer serves a JWKS document and signs tokens with its keys.
type fakeIssuer struct {
	t        *testing.T
	server   *httptest.Server
	requests atomic.Int32

	mu     sync.Mutex
	keys   map[string]*rsa.PrivateKey
	status int
}

func newFakeIssuer(t *testing.T, kids ...string) *fakeIssuer {
	t.Helper()
	f := &fakeIssuer{t: t, keys: map[string]*rsa.PrivateKey{}, status: http.StatusOK}
	for _, kid := range kids {
		f.addKey(kid)
	}

	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		f.mu.Lock()
		defer f.mu.Unlock()

		if f.status != http.StatusOK {
			w.WriteHeader(f.status)
			return
		}

		set := jose.JSONWebKeySet{}
		for kid, key := range f.keys {
			set.Keys = append(set.Keys, jose.JSONWebKey{
				Key:       &key.PublicKey,
				KeyID:     kid,
				Algorithm: "RS256",
				Use:       "sig",
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(set)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeIssuer) addKey(kid string) {
	f.t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(f.t, err)

	f.mu.Lock()
	f.keys[kid] = key
	f.mu.Unlock()
}

func (f *fakeIssuer) setStatus(status int) {
	f.mu.Lock()
	f.status = status
	f.mu.Unlock()
}

// sign returns an RS256 token over claims with the key registered as kid.
func (f *fakeIssuer) sign(kid string, claims jwt.MapClaims) string {
	f.t.Helper()
	f.mu.Lock()
	key := f.keys[kid]
	f.mu.Unlock()
	require.NotNil(f.t, key, "unknown kid %q", kid)

	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = kid
	signed, err := tok.SignedString(key)
	require.NoError(f.t, err)
	return signed
}

// validClaims returns a claim set that passes every check.
func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"iss":         testIssuer,
		"aud":         testAudience,
		"iat":         now.Unix(),
		"exp":         now.Add(time.Hour).Unix(),
		"oid":         "object-id-1",
		"sub":         "subject-1",
		"unique_name": "Ada@Example.com",
		"name":        "Ada Lovelace",
	}
}

func (f *fakeIssuer) keySource(opts ...JWKSOption) *JWKSKeySource {
	client := retry.NewClient(
		retry.WithMaxRetries(1),
		retry.WithInitialRetryDelay(5*time.Millisecond),
	)
	return NewJWKSKeySource(
		f.server.URL,
		client,
		cache.NewLRUCache[any](10, time.Hour),
		time.Hour,
		metrics.NewNoopMetrics(),
		opts...,
	)
}
