package bootstrap

import (
	"net/http"
	"time"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/cache"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/config"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/retry"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/token"

	"go.uber.org/zap"
)

// initializeSessionIssuer creates the issuer for local session tokens
func initializeSessionIssuer(cfg *config.Config) core.SessionIssuer {
	return token.NewLocalTokenProvider(cfg.JWTSecret, cfg.JWTExpiration)
}

// initializeExternalVerifier wires the identity provider token verifier.
// Returns nil when external authentication is disabled.
func initializeExternalVerifier(cfg *config.Config, m core.Recorder) core.ExternalVerifier {
	if !cfg.ExternalAuthEnabled {
		zap.L().Info("[Auth] External authentication disabled")
		return nil
	}

	keySource := token.NewJWKSKeySource(
		cfg.ExternalJWKSURL,
		createJWKSRetryClient(cfg),
		cache.NewLRUCache[any](cfg.JWKSCacheSize, cfg.JWKSCacheTTL),
		cfg.JWKSCacheTTL,
		m,
		token.WithFetchTimeout(cfg.JWKSFetchTimeout),
	)

	zap.L().Info("[Auth] External authentication enabled",
		zap.String("issuer", cfg.ExternalIssuer),
		zap.String("audience", cfg.ExternalAudience),
		zap.String("jwks_url", cfg.ExternalJWKSURL))
	return token.NewExternalTokenVerifier(keySource, cfg.ExternalIssuer, cfg.ExternalAudience, m)
}

// createJWKSRetryClient creates the HTTP client used to download signing keys
func createJWKSRetryClient(cfg *config.Config) *retry.Client {
	return retry.NewClient(
		retry.WithHTTPClient(&http.Client{
			Timeout: cfg.JWKSFetchTimeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		}),
		retry.WithMaxRetries(cfg.JWKSMaxRetries),
		retry.WithInitialRetryDelay(cfg.JWKSRetryDelay),
		retry.WithMaxRetryDelay(cfg.JWKSMaxRetryDelay),
		retry.WithOnRetry(func(attempt int, err error, resp *http.Response) {
			fields := []zap.Field{zap.Int("attempt", attempt)}
			if err != nil {
				fields = append(fields, zap.Error(err))
			}
			if resp != nil {
				fields = append(fields, zap.Int("status", resp.StatusCode))
			}
			zap.L().Warn("[JWKS] Retrying key download", fields...)
		}),
	)
}
