package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var _ core.ExternalVerifier = (*ExternalTokenVerifier)(nil)

// Token validation results reported to metrics.
const (
	resultValid          = "valid"
	resultInvalid        = "invalid"
	resultExpired        = "expired"
	resultKeyUnavailable = "key_unavailable"
)

// ExternalTokenVerifier verifies RS256 bearer tokens issued by the external
// identity provider: signature against the published keys, issuer, audience
// and expiry.
type ExternalTokenVerifier struct {
	keys     core.KeySource
	issuer   string
	audience string
	leeway   time.Duration
	metrics  core.Recorder
}

// NewExternalTokenVerifier creates a verifier accepting tokens from issuer
// addressed to audience.
func NewExternalTokenVerifier(
	keys core.KeySource,
	issuer, audience string,
	metrics core.Recorder,
) *ExternalTokenVerifier {
	return &ExternalTokenVerifier{
		keys:     keys,
		issuer:   issuer,
		audience: audience,
		leeway:   30 * time.Second,
		metrics:  metrics,
	}
}

// Verify checks rawToken and returns its claims.
// Errors are ErrKeyUnavailable, ErrExpiredToken or ErrInvalidToken.
func (v *ExternalTokenVerifier) Verify(
	ctx context.Context,
	rawToken string,
) (*core.ExternalClaims, error) {
	start := time.Now()
	claims, err := v.verify(ctx, rawToken)

	result := resultValid
	switch {
	case err == nil:
	case errors.Is(err, ErrKeyUnavailable):
		result = resultKeyUnavailable
	case errors.Is(err, ErrExpiredToken):
		result = resultExpired
	default:
		result = resultInvalid
	}
	v.metrics.RecordTokenValidation("external", result, time.Since(start))

	if err != nil {
		zap.L().Debug("[Token] External token rejected",
			zap.String("result", result),
			zap.Error(err),
		)
	}
	return claims, err
}

func (v *ExternalTokenVerifier) verify(
	ctx context.Context,
	rawToken string,
) (*core.ExternalClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	)

	claims := jwt.MapClaims{}
	_, err := parser.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		return v.keys.Key(ctx, kid)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrKeyUnavailable):
			return nil, err
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return decodeExternalClaims(claims)
}
