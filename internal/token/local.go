package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"

	"github.com/golang-jwt/jwt/v5"
)

var _ core.SessionIssuer = (*LocalTokenProvider)(nil)

// LocalTokenProvider issues and validates the HS256 session tokens handed out
// after a local login. A token carries only the user id and its expiry.
type LocalTokenProvider struct {
	secret     []byte
	expiration time.Duration
}

// NewLocalTokenProvider creates a provider signing with secret. Tokens live
// for expiration.
func NewLocalTokenProvider(secret string, expiration time.Duration) *LocalTokenProvider {
	return &LocalTokenProvider{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// Issue signs a session token for userID.
func (p *LocalTokenProvider) Issue(userID string) (*core.SessionToken, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user id", ErrTokenGeneration)
	}

	expiresAt := time.Now().Add(p.expiration)
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     expiresAt.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	return &core.SessionToken{
		Token:     signed,
		ExpiresAt: time.Unix(expiresAt.Unix(), 0),
	}, nil
}

// Validate verifies the signature and expiry of rawToken and returns its
// claims. Expired tokens yield ErrExpiredToken, anything else ErrInvalidToken.
func (p *LocalTokenProvider) Validate(rawToken string) (*core.SessionClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(
		rawToken,
		claims,
		func(token *jwt.Token) (any, error) {
			return p.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, fmt.Errorf("%w: missing user_id", ErrInvalidToken)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken
	}

	return &core.SessionClaims{
		UserID:    userID,
		ExpiresAt: exp.Time,
	}, nil
}

// Name returns provider name for logging
func (p *LocalTokenProvider) Name() string {
	return "local"
}
