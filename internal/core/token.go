package core

import (
	"context"
	"time"
)

// ExternalClaims is the verified payload of an external identity token.
// Email candidates are kept separately so the resolution order stays with
// the caller rather than with the decoder.
type ExternalClaims struct {
	Subject    string // stable object id at the identity provider
	UniqueName string
	Email      string
	UPN        string
	Name       string
	GivenName  string
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// SessionToken is an application-issued bearer token.
type SessionToken struct {
	Token     string
	ExpiresAt time.Time
}

// SessionClaims is the decoded content of a valid SessionToken.
type SessionClaims struct {
	UserID    string
	ExpiresAt time.Time
}

// KeySource resolves a token signing key by its key id.
type KeySource interface {
	Key(ctx context.Context, kid string) (any, error)
}

// ExternalVerifier validates tokens issued by the external identity provider.
type ExternalVerifier interface {
	Verify(ctx context.Context, rawToken string) (*ExternalClaims, error)
}

// SessionIssuer mints and validates application session tokens.
type SessionIssuer interface {
	Issue(userID string) (*SessionToken, error)
	Validate(rawToken string) (*SessionClaims, error)
}
