package token

import (
	"fmt"
	"strings"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mitchellh/mapstructure"
)

// rawClaims is the subset of identity-provider claims the application reads.
type rawClaims struct {
	ObjectID   string `mapstructure:"oid"`
	Subject    string `mapstructure:"sub"`
	UniqueName string `mapstructure:"unique_name"`
	Email      string `mapstructure:"email"`
	UPN        string `mapstructure:"upn"`
	Name       string `mapstructure:"name"`
	GivenName  string `mapstructure:"given_name"`
}

// decodeExternalClaims maps verified token claims into core.ExternalClaims.
// The stable subject is the provider's object id, falling back to sub.
func decodeExternalClaims(claims jwt.MapClaims) (*core.ExternalClaims, error) {
	var raw rawClaims
	if err := mapstructure.Decode(map[string]any(claims), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	subject := raw.ObjectID
	if subject == "" {
		subject = raw.Subject
	}
	if subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	out := &core.ExternalClaims{
		Subject:    subject,
		UniqueName: raw.UniqueName,
		Email:      raw.Email,
		UPN:        raw.UPN,
		Name:       raw.Name,
		GivenName:  raw.GivenName,
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}

// emailStrategies lists the claims that may carry the user's email, in the
// order they are tried.
var emailStrategies = []struct {
	claim string
	value func(*core.ExternalClaims) string
}{
	{"unique_name", func(c *core.ExternalClaims) string { return c.UniqueName }},
	{"email", func(c *core.ExternalClaims) string { return c.Email }},
	{"upn", func(c *core.ExternalClaims) string { return c.UPN }},
}

// ResolveEmail returns the normalized email of c: the first of unique_name,
// email and upn that looks like an address. ErrMissingEmailClaim when none does.
func ResolveEmail(c *core.ExternalClaims) (string, error) {
	if c == nil {
		return "", ErrMissingEmailClaim
	}
	for _, s := range emailStrategies {
		v := models.NormalizeEmail(s.value(c))
		if strings.Contains(v, "@") {
			return v, nil
		}
	}
	return "", ErrMissingEmailClaim
}

// ResolveName returns the display name for c: name, then given_name, then
// the local part of email.
func ResolveName(c *core.ExternalClaims, email string) string {
	if c != nil {
		if name := strings.TrimSpace(c.Name); name != "" {
			return name
		}
		if name := strings.TrimSpace(c.GivenName); name != "" {
			return name
		}
	}
	local, _, _ := strings.Cut(email, "@")
	return local
}
