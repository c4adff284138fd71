package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/models"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by the authentication middlewares
const (
	ContextUser           = "user"
	ContextUserID         = "user_id"
	ContextAuthProvider   = "auth_provider"
	ContextTokenExpiresAt = "token_expires_at"
)

// Authenticator resolves bearer tokens to users.
type Authenticator interface {
	AuthenticateSession(ctx context.Context, rawToken string) (*models.User, *core.SessionClaims, error)
	AuthenticateExternal(ctx context.Context, rawToken string) (*models.User, *core.ExternalClaims, error)
	LookupExternal(ctx context.Context, rawToken string) (*models.User, *core.ExternalClaims, error)
	ExternalEnabled() bool
}

// RequireAuth accepts a session token or, when external authentication is
// enabled, an external identity token. Anything else is answered with 401.
func RequireAuth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, nil)
			return
		}

		user, claims, err := a.AuthenticateSession(c.Request.Context(), raw)
		if err == nil {
			setPrincipal(c, user, models.ProviderLocal, claims.ExpiresAt)
			c.Next()
			return
		}

		// Only a token that is not a session token may be an external one.
		// Expired session tokens and storage failures are reported as they are.
		if a.ExternalEnabled() && errors.Is(err, token.ErrInvalidToken) {
			extUser, extClaims, extErr := a.AuthenticateExternal(c.Request.Context(), raw)
			if extErr == nil {
				setPrincipal(c, extUser, models.ProviderExternal, extClaims.ExpiresAt)
				c.Next()
				return
			}
			err = extErr
		}

		abortUnauthorized(c, err)
	}
}

// RequireExternalAuth accepts external identity tokens only.
func RequireExternalAuth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, nil)
			return
		}

		user, claims, err := a.AuthenticateExternal(c.Request.Context(), raw)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		setPrincipal(c, user, models.ProviderExternal, claims.ExpiresAt)
		c.Next()
	}
}

// OptionalExternalAuth attaches the user of a valid external token and lets
// every other request through anonymously. Verification failures are dropped.
// It only reads: unknown emails are not provisioned and local accounts are
// not reconciled. A verified token without an account still records its
// expiry, so GetTokenExpiresAt reports it while GetUser does not.
func OptionalExternalAuth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok || !a.ExternalEnabled() {
			c.Next()
			return
		}

		user, claims, err := a.LookupExternal(c.Request.Context(), raw)
		if err != nil {
			zap.L().Debug("[Auth] Optional external authentication skipped", zap.Error(err))
			c.Next()
			return
		}

		if user == nil {
			c.Set(ContextTokenExpiresAt, claims.ExpiresAt)
			c.Next()
			return
		}
		setPrincipal(c, user, models.ProviderExternal, claims.ExpiresAt)
		c.Next()
	}
}

// GetUser returns the authenticated user, if any.
func GetUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// GetUserID returns the authenticated user id or "".
func GetUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// GetTokenExpiresAt returns the expiry of the credential used on this request.
func GetTokenExpiresAt(c *gin.Context) (time.Time, bool) {
	v, ok := c.Get(ContextTokenExpiresAt)
	if !ok {
		return time.Time{}, false
	}
	t, ok := v.(time.Time)
	return t, ok
}

// AuthErrorCode maps an authentication failure to its status code and
// OAuth-style error code. ok is false for errors that are not about the
// credential itself.
func AuthErrorCode(err error) (status int, code string, ok bool) {
	switch {
	case err == nil:
		return http.StatusUnauthorized, "unauthorized", true
	case errors.Is(err, token.ErrExpiredToken):
		return http.StatusUnauthorized, "token_expired", true
	case errors.Is(err, token.ErrKeyUnavailable):
		return http.StatusUnauthorized, "key_unavailable", true
	case errors.Is(err, token.ErrMissingEmailClaim):
		return http.StatusUnauthorized, "missing_email_claim", true
	case errors.Is(err, token.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid_token", true
	}
	return http.StatusInternalServerError, "server_error", false
}

func setPrincipal(c *gin.Context, user *models.User, provider string, expiresAt time.Time) {
	c.Set(ContextUser, user)
	c.Set(ContextUserID, user.ID)
	c.Set(ContextAuthProvider, provider)
	c.Set(ContextTokenExpiresAt, expiresAt)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(header[7:])
	return raw, raw != ""
}

func abortUnauthorized(c *gin.Context, err error) {
	status, code, ok := AuthErrorCode(err)
	if !ok {
		zap.L().Error("[Auth] Authentication failed", zap.Error(err))
		c.AbortWithStatusJSON(status, gin.H{
			"error":             code,
			"error_description": "Authentication could not be completed",
		})
		return
	}

	if err != nil {
		zap.L().Info("[Auth] Rejected bearer token",
			zap.String("code", code),
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	c.Header("WWW-Authenticate", `Bearer error="`+code+`"`)
	c.AbortWithStatusJSON(status, gin.H{
		"error":             code,
		"error_description": "Authentication required",
	})
}
