package handlers

import (
	"net/http"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/middleware"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExternalAuthHandler serves the endpoints used by clients holding an
// identity provider token. The user is resolved by the middleware.
type ExternalAuthHandler struct {
	identity *services.IdentityService
}

func NewExternalAuthHandler(identity *services.IdentityService) *ExternalAuthHandler {
	return &ExternalAuthHandler{identity: identity}
}

// Profile returns the resolved user together with the token expiry.
func (h *ExternalAuthHandler) Profile(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		abortJSON(c, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}
	expiresAt, _ := middleware.GetTokenExpiresAt(c)
	c.JSON(http.StatusOK, gin.H{
		"user":      user,
		"expiresAt": expiresAt,
	})
}

// UpdateProfile changes the display name of the resolved user.
func (h *ExternalAuthHandler) UpdateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Request body must be a JSON object")
		return
	}

	user, err := h.identity.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout is handled by the identity provider on the client side.
func (h *ExternalAuthHandler) Logout(c *gin.Context) {
	zap.L().Info("[Auth] External user logged out", zap.String("user_id", middleware.GetUserID(c)))
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully. Please clear your token from storage.",
	})
}

// ValidateToken reports whether the presented external token is usable.
// It runs behind optional authentication and never fails. The user is only
// included when the token's email already has an account.
func (h *ExternalAuthHandler) ValidateToken(c *gin.Context) {
	expiresAt, ok := middleware.GetTokenExpiresAt(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"valid": false, "expiresAt": nil})
		return
	}

	body := gin.H{"valid": true, "expiresAt": expiresAt}
	if user, ok := middleware.GetUser(c); ok {
		body["user"] = user
	}
	c.JSON(http.StatusOK, body)
}
