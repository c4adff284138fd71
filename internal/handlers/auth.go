package handlers

import (
	"net/http"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/middleware"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	Name string `json:"name"`
}

// AuthHandler serves local registration, login and profile endpoints.
type AuthHandler struct {
	identity *services.IdentityService
}

func NewAuthHandler(identity *services.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

// Register creates a local account and returns a session token for it.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Request body must be a JSON object")
		return
	}

	result, err := h.identity.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, authResponse(result))
}

// Login exchanges an email and password for a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Request body must be a JSON object")
		return
	}
	if req.Email == "" || req.Password == "" {
		badRequest(c, "email and password are required")
		return
	}

	result, err := h.identity.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, authResponse(result))
}

// Profile returns the authenticated user.
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.identity.GetUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile changes the display name of the authenticated user.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
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

// Logout acknowledges a sign-out. Session tokens are stateless, so the
// client discards its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	zap.L().Info("[Auth] User logged out", zap.String("user_id", middleware.GetUserID(c)))
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func authResponse(result *services.AuthResult) gin.H {
	return gin.H{
		"token":     result.Token.Token,
		"expiresAt": result.Token.ExpiresAt,
		"user":      result.User,
	}
}
