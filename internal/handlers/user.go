package handlers

import (
	"net/http"
	"strings"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	identity *services.IdentityService
}

func NewUserHandler(identity *services.IdentityService) *UserHandler {
	return &UserHandler{identity: identity}
}

// Search finds a user by exact email so they can be invited to a project.
// Only public fields are returned.
func (h *UserHandler) Search(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		badRequest(c, "email query parameter is required")
		return
	}

	user, err := h.identity.FindByEmail(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}
