package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/auth"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/middleware"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error codes returned in the "error" field
const (
	errInvalidRequest     = "invalid_request"
	errInvalidCredentials = "invalid_credentials"
	errEmailInUse         = "email_in_use"
	errInvalidAssignee    = "invalid_assignee"
	errForbidden          = "forbidden"
	errNotFound           = "not_found"
	errServerError        = "server_error"
)

// respondError writes the JSON error body for a service error.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		abortJSON(c, http.StatusUnauthorized, errInvalidCredentials, "Invalid email or password")
	case errors.Is(err, services.ErrEmailInUse):
		abortJSON(c, http.StatusBadRequest, errEmailInUse, "Email is already registered")
	case errors.Is(err, services.ErrInvalidAssignee):
		abortJSON(c, http.StatusBadRequest, errInvalidAssignee, err.Error())
	case errors.Is(err, services.ErrValidation):
		abortJSON(c, http.StatusBadRequest, errInvalidRequest, validationMessage(err))
	case errors.Is(err, services.ErrForbidden):
		abortJSON(c, http.StatusForbidden, errForbidden, "You do not have access to this resource")
	case errors.Is(err, services.ErrNotFound):
		abortJSON(c, http.StatusNotFound, errNotFound, "Resource not found")
	default:
		if status, code, ok := middleware.AuthErrorCode(err); ok {
			abortJSON(c, status, code, "Authentication required")
			return
		}
		zap.L().Error("[Server] Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		abortJSON(c, http.StatusInternalServerError, errServerError, "Internal server error")
	}
}

func badRequest(c *gin.Context, description string) {
	abortJSON(c, http.StatusBadRequest, errInvalidRequest, description)
}

func abortJSON(c *gin.Context, status int, code, description string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":             code,
		"error_description": description,
	})
}

// validationMessage strips the sentinel prefix so clients see the field message.
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, services.ErrValidation.Error()+": "); i >= 0 {
		return msg[i+len(services.ErrValidation.Error())+2:]
	}
	return msg
}
