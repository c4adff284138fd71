package handlers

import (
	"net/http"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/middleware"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboard *services.DashboardService
}

func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Stats returns the project and task summary for the caller.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboard.GetStats(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
