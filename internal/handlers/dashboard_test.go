package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardHandler_Stats(t *testing.T) {
	ts := newTestServer(t)
	ownerID, owner := ts.register(t, "Owner", "owner@example.com")

	projectID := createProject(t, ts, owner, "Stats project")
	for _, task := range []gin.H{
		{"project": projectID, "title": "Open pending task", "assigneeId": ownerID},
		{"project": projectID, "title": "Finished task", "status": "done", "priority": "high"},
	} {
		w := ts.do(t, http.MethodPost, "/api/tasks", owner, task)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := ts.do(t, http.MethodGet, "/api/dashboard/stats", owner, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	stats := decode(t, w)["stats"].(map[string]any)

	assert.InDelta(t, 1, stats["ownedProjects"], 0)
	assert.InDelta(t, 0, stats["collaboratingProjects"], 0)
	assert.InDelta(t, 1, stats["openTasks"], 0)
	assert.InDelta(t, 1, stats["assignedToMe"], 0)

	byStatus := stats["tasksByStatus"].(map[string]any)
	assert.InDelta(t, 1, byStatus["pending"], 0)
	assert.InDelta(t, 0, byStatus["in-progress"], 0)
	assert.InDelta(t, 1, byStatus["done"], 0)
	assert.Len(t, stats["recentTasks"], 2)
}

func TestUserHandler_Search(t *testing.T) {
	ts := newTestServer(t)
	_, caller := ts.register(t, "Caller", "caller@example.com")
	targetID, _ := ts.register(t, "Target User", "target@example.com")

	w := ts.do(t, http.MethodGet, "/api/users/search?email=TARGET@example.com", caller, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, targetID, user["id"])
	assert.Equal(t, "Target User", user["name"])
	assert.NotContains(t, user, "provider")

	w = ts.do(t, http.MethodGet, "/api/users/search?email=ghost@example.com", caller, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodGet, "/api/users/search", caller, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidationMessage(t *testing.T) {
	err := fmt.Errorf("create: %w", fmt.Errorf("%w: title is required", services.ErrValidation))
	assert.Equal(t, "title is required", validationMessage(err))
	assert.Equal(t, "plain", validationMessage(errors.New("plain")))
}
