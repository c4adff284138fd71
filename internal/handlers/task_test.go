package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskHandler_Lifecycle(t *testing.T) {
	ts := newTestServer(t)
	_, owner := ts.register(t, "Owner", "owner@example.com")
	memberID, _ := ts.register(t, "Member", "member@example.com")
	outsiderID, outsider := ts.register(t, "Outsider", "outsider@example.com")

	projectID := createProject(t, ts, owner, "Mobile app")
	w := ts.do(t, http.MethodPost, "/api/projects/"+projectID+"/collaborators", owner,
		gin.H{"userId": memberID})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPost, "/api/tasks", owner, gin.H{
		"project":    projectID,
		"title":      "Design login screen",
		"assigneeId": memberID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	taskID := field(t, body, "task", "id").(string)
	assert.Equal(t, "pending", field(t, body, "task", "status"))
	assert.Equal(t, "medium", field(t, body, "task", "priority"))
	assert.Equal(t, memberID, field(t, body, "task", "assigneeId"))

	// Assignees must belong to the project
	w = ts.do(t, http.MethodPost, "/api/tasks", owner, gin.H{
		"project":    projectID,
		"title":      "Write release notes",
		"assigneeId": outsiderID,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errInvalidAssignee, decode(t, w)["error"])

	w = ts.do(t, http.MethodGet, "/api/tasks/"+taskID, outsider, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(t, http.MethodPut, "/api/tasks/"+taskID, owner, gin.H{
		"status":   "in-progress",
		"priority": "high",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body = decode(t, w)
	assert.Equal(t, "in-progress", field(t, body, "task", "status"))
	assert.Equal(t, memberID, field(t, body, "task", "assigneeId"), "absent assigneeId keeps the assignee")

	w = ts.do(t, http.MethodPut, "/api/tasks/"+taskID, owner, json.RawMessage(`{"assigneeId":null}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Nil(t, field(t, decode(t, w), "task", "assigneeId"))

	w = ts.do(t, http.MethodPut, "/api/tasks/"+taskID, owner, gin.H{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPatch, "/api/tasks/"+taskID+"/reorder", owner, gin.H{
		"status":   "done",
		"position": 3,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body = decode(t, w)
	assert.Equal(t, "done", field(t, body, "task", "status"))
	assert.InDelta(t, 3, field(t, body, "task", "position"), 0)

	w = ts.do(t, http.MethodPatch, "/api/tasks/"+taskID+"/reorder", owner, gin.H{"status": "done"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodDelete, "/api/tasks/"+taskID, owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Task deleted successfully", decode(t, w)["message"])

	w = ts.do(t, http.MethodGet, "/api/tasks/"+taskID, owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskHandler_List(t *testing.T) {
	ts := newTestServer(t)
	ownerID, owner := ts.register(t, "Owner", "owner@example.com")
	_, other := ts.register(t, "Other", "other@example.com")

	first := createProject(t, ts, owner, "First project")
	second := createProject(t, ts, owner, "Second project")
	foreign := createProject(t, ts, other, "Foreign project")

	for _, task := range []gin.H{
		{"project": first, "title": "Task number one", "priority": "low"},
		{"project": first, "title": "Task number two", "priority": "high", "assigneeId": ownerID},
		{"project": second, "title": "Task number three", "status": "done"},
	} {
		w := ts.do(t, http.MethodPost, "/api/tasks", owner, task)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	w := ts.do(t, http.MethodPost, "/api/tasks", other, gin.H{"project": foreign, "title": "Hidden task"})
	require.Equal(t, http.StatusCreated, w.Code)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"all accessible", "", 3},
		{"by project", "?project=" + first, 2},
		{"by status", "?status=done", 1},
		{"by priority", "?priority=high", 1},
		{"by assignee", "?assignedTo=" + ownerID, 1},
		{"foreign project", "?project=" + foreign, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodGet, "/api/tasks"+tt.query, owner, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Len(t, decode(t, w)["data"], tt.want)
		})
	}

	w = ts.do(t, http.MethodGet, "/api/tasks?sort=-priority", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].([]any)
	require.NotEmpty(t, data)

	w = ts.do(t, http.MethodGet, "/api/tasks?sort=bogus", owner, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = ts.do(t, http.MethodGet, "/api/tasks?status=archived", owner, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNullableString(t *testing.T) {
	var req updateTaskRequest

	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	assert.Nil(t, req.AssigneeID.update())

	require.NoError(t, json.Unmarshal([]byte(`{"assigneeId":null}`), &req))
	require.NotNil(t, req.AssigneeID.update())
	assert.Equal(t, "", *req.AssigneeID.update())

	req = updateTaskRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"assigneeId":"u1"}`), &req))
	assert.Equal(t, "u1", *req.AssigneeID.update())

	assert.Error(t, json.Unmarshal([]byte(`{"assigneeId":5}`), &req))
}
