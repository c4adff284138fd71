package handlers

import (
	"net/http"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/middleware"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/services"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/store"

	"github.com/gin-gonic/gin"
)

type createTaskRequest struct {
	ProjectID   string  `json:"project"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	AssigneeID  *string `json:"assigneeId"`
	Position    int     `json:"position"`
}

type updateTaskRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Status      *string        `json:"status"`
	Priority    *string        `json:"priority"`
	AssigneeID  nullableString `json:"assigneeId"`
	Position    *int           `json:"position"`
}

type reorderTaskRequest struct {
	Status   *string `json:"status"`
	Position *int    `json:"position"`
}

type TaskHandler struct {
	tasks *services.TaskService
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Request body must be a JSON object")
		return
	}

	input := services.TaskInput{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Position:    req.Position,
	}
	if req.AssigneeID != nil {
		input.AssigneeID = *req.AssigneeID
	}

	task, err := h.tasks.Create(c.Request.Context(), middleware.GetUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// List returns tasks across the caller's projects. Filters: project, status,
// priority, assignedTo; sort accepts a "-" prefix for descending order.
func (h *TaskHandler) List(c *gin.Context) {
	filter := store.TaskFilter{
		ProjectID:  c.Query("project"),
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		AssigneeID: c.Query("assignedTo"),
		Sort:       c.Query("sort"),
	}

	tasks, pagination, err := h.tasks.List(
		c.Request.Context(),
		middleware.GetUserID(c),
		filter,
		paginationFromQuery(c),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       tasks,
		"pagination": pagination,
	})
}

func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.tasks.Get(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

// Update changes task fields. "assigneeId": null unassigns the task.
func (h *TaskHandler) Update(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Request body must be a JSON object")
		return
	}

	h.update(c, services.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID.update(),
		Position:    req.Position,
	})
}

// Reorder moves a task to a board column and position.
func (h *TaskHandler) Reorder(c *gin.Context) {
	var req reorderTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Request body must be a JSON object")
		return
	}
	if req.Status == nil || req.Position == nil {
		badRequest(c, "status and position are required")
		return
	}

	h.update(c, services.TaskUpdate{Status: req.Status, Position: req.Position})
}

func (h *TaskHandler) update(c *gin.Context, update services.TaskUpdate) {
	task, err := h.tasks.Update(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.tasks.Delete(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
