package handlers

import (
	"net/http"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/middleware"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/services"

	"github.com/gin-gonic/gin"
)

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type collaboratorRequest struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type ProjectHandler struct {
	projects *services.ProjectService
}

func NewProjectHandler(projects *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Request body must be a JSON object")
		return
	}

	project, err := h.projects.Create(
		c.Request.Context(),
		middleware.GetUserID(c),
		req.Name,
		req.Description,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"project": project})
}

// List returns the caller's projects, newest first.
func (h *ProjectHandler) List(c *gin.Context) {
	projects, pagination, err := h.projects.List(
		c.Request.Context(),
		middleware.GetUserID(c),
		paginationFromQuery(c),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       projects,
		"pagination": pagination,
	})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.projects.Get(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

func (h *ProjectHandler) Update(c *gin.Context) {
	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Request body must be a JSON object")
		return
	}

	project, err := h.projects.Update(
		c.Request.Context(),
		middleware.GetUserID(c),
		c.Param("id"),
		services.ProjectUpdate{Name: req.Name, Description: req.Description},
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

// Delete removes the project and its tasks.
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProjectHandler) AddCollaborator(c *gin.Context) {
	var req collaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Request body must be a JSON object")
		return
	}

	project, err := h.projects.AddCollaborator(
		c.Request.Context(),
		middleware.GetUserID(c),
		c.Param("id"),
		services.CollaboratorRef{UserID: req.UserID, Email: req.Email},
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

func (h *ProjectHandler) RemoveCollaborator(c *gin.Context) {
	project, err := h.projects.RemoveCollaborator(
		c.Request.Context(),
		middleware.GetUserID(c),
		c.Param("id"),
		c.Param("userId"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}
