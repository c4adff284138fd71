package services

import (
	"context"
	"errors"
	"strings"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/authz"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/models"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProjectUpdate carries the fields to change. Nil fields are left alone.
type ProjectUpdate struct {
	Name        *string
	Description *string
}

// CollaboratorRef names the user to invite, by id or by email.
type CollaboratorRef struct {
	UserID string
	Email  string
}

type ProjectService struct {
	store   *store.Store
	guard   accessGuard
	metrics core.Recorder
}

func NewProjectService(s *store.Store, m core.Recorder) *ProjectService {
	return &ProjectService{
		store:   s,
		guard:   accessGuard{store: s, metrics: m},
		metrics: m,
	}
}

// Create makes ownerID the owner of a new project with no collaborators.
func (s *ProjectService) Create(
	ctx context.Context,
	ownerID, name, description string,
) (*models.Project, error) {
	name, err := validateProjectName(name)
	if err != nil {
		return nil, err
	}
	description, err = validateProjectDescription(description)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
	}
	if err := s.store.CreateProject(ctx, project); err != nil {
		s.metrics.RecordDatabaseQueryError("create_project")
		return nil, err
	}

	zap.L().Info("[Project] Created",
		zap.String("project_id", project.ID),
		zap.String("owner_id", ownerID))
	return s.store.GetProjectByID(ctx, project.ID)
}

// Get returns a project the user owns or collaborates on.
func (s *ProjectService) Get(ctx context.Context, userID, projectID string) (*models.Project, error) {
	return s.guard.project(ctx, userID, projectID, authz.ActionAccessProject)
}

// List returns the projects accessible to userID.
func (s *ProjectService) List(
	ctx context.Context,
	userID string,
	params store.PaginationParams,
) ([]models.Project, store.PaginationResult, error) {
	projects, pagination, err := s.store.ListProjectsForUser(ctx, userID, params)
	if err != nil {
		s.metrics.RecordDatabaseQueryError("list_projects")
		return nil, store.PaginationResult{}, err
	}
	return projects, pagination, nil
}

// Update changes project metadata. Owner only.
func (s *ProjectService) Update(
	ctx context.Context,
	userID, projectID string,
	update ProjectUpdate,
) (*models.Project, error) {
	project, err := s.guard.project(ctx, userID, projectID, authz.ActionManageProject)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if update.Name != nil {
		name, err := validateProjectName(*update.Name)
		if err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if update.Description != nil {
		desc, err := validateProjectDescription(*update.Description)
		if err != nil {
			return nil, err
		}
		updates["description"] = desc
	}
	if len(updates) == 0 {
		return project, nil
	}

	if err := s.store.UpdateProject(ctx, projectID, updates); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.metrics.RecordDatabaseQueryError("update_project")
		return nil, err
	}
	return s.store.GetProjectByID(ctx, projectID)
}

// Delete removes the project together with its tasks. Owner only.
func (s *ProjectService) Delete(ctx context.Context, userID, projectID string) error {
	if _, err := s.guard.project(ctx, userID, projectID, authz.ActionManageProject); err != nil {
		return err
	}

	if err := s.store.DeleteProject(ctx, projectID); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return ErrNotFound
		}
		s.metrics.RecordDatabaseQueryError("delete_project")
		return err
	}

	zap.L().Info("[Project] Deleted",
		zap.String("project_id", projectID),
		zap.String("user_id", userID))
	return nil
}

// AddCollaborator grants project access to another user. Owner only.
// The owner and existing collaborators cannot be added again.
func (s *ProjectService) AddCollaborator(
	ctx context.Context,
	userID, projectID string,
	ref CollaboratorRef,
) (*models.Project, error) {
	project, err := s.guard.project(ctx, userID, projectID, authz.ActionManageProject)
	if err != nil {
		return nil, err
	}

	collaborator, err := s.lookupCollaborator(ctx, ref)
	if err != nil {
		return nil, err
	}
	if project.IsOwner(collaborator.ID) || project.HasCollaborator(collaborator.ID) {
		return nil, validationError("user is already part of the project")
	}

	if err := s.store.AddCollaborator(ctx, projectID, collaborator.ID); err != nil {
		s.metrics.RecordDatabaseQueryError("add_collaborator")
		return nil, err
	}

	zap.L().Info("[Project] Collaborator added",
		zap.String("project_id", projectID),
		zap.String("collaborator_id", collaborator.ID))
	return s.store.GetProjectByID(ctx, projectID)
}

// RemoveCollaborator revokes a user's access. Owner only. Removing a user who
// is not a collaborator leaves the project unchanged. Tasks assigned to the
// removed user keep their assignee.
func (s *ProjectService) RemoveCollaborator(
	ctx context.Context,
	userID, projectID, collaboratorID string,
) (*models.Project, error) {
	if _, err := s.guard.project(ctx, userID, projectID, authz.ActionManageProject); err != nil {
		return nil, err
	}

	removed, err := s.store.RemoveCollaborator(ctx, projectID, collaboratorID)
	if err != nil {
		s.metrics.RecordDatabaseQueryError("remove_collaborator")
		return nil, err
	}
	if removed {
		zap.L().Info("[Project] Collaborator removed",
			zap.String("project_id", projectID),
			zap.String("collaborator_id", collaboratorID))
	}
	return s.store.GetProjectByID(ctx, projectID)
}

func (s *ProjectService) lookupCollaborator(
	ctx context.Context,
	ref CollaboratorRef,
) (*models.User, error) {
	var (
		user *models.User
		err  error
	)
	switch {
	case strings.TrimSpace(ref.UserID) != "":
		user, err = s.store.GetUserByID(ctx, strings.TrimSpace(ref.UserID))
	case strings.TrimSpace(ref.Email) != "":
		email, verr := validateEmail(ref.Email)
		if verr != nil {
			return nil, verr
		}
		user, err = s.store.GetUserByEmail(ctx, email)
	default:
		return nil, validationError("userId or email is required")
	}

	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
