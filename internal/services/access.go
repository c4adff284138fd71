package services

import (
	"context"
	"errors"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/authz"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/models"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/store"

	"go.uber.org/zap"
)

// accessGuard loads resources and checks them against the authz predicates.
// A missing resource is ErrNotFound, an existing one the caller may not use
// is ErrForbidden.
type accessGuard struct {
	store   *store.Store
	metrics core.Recorder
}

func (g accessGuard) project(
	ctx context.Context,
	userID, projectID, action string,
) (*models.Project, error) {
	project, err := g.store.GetProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		g.metrics.RecordDatabaseQueryError("get_project")
		return nil, err
	}

	var allowed bool
	switch action {
	case authz.ActionManageProject:
		allowed = authz.CanManageProject(userID, project)
	default:
		allowed = authz.CanAccessProject(userID, project)
	}
	if !allowed {
		g.deny(userID, projectID, action)
		return nil, ErrForbidden
	}
	return project, nil
}

// task loads a task and the project it belongs to.
func (g accessGuard) task(
	ctx context.Context,
	userID, taskID string,
) (*models.Task, *models.Project, error) {
	task, err := g.store.GetTaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		g.metrics.RecordDatabaseQueryError("get_task")
		return nil, nil, err
	}

	project, err := g.store.GetProjectByID(ctx, task.ProjectID)
	if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		g.metrics.RecordDatabaseQueryError("get_project")
		return nil, nil, err
	}

	// A task whose project is gone is denied like any other.
	if !authz.CanAccessTask(userID, task, project) {
		g.deny(userID, taskID, authz.ActionAccessTask)
		return nil, nil, ErrForbidden
	}
	return task, project, nil
}

func (g accessGuard) deny(userID, resourceID, action string) {
	g.metrics.RecordAuthorizationDenied(action)
	zap.L().Info("[Authz] Denied",
		zap.String("user_id", userID),
		zap.String("resource_id", resourceID),
		zap.String("action", action))
}
