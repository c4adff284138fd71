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

// TaskInput describes a new task. Empty status and priority take the defaults.
type TaskInput struct {
	ProjectID   string
	Title       string
	Description string
	Status      string
	Priority    string
	AssigneeID  string
	Position    int
}

// TaskUpdate carries the fields to change. Nil fields are left alone and an
// empty AssigneeID unassigns the task. The project can not be changed.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	AssigneeID  *string
	Position    *int
}

type TaskService struct {
	store   *store.Store
	guard   accessGuard
	metrics core.Recorder
}

func NewTaskService(s *store.Store, m core.Recorder) *TaskService {
	return &TaskService{
		store:   s,
		guard:   accessGuard{store: s, metrics: m},
		metrics: m,
	}
}

// Create adds a task to a project the user can access.
func (s *TaskService) Create(
	ctx context.Context,
	userID string,
	input TaskInput,
) (*models.Task, error) {
	if strings.TrimSpace(input.ProjectID) == "" {
		return nil, validationError("project is required")
	}
	title, err := validateTaskTitle(input.Title)
	if err != nil {
		return nil, err
	}
	description, err := validateTaskDescription(input.Description)
	if err != nil {
		return nil, err
	}
	if input.Status == "" {
		input.Status = models.TaskStatusPending
	}
	if err := validateTaskStatus(input.Status); err != nil {
		return nil, err
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if err := validateTaskPriority(input.Priority); err != nil {
		return nil, err
	}
	if err := validatePosition(input.Position); err != nil {
		return nil, err
	}

	project, err := s.guard.project(ctx, userID, input.ProjectID, authz.ActionAccessProject)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		ProjectID:   project.ID,
		Status:      input.Status,
		Priority:    input.Priority,
		Position:    input.Position,
		CreatedByID: userID,
	}
	if assignee := strings.TrimSpace(input.AssigneeID); assignee != "" {
		if err := s.checkAssignee(userID, assignee, project); err != nil {
			return nil, err
		}
		task.AssigneeID = &assignee
	}

	if err := s.store.CreateTask(ctx, task); err != nil {
		s.metrics.RecordDatabaseQueryError("create_task")
		return nil, err
	}

	zap.L().Info("[Task] Created",
		zap.String("task_id", task.ID),
		zap.String("project_id", project.ID),
		zap.String("user_id", userID))
	return s.store.GetTaskByID(ctx, task.ID)
}

// Get returns a task in a project the user can access.
func (s *TaskService) Get(ctx context.Context, userID, taskID string) (*models.Task, error) {
	task, project, err := s.guard.task(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	task.Project = project
	return task, nil
}

// List returns tasks from every project the user can access.
func (s *TaskService) List(
	ctx context.Context,
	userID string,
	filter store.TaskFilter,
	params store.PaginationParams,
) ([]models.Task, store.PaginationResult, error) {
	if filter.Status != "" {
		if err := validateTaskStatus(filter.Status); err != nil {
			return nil, store.PaginationResult{}, err
		}
	}
	if filter.Priority != "" {
		if err := validateTaskPriority(filter.Priority); err != nil {
			return nil, store.PaginationResult{}, err
		}
	}
	if !store.IsValidTaskSort(filter.Sort) {
		return nil, store.PaginationResult{}, validationError("unsupported sort %q", filter.Sort)
	}

	tasks, pagination, err := s.store.ListTasks(ctx, userID, filter, params)
	if err != nil {
		s.metrics.RecordDatabaseQueryError("list_tasks")
		return nil, store.PaginationResult{}, err
	}
	return tasks, pagination, nil
}

// Update changes task fields. A new assignee must be a project member; an
// unchanged assignee is not checked again.
func (s *TaskService) Update(
	ctx context.Context,
	userID, taskID string,
	update TaskUpdate,
) (*models.Task, error) {
	task, project, err := s.guard.task(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if update.Title != nil {
		title, err := validateTaskTitle(*update.Title)
		if err != nil {
			return nil, err
		}
		updates["title"] = title
	}
	if update.Description != nil {
		desc, err := validateTaskDescription(*update.Description)
		if err != nil {
			return nil, err
		}
		updates["description"] = desc
	}
	if update.Status != nil {
		if err := validateTaskStatus(*update.Status); err != nil {
			return nil, err
		}
		updates["status"] = *update.Status
	}
	if update.Priority != nil {
		if err := validateTaskPriority(*update.Priority); err != nil {
			return nil, err
		}
		updates["priority"] = *update.Priority
	}
	if update.Position != nil {
		if err := validatePosition(*update.Position); err != nil {
			return nil, err
		}
		updates["position"] = *update.Position
	}
	if update.AssigneeID != nil {
		assignee := strings.TrimSpace(*update.AssigneeID)
		switch {
		case assignee == "":
			updates["assignee_id"] = nil
		case task.IsAssignedTo(assignee):
			// unchanged
		default:
			if err := s.checkAssignee(userID, assignee, project); err != nil {
				return nil, err
			}
			updates["assignee_id"] = assignee
		}
	}

	if len(updates) > 0 {
		if err := s.store.UpdateTask(ctx, taskID, updates); err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			s.metrics.RecordDatabaseQueryError("update_task")
			return nil, err
		}
	}

	updated, err := s.store.GetTaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	updated.Project = project
	return updated, nil
}

// Delete removes a task from a project the user can access.
func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	if _, _, err := s.guard.task(ctx, userID, taskID); err != nil {
		return err
	}

	if err := s.store.DeleteTask(ctx, taskID); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return ErrNotFound
		}
		s.metrics.RecordDatabaseQueryError("delete_task")
		return err
	}
	return nil
}

func (s *TaskService) checkAssignee(userID, assigneeID string, project *models.Project) error {
	if authz.CanAssign(assigneeID, project) {
		return nil
	}
	s.guard.deny(userID, project.ID, authz.ActionAssignTask)
	return ErrInvalidAssignee
}
