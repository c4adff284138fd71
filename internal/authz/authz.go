// Package authz holds the authorization predicates for projects and tasks.
// Every predicate denies by default: a nil project, a nil task or an empty
// user id is never granted anything.
package authz

import "github.com/abeluzrivera/Fullstack-Test-01/internal/models"

// Actions reported when a predicate denies a request.
const (
	ActionAccessProject = "access_project"
	ActionManageProject = "manage_project"
	ActionAccessTask    = "access_task"
	ActionAssignTask    = "assign_task"
)

// CanAccessProject reports whether userID owns or collaborates on project.
func CanAccessProject(userID string, project *models.Project) bool {
	if project == nil || userID == "" {
		return false
	}
	return project.IsOwner(userID) || project.HasCollaborator(userID)
}

// CanManageProject reports whether userID may change the project itself:
// rename it, delete it or edit its collaborator set. Only the owner may.
func CanManageProject(userID string, project *models.Project) bool {
	if project == nil {
		return false
	}
	return project.IsOwner(userID)
}

// CanAccessTask reports whether userID may read or modify task. Task access
// follows project access; project must be the task's project.
func CanAccessTask(userID string, task *models.Task, project *models.Project) bool {
	if task == nil || project == nil || task.ProjectID != project.ID {
		return false
	}
	return CanAccessProject(userID, project)
}

// CanAssign reports whether assigneeID is a valid assignee for tasks of
// project, i.e. has access to the project.
func CanAssign(assigneeID string, project *models.Project) bool {
	return CanAccessProject(assigneeID, project)
}
