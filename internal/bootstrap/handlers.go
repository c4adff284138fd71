package bootstrap

import (
	"github.com/abeluzrivera/Fullstack-Test-01/internal/handlers"
)

// handlerSet holds all HTTP handlers
type handlerSet struct {
	auth      *handlers.AuthHandler
	external  *handlers.ExternalAuthHandler
	project   *handlers.ProjectHandler
	task      *handlers.TaskHandler
	dashboard *handlers.DashboardHandler
	user      *handlers.UserHandler
}

// initializeHandlers creates all HTTP handlers
func initializeHandlers(s serviceSet) handlerSet {
	return handlerSet{
		auth:      handlers.NewAuthHandler(s.identity),
		external:  handlers.NewExternalAuthHandler(s.identity),
		project:   handlers.NewProjectHandler(s.projects),
		task:      handlers.NewTaskHandler(s.tasks),
		dashboard: handlers.NewDashboardHandler(s.dashboard),
		user:      handlers.NewUserHandler(s.identity),
	}
}
