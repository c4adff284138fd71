package bootstrap

import (
	"github.com/abeluzrivera/Fullstack-Test-01/internal/auth"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/config"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/models"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/services"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/store"
)

// serviceSet holds the business services
type serviceSet struct {
	identity  *services.IdentityService
	projects  *services.ProjectService
	tasks     *services.TaskService
	dashboard *services.DashboardService
}

// initializeServices creates all business logic services
func initializeServices(
	cfg *config.Config,
	db *store.Store,
	sessions core.SessionIssuer,
	external core.ExternalVerifier,
	userCache core.Cache[models.User],
	m core.Recorder,
) serviceSet {
	return serviceSet{
		identity: services.NewIdentityService(
			db,
			auth.BcryptHasher{Cost: cfg.BcryptCost},
			sessions,
			external,
			userCache,
			cfg.UserCacheTTL,
			m,
		),
		projects:  services.NewProjectService(db, m),
		tasks:     services.NewTaskService(db, m),
		dashboard: services.NewDashboardService(db, m),
	}
}
