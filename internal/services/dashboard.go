package services

import (
	"context"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/models"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/store"
)

const recentTasksLimit = 5

// DashboardStats summarises the projects and tasks visible to one user.
type DashboardStats struct {
	OwnedProjects         int64            `json:"ownedProjects"`
	CollaboratingProjects int64            `json:"collaboratingProjects"`
	TotalProjects         int64            `json:"totalProjects"`
	OpenTasks             int64            `json:"openTasks"`
	AssignedToMe          int64            `json:"assignedToMe"`
	TasksByStatus         map[string]int64 `json:"tasksByStatus"`
	TasksByPriority       map[string]int64 `json:"tasksByPriority"`
	RecentTasks           []models.Task    `json:"recentTasks"`
}

type DashboardService struct {
	store   *store.Store
	metrics core.Recorder
}

func NewDashboardService(s *store.Store, m core.Recorder) *DashboardService {
	return &DashboardService{store: s, metrics: m}
}

// GetStats returns the dashboard for userID. Every status and priority is
// present in the breakdowns, zero when no task has it.
func (s *DashboardService) GetStats(ctx context.Context, userID string) (*DashboardStats, error) {
	raw, err := s.store.GetUserStats(ctx, userID, recentTasksLimit)
	if err != nil {
		s.metrics.RecordDatabaseQueryError("get_user_stats")
		return nil, err
	}

	stats := &DashboardStats{
		OwnedProjects:         raw.OwnedProjects,
		CollaboratingProjects: raw.CollaboratingProjects,
		TotalProjects:         raw.OwnedProjects + raw.CollaboratingProjects,
		OpenTasks:             raw.OpenTasks,
		AssignedToMe:          raw.AssignedTasks,
		TasksByStatus:         zeroFilled(models.TaskStatuses, raw.TasksByStatus),
		TasksByPriority:       zeroFilled(models.TaskPriorities, raw.TasksByPriority),
		RecentTasks:           raw.RecentTasks,
	}
	if stats.RecentTasks == nil {
		stats.RecentTasks = []models.Task{}
	}
	return stats, nil
}

func zeroFilled(keys []string, counts map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(keys))
	for _, k := range keys {
		out[k] = counts[k]
	}
	return out
}
