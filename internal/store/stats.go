package store

import (
	"context"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/models"

	"gorm.io/gorm"
)

// UserStats holds the raw counts behind a user's dashboard.
type UserStats struct {
	OwnedProjects         int64
	CollaboratingProjects int64
	OpenTasks             int64 // pending or in-progress
	AssignedTasks         int64
	TasksByStatus         map[string]int64
	TasksByPriority       map[string]int64
	RecentTasks           []models.Task
}

// GetUserStats aggregates project and task counts over the projects userID can access.
func (s *Store) GetUserStats(
	ctx context.Context,
	userID string,
	recentLimit int,
) (*UserStats, error) {
	db := s.db.WithContext(ctx)
	stats := &UserStats{}

	if err := db.Model(&models.Project{}).
		Where("owner_id = ?", userID).
		Count(&stats.OwnedProjects).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.ProjectCollaborator{}).
		Where("user_id = ?", userID).
		Count(&stats.CollaboratingProjects).Error; err != nil {
		return nil, err
	}

	projectIDs := s.accessibleProjects(db, userID).Select("id")
	tasks := func() *gorm.DB {
		return db.Model(&models.Task{}).Where("project_id IN (?)", projectIDs)
	}

	if err := tasks().
		Where("status IN ?", []string{models.TaskStatusPending, models.TaskStatusInProgress}).
		Count(&stats.OpenTasks).Error; err != nil {
		return nil, err
	}
	if err := tasks().
		Where("assignee_id = ?", userID).
		Count(&stats.AssignedTasks).Error; err != nil {
		return nil, err
	}

	var err error
	if stats.TasksByStatus, err = s.countTasksGrouped(tasks(), "status"); err != nil {
		return nil, err
	}
	if stats.TasksByPriority, err = s.countTasksGrouped(tasks(), "priority"); err != nil {
		return nil, err
	}

	if err := tasks().
		Preload("Assignee").
		Preload("Project", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "owner_id")
		}).
		Order("created_at DESC").
		Limit(recentLimit).
		Find(&stats.RecentTasks).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
