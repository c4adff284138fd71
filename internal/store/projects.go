package store

import (
	"context"
	"strings"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) CreateProject(ctx context.Context, project *models.Project) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
}

// GetProjectByID loads a project together with its owner and collaborators.
func (s *Store) GetProjectByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	err := s.withProjectRelations(s.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &project, nil
}

// UpdateProject writes the mutable project columns.
func (s *Store) UpdateProject(ctx context.Context, id string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	res := s.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// DeleteProject removes a project with its tasks and membership rows in one
// transaction.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).
			Delete(&models.ProjectCollaborator{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Project{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRecordNotFound
		}
		return nil
	})
}

// AddCollaborator inserts a membership row. Adding an existing member is a no-op.
func (s *Store) AddCollaborator(ctx context.Context, projectID, userID string) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ProjectCollaborator{ProjectID: projectID, UserID: userID}).Error
}

// RemoveCollaborator deletes a membership row. It reports whether a row existed.
func (s *Store) RemoveCollaborator(ctx context.Context, projectID, userID string) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectCollaborator{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListProjectsForUser returns the projects userID owns or collaborates on,
// newest first, optionally filtered by a case-insensitive name search.
func (s *Store) ListProjectsForUser(
	ctx context.Context,
	userID string,
	params PaginationParams,
) ([]models.Project, PaginationResult, error) {
	query := s.accessibleProjects(s.db.WithContext(ctx), userID)
	if search := strings.TrimSpace(params.Search); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, PaginationResult{}, err
	}

	var projects []models.Project
	err := s.withProjectRelations(query.Session(&gorm.Session{})).
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&projects).Error
	if err != nil {
		return nil, PaginationResult{}, err
	}

	return projects, CalculatePagination(total, params.Page, params.PageSize), nil
}

// AccessibleProjectIDs returns the ids of every project userID can access.
func (s *Store) AccessibleProjectIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := s.accessibleProjects(s.db.WithContext(ctx), userID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// accessibleProjects scopes a project query to owner-or-collaborator membership.
func (s *Store) accessibleProjects(db *gorm.DB, userID string) *gorm.DB {
	memberOf := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.ProjectCollaborator{}).
		Select("project_id").
		Where("user_id = ?", userID)
	return db.Model(&models.Project{}).
		Where("owner_id = ? OR id IN (?)", userID, memberOf)
}

func (s *Store) withProjectRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Owner").
		Preload("Collaborators", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Collaborators.User")
}

// CountProjects returns the total number of projects.
func (s *Store) CountProjects(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Project{}).Count(&count).Error
	return count, err
}
