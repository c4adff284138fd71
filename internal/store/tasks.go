package store

import (
	"context"
	"strings"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TaskFilter narrows a task listing. Empty fields are ignored.
type TaskFilter struct {
	ProjectID  string
	Status     string
	Priority   string
	AssigneeID string
	Sort       string // field name, "-" prefix for descending
}

// taskSortColumns maps accepted sort keys to columns.
var taskSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"priority":  "priority",
	"status":    "status",
	"position":  "position",
	"title":     "title",
}

// IsValidTaskSort reports whether sort names a supported sort key.
func IsValidTaskSort(sort string) bool {
	if sort == "" {
		return true
	}
	_, ok := taskSortColumns[strings.TrimPrefix(sort, "-")]
	return ok
}

// taskOrder converts a sort key into an ORDER BY clause.
// Priority and status are ordered by their rank, not alphabetically.
func taskOrder(sort string) clause.OrderByColumn {
	desc := strings.HasPrefix(sort, "-")
	key := strings.TrimPrefix(sort, "-")

	column, ok := taskSortColumns[key]
	if !ok {
		return clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}
	}

	switch key {
	case "priority":
		return clause.OrderByColumn{
			Column: clause.Column{
				Name: "CASE priority WHEN 'low' THEN 0 WHEN 'medium' THEN 1 " +
					"WHEN 'high' THEN 2 ELSE 3 END",
				Raw: true,
			},
			Desc: desc,
		}
	case "status":
		return clause.OrderByColumn{
			Column: clause.Column{
				Name: "CASE status WHEN 'pending' THEN 0 WHEN 'in-progress' THEN 1 " +
					"WHEN 'done' THEN 2 ELSE 3 END",
				Raw: true,
			},
			Desc: desc,
		}
	}
	return clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}
}

func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

// GetTaskByID loads a task with its assignee.
func (s *Store) GetTaskByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	err := s.db.WithContext(ctx).
		Preload("Assignee").
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &task, nil
}

// UpdateTask writes the given task columns. The project reference is never updated.
func (s *Store) UpdateTask(ctx context.Context, id string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	delete(updates, "project_id")

	res := s.db.WithContext(ctx).
		Model(&models.Task{}).
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

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// ListTasks returns tasks in projects userID can access, filtered and paginated.
func (s *Store) ListTasks(
	ctx context.Context,
	userID string,
	filter TaskFilter,
	params PaginationParams,
) ([]models.Task, PaginationResult, error) {
	db := s.db.WithContext(ctx)
	projectIDs := s.accessibleProjects(db, userID).Select("id")

	query := db.Model(&models.Task{}).Where("project_id IN (?)", projectIDs)
	if filter.ProjectID != "" {
		query = query.Where("project_id = ?", filter.ProjectID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.AssigneeID != "" {
		query = query.Where("assignee_id = ?", filter.AssigneeID)
	}
	if search := strings.TrimSpace(params.Search); search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, PaginationResult{}, err
	}

	var tasks []models.Task
	err := query.Session(&gorm.Session{}).
		Preload("Assignee").
		Preload("Project", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "owner_id")
		}).
		Order(taskOrder(filter.Sort)).
		Order("id").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&tasks).Error
	if err != nil {
		return nil, PaginationResult{}, err
	}

	return tasks, CalculatePagination(total, params.Page, params.PageSize), nil
}

// CountTasksByStatus returns the number of tasks per status across all projects.
func (s *Store) CountTasksByStatus(ctx context.Context) (map[string]int64, error) {
	return s.countTasksGrouped(s.db.WithContext(ctx).Model(&models.Task{}), "status")
}

// countTasksGrouped counts rows of query grouped by column.
func (s *Store) countTasksGrouped(query *gorm.DB, column string) (map[string]int64, error) {
	var rows []struct {
		Grp   string
		Count int64
	}
	err := query.
		Select(column + " AS grp, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Grp] = r.Count
	}
	return counts, nil
}
