package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/metrics"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats_Empty(t *testing.T) {
	db := setupTestStore(t)
	svc := NewDashboardService(db, metrics.NewNoopMetrics())
	u := makeTestUser(t, db, models.ProviderLocal)

	stats, err := svc.GetStats(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalProjects)
	assert.Equal(t, map[string]int64{"pending": 0, "in-progress": 0, "done": 0}, stats.TasksByStatus)
	assert.Equal(t, map[string]int64{"low": 0, "medium": 0, "high": 0}, stats.TasksByPriority)
	assert.NotNil(t, stats.RecentTasks)
	assert.Empty(t, stats.RecentTasks)
}

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t)
	svc := NewDashboardService(f.db, metrics.NewNoopMetrics())

	// collab also owns a project of their own
	own := makeTestProject(t, f.db, f.collab)

	statuses := []string{
		models.TaskStatusPending,
		models.TaskStatusInProgress,
		models.TaskStatusDone,
		models.TaskStatusDone,
		models.TaskStatusPending,
		models.TaskStatusPending,
	}
	for i, status := range statuses {
		in := TaskInput{
			ProjectID: f.project.ID,
			Title:     fmt.Sprintf("Task number %d", i),
			Status:    status,
		}
		if i%2 == 0 {
			in.AssigneeID = f.collab.ID
		}
		_, err := f.tasks.Create(ctx, f.owner.ID, in)
		require.NoError(t, err)
	}
	_, err := f.tasks.Create(ctx, f.collab.ID, TaskInput{
		ProjectID: own.ID,
		Title:     "Personal errand",
		Priority:  models.TaskPriorityHigh,
	})
	require.NoError(t, err)

	stats, err := svc.GetStats(ctx, f.collab.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.OwnedProjects)
	assert.Equal(t, int64(1), stats.CollaboratingProjects)
	assert.Equal(t, int64(2), stats.TotalProjects)
	assert.Equal(t, int64(5), stats.OpenTasks)
	assert.Equal(t, int64(3), stats.AssignedToMe)
	assert.Equal(t, int64(4), stats.TasksByStatus[models.TaskStatusPending])
	assert.Equal(t, int64(1), stats.TasksByStatus[models.TaskStatusInProgress])
	assert.Equal(t, int64(2), stats.TasksByStatus[models.TaskStatusDone])
	assert.Equal(t, int64(6), stats.TasksByPriority[models.TaskPriorityMedium])
	assert.Equal(t, int64(1), stats.TasksByPriority[models.TaskPriorityHigh])
	assert.Equal(t, int64(0), stats.TasksByPriority[models.TaskPriorityLow])
	assert.Len(t, stats.RecentTasks, 5)

	strangerStats, err := svc.GetStats(ctx, f.stranger.ID)
	require.NoError(t, err)
	assert.Zero(t, strangerStats.TotalProjects)
	assert.Zero(t, strangerStats.OpenTasks)
}
