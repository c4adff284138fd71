package authz

import (
	"testing"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/models"

	"github.com/stretchr/testify/assert"
)

func testProject() *models.Project {
	return &models.Project{
		ID:      "p1",
		OwnerID: "owner",
		Collaborators: []models.ProjectCollaborator{
			{ProjectID: "p1", UserID: "collab"},
		},
	}
}

func TestCanAccessProject(t *testing.T) {
	p := testProject()

	tests := []struct {
		name    string
		userID  string
		project *models.Project
		want    bool
	}{
		{"owner", "owner", p, true},
		{"collaborator", "collab", p, true},
		{"stranger", "stranger", p, false},
		{"empty user", "", p, false},
		{"nil project", "owner", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccessProject(tt.userID, tt.project))
		})
	}
}

func TestCanManageProject(t *testing.T) {
	p := testProject()

	assert.True(t, CanManageProject("owner", p))
	assert.False(t, CanManageProject("collab", p), "collaborators cannot manage")
	assert.False(t, CanManageProject("stranger", p))
	assert.False(t, CanManageProject("", &models.Project{}), "empty owner never matches")
	assert.False(t, CanManageProject("owner", nil))
}

func TestCanAccessTask(t *testing.T) {
	p := testProject()
	task := &models.Task{ID: "t1", ProjectID: "p1"}
	elsewhere := &models.Task{ID: "t2", ProjectID: "p2"}

	assert.True(t, CanAccessTask("owner", task, p))
	assert.True(t, CanAccessTask("collab", task, p))
	assert.False(t, CanAccessTask("stranger", task, p))
	assert.False(t, CanAccessTask("owner", elsewhere, p), "task must belong to the project")
	assert.False(t, CanAccessTask("owner", nil, p))
	assert.False(t, CanAccessTask("owner", task, nil))
}

func TestCanAssign(t *testing.T) {
	p := testProject()

	assert.True(t, CanAssign("owner", p))
	assert.True(t, CanAssign("collab", p))
	assert.False(t, CanAssign("stranger", p))
	assert.False(t, CanAssign("", p))
	assert.False(t, CanAssign("collab", nil))
}
