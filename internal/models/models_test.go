package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_Provider(t *testing.T) {
	local := &User{Provider: ProviderLocal, PasswordHash: "hash"}
	assert.False(t, local.IsExternal())
	assert.True(t, local.HasPassword())

	ext := &User{Provider: ProviderExternal}
	assert.True(t, ext.IsExternal())
	assert.False(t, ext.HasPassword())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "x@y.com", NormalizeEmail("  X@Y.Com "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestProject_Membership(t *testing.T) {
	p := &Project{
		OwnerID: "owner",
		Collaborators: []ProjectCollaborator{
			{UserID: "c1"},
			{UserID: "c2"},
		},
	}

	assert.True(t, p.IsOwner("owner"))
	assert.False(t, p.IsOwner("c1"))
	assert.False(t, p.IsOwner(""))

	assert.True(t, p.HasCollaborator("c2"))
	assert.False(t, p.HasCollaborator("owner"))
	assert.False(t, p.HasCollaborator(""))

	assert.Equal(t, []string{"c1", "c2"}, p.CollaboratorIDs())
}

func TestTask_Enums(t *testing.T) {
	assert.True(t, IsValidTaskStatus(TaskStatusInProgress))
	assert.False(t, IsValidTaskStatus("en progreso"))
	assert.True(t, IsValidTaskPriority(TaskPriorityHigh))
	assert.False(t, IsValidTaskPriority("urgent"))

	assignee := "u1"
	task := &Task{AssigneeID: &assignee}
	assert.True(t, task.IsAssignedTo("u1"))
	assert.False(t, task.IsAssignedTo("u2"))
	assert.False(t, (&Task{}).IsAssignedTo("u1"))
}
