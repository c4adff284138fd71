package models

import (
	"time"
)

// Task status values
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in-progress"
	TaskStatusDone       = "done"
)

// Task priority values
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// TaskStatuses lists valid statuses in board order.
var TaskStatuses = []string{TaskStatusPending, TaskStatusInProgress, TaskStatusDone}

// TaskPriorities lists valid priorities from lowest to highest.
var TaskPriorities = []string{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}

type Task struct {
	ID          string   `gorm:"primaryKey" json:"id"`
	Title       string   `gorm:"not null" json:"title"`
	Description string   `json:"description"`
	ProjectID   string   `gorm:"not null;index" json:"projectId"`
	Project     *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	AssigneeID  *string  `gorm:"index" json:"assigneeId"`
	Assignee    *User    `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Status      string   `gorm:"not null;default:'pending';index" json:"status"`
	Priority    string   `gorm:"not null;default:'medium';index" json:"priority"`
	Position    int      `gorm:"not null;default:0" json:"position"`
	CreatedByID string   `gorm:"not null;index" json:"createdById"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsAssignedTo reports whether the task is assigned to userID
func (t *Task) IsAssignedTo(userID string) bool {
	return t.AssigneeID != nil && *t.AssigneeID == userID
}

// IsValidTaskStatus reports whether s is a known status.
func IsValidTaskStatus(s string) bool {
	for _, v := range TaskStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsValidTaskPriority reports whether p is a known priority.
func IsValidTaskPriority(p string) bool {
	for _, v := range TaskPriorities {
		if v == p {
			return true
		}
	}
	return false
}
