package models

import (
	"time"
)

type Project struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null;index" json:"name"`
	Description string `json:"description"`
	OwnerID     string `gorm:"not null;index" json:"ownerId"`
	Owner       *User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	Collaborators []ProjectCollaborator `gorm:"foreignKey:ProjectID" json:"collaborators"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProjectCollaborator is a membership row. The (project, user) pair is unique.
type ProjectCollaborator struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	ProjectID string    `gorm:"not null;uniqueIndex:idx_project_user;index" json:"-"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_project_user;index" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"addedAt"`
}

// IsOwner reports whether userID owns the project
func (p *Project) IsOwner(userID string) bool {
	return userID != "" && p.OwnerID == userID
}

// HasCollaborator reports whether userID is in the collaborator set
func (p *Project) HasCollaborator(userID string) bool {
	if userID == "" {
		return false
	}
	for _, c := range p.Collaborators {
		if c.UserID == userID {
			return true
		}
	}
	return false
}

// CollaboratorIDs returns the user ids of all collaborators.
func (p *Project) CollaboratorIDs() []string {
	ids := make([]string, 0, len(p.Collaborators))
	for _, c := range p.Collaborators {
		ids = append(ids, c.UserID)
	}
	return ids
}
