package models

import (
	"strings"
	"time"
)

// Login provider tags
const (
	ProviderLocal    = "local"
	ProviderExternal = "external"
)

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"` // stored lower-cased
	PasswordHash string `json:"-"` // empty for external accounts
	ExternalID   string `gorm:"index" json:"externalId,omitempty"` // identity provider object id
	Provider     string `gorm:"not null;default:'local'" json:"provider"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsExternal returns true if the account is bound to the external identity provider
func (u *User) IsExternal() bool {
	return u.Provider == ProviderExternal
}

// HasPassword reports whether the account can sign in with local credentials
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// NormalizeEmail is the canonical form used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserSummary is the public projection embedded in project and task payloads.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Summary returns the public projection of u.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
