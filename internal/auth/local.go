package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/models"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/store"
)

// UserLookup is the read the verifier needs from the user store. A missing
// user is reported as store.ErrRecordNotFound.
type UserLookup interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// CredentialVerifier checks an email and password against locally stored
// password digests.
type CredentialVerifier struct {
	users  UserLookup
	hasher core.PasswordHasher

	decoyOnce sync.Once
	decoy     string
}

// NewCredentialVerifier creates a verifier backed by users.
func NewCredentialVerifier(users UserLookup, hasher core.PasswordHasher) *CredentialVerifier {
	return &CredentialVerifier{users: users, hasher: hasher}
}

// Verify returns the user owning email when password matches its digest.
// Unknown emails, accounts without a password (external accounts) and wrong
// passwords all yield ErrInvalidCredentials. Lookup failures are returned
// wrapped. The email is matched case-insensitively.
func (v *CredentialVerifier) Verify(
	ctx context.Context,
	email, password string,
) (*models.User, error) {
	user, err := v.users.GetUserByEmail(ctx, models.NormalizeEmail(email))
	if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		// Burn a comparison so unknown emails take as long as wrong passwords.
		v.hasher.Compare(password, v.decoyDigest())
		return nil, ErrInvalidCredentials
	}

	if !user.HasPassword() {
		return nil, ErrInvalidCredentials
	}

	if !v.hasher.Compare(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Name returns provider name for logging
func (v *CredentialVerifier) Name() string {
	return models.ProviderLocal
}

func (v *CredentialVerifier) decoyDigest() string {
	v.decoyOnce.Do(func() {
		v.decoy, _ = v.hasher.Hash("decoy-password-never-matches")
	})
	return v.decoy
}
