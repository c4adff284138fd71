package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/mocks"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/models"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers map[string]*models.User

func (f fakeUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f[email]; ok {
		return u, nil
	}
	return nil, store.ErrRecordNotFound
}

type failingUsers struct{ err error }

func (f failingUsers) GetUserByEmail(context.Context, string) (*models.User, error) {
	return nil, f.err
}

func newTestVerifier(t *testing.T) (*CredentialVerifier, *models.User) {
	t.Helper()
	hasher := BcryptHasher{Cost: bcrypt.MinCost}
	digest, err := hasher.Hash("correct-horse")
	require.NoError(t, err)

	local := &models.User{
		ID:           "u-local",
		Name:         "Ada",
		Email:        "ada@example.com",
		PasswordHash: digest,
		Provider:     models.ProviderLocal,
	}
	external := &models.User{
		ID:       "u-ext",
		Name:     "Grace",
		Email:    "grace@example.com",
		Provider: models.ProviderExternal,
	}
	users := fakeUsers{local.Email: local, external.Email: external}
	return NewCredentialVerifier(users, hasher), local
}

func TestBcryptHasher(t *testing.T) {
	hasher := BcryptHasher{Cost: bcrypt.MinCost}

	digest, err := hasher.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", digest)
	assert.True(t, hasher.Compare("s3cret-pass", digest))
	assert.False(t, hasher.Compare("other-pass", digest))
	assert.False(t, hasher.Compare("s3cret-pass", ""))
}

func TestBcryptHasher_DefaultCost(t *testing.T) {
	digest, err := BcryptHasher{}.Hash("s3cret-pass")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestCredentialVerifier_Verify(t *testing.T) {
	verifier, local := newTestVerifier(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid credentials", "ada@example.com", "correct-horse", nil},
		{"email case ignored", "  ADA@Example.com ", "correct-horse", nil},
		{"wrong password", "ada@example.com", "wrong-horse", ErrInvalidCredentials},
		{"unknown email", "nobody@example.com", "correct-horse", ErrInvalidCredentials},
		{"external account has no password", "grace@example.com", "", ErrInvalidCredentials},
		{"empty password", "ada@example.com", "", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := verifier.Verify(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, local.ID, user.ID)
		})
	}
}

func TestCredentialVerifier_UnknownEmailStillCompares(t *testing.T) {
	ctrl := gomock.NewController(t)
	hasher := mocks.NewMockPasswordHasher(ctrl)
	hasher.EXPECT().Hash(gomock.Any()).Return("decoy", nil).Times(1)
	hasher.EXPECT().Compare("pw", "decoy").Return(false).Times(2)

	verifier := NewCredentialVerifier(fakeUsers{}, hasher)

	for range 2 {
		_, err := verifier.Verify(context.Background(), "ghost@example.com", "pw")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
	assert.Equal(t, models.ProviderLocal, verifier.Name())
}

func TestCredentialVerifier_LookupFailureIsNotInvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	// No expectations: a store failure must not reach the hasher
	hasher := mocks.NewMockPasswordHasher(ctrl)
	dbErr := errors.New("connection refused")

	verifier := NewCredentialVerifier(failingUsers{err: dbErr}, hasher)

	user, err := verifier.Verify(context.Background(), "ada@example.com", "correct-horse")
	require.Error(t, err)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
