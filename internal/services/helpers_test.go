package services

import (
	"context"
	"testing"
	"time"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/auth"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/cache"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/metrics"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/models"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/store"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/token"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-for-session-tokens"

var testHasher = auth.BcryptHasher{Cost: bcrypt.MinCost}

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newIdentityService(
	s *store.Store,
	external core.ExternalVerifier,
	c core.Cache[models.User],
) *IdentityService {
	if c == nil {
		c = cache.NewMemoryCache[models.User]()
	}
	return NewIdentityService(
		s,
		testHasher,
		token.NewLocalTokenProvider(testSecret, time.Hour),
		external,
		c,
		5*time.Minute,
		metrics.NewNoopMetrics(),
	)
}

func makeTestUser(t *testing.T, s *store.Store, provider string) *models.User {
	t.Helper()
	u := &models.User{
		ID:       uuid.New().String(),
		Name:     "User " + uuid.New().String()[:8],
		Email:    uuid.New().String()[:12] + "@example.com",
		Provider: provider,
	}
	if provider == models.ProviderLocal {
		digest, err := testHasher.Hash("password123")
		require.NoError(t, err)
		u.PasswordHash = digest
	} else {
		u.ExternalID = "ext-" + uuid.New().String()[:8]
	}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func makeTestProject(
	t *testing.T,
	s *store.Store,
	owner *models.User,
	collaborators ...*models.User,
) *models.Project {
	t.Helper()
	ctx := context.Background()
	p := &models.Project{
		ID:      uuid.New().String(),
		Name:    "Project " + uuid.New().String()[:8],
		OwnerID: owner.ID,
	}
	require.NoError(t, s.CreateProject(ctx, p))
	for _, c := range collaborators {
		require.NoError(t, s.AddCollaborator(ctx, p.ID, c.ID))
	}
	loaded, err := s.GetProjectByID(ctx, p.ID)
	require.NoError(t, err)
	return loaded
}

// callFetchFn is a DoAndReturn helper that invokes the cache fetch function,
// simulating a cache miss where the real DB fetch is executed.
func callFetchFn[T any](
	ctx context.Context,
	key string,
	_ time.Duration,
	fn func(context.Context, string) (T, error),
) (T, error) {
	return fn(ctx, key)
}

func ptr[T any](v T) *T {
	return &v
}
