package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/auth"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/models"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/store"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Provisioning outcomes reported to metrics.
const (
	provisionCreated    = "created"
	provisionReconciled = "reconciled"
)

// Auth attempt methods reported to metrics.
const (
	methodRegister = "register"
	methodLocal    = "local"
	methodExternal = "external"
)

// resolveAttempts bounds the create-then-lookup loop of ResolveFromClaims.
const resolveAttempts = 3

// AuthResult is returned by the local authentication paths.
type AuthResult struct {
	User  *models.User
	Token *core.SessionToken
}

// IdentityService turns credentials and tokens into application users.
type IdentityService struct {
	store     *store.Store
	verifier  *auth.CredentialVerifier
	hasher    core.PasswordHasher
	sessions  core.SessionIssuer
	external  core.ExternalVerifier // nil when external authentication is disabled
	userCache core.Cache[models.User]
	cacheTTL  time.Duration
	metrics   core.Recorder
}

func NewIdentityService(
	s *store.Store,
	hasher core.PasswordHasher,
	sessions core.SessionIssuer,
	external core.ExternalVerifier,
	userCache core.Cache[models.User],
	cacheTTL time.Duration,
	m core.Recorder,
) *IdentityService {
	return &IdentityService{
		store:     s,
		verifier:  auth.NewCredentialVerifier(s, hasher),
		hasher:    hasher,
		sessions:  sessions,
		external:  external,
		userCache: userCache,
		cacheTTL:  cacheTTL,
		metrics:   m,
	}
}

// ExternalEnabled reports whether external tokens are accepted.
func (s *IdentityService) ExternalEnabled() bool {
	return s.external != nil
}

// Register creates a local account and signs it in.
func (s *IdentityService) Register(
	ctx context.Context,
	name, email, password string,
) (*AuthResult, error) {
	start := time.Now()
	result, err := s.register(ctx, name, email, password)
	s.metrics.RecordAuthAttempt(methodRegister, err == nil, time.Since(start))
	return result, err
}

func (s *IdentityService) register(
	ctx context.Context,
	name, email, password string,
) (*AuthResult, error) {
	name, err := validateUserName(name)
	if err != nil {
		return nil, err
	}
	email, err = validateEmail(email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, store.ErrRecordNotFound) {
		return nil, err
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: digest,
		Provider:     models.ProviderLocal,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		// Lost a race against a concurrent registration
		if errors.Is(err, store.ErrEmailConflict) {
			return nil, ErrEmailInUse
		}
		s.metrics.RecordDatabaseQueryError("create_user")
		return nil, err
	}

	tok, err := s.sessions.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	zap.L().Info("[Auth] User registered",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email))
	return &AuthResult{User: user, Token: tok}, nil
}

// Login verifies local credentials and issues a session token.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	start := time.Now()

	user, err := s.verifier.Verify(ctx, email, password)
	if err != nil {
		s.metrics.RecordAuthAttempt(methodLocal, false, time.Since(start))
		zap.L().Warn("[Auth] Login failed",
			zap.String("email", models.NormalizeEmail(email)),
			zap.Error(err))
		return nil, err
	}

	tok, err := s.sessions.Issue(user.ID)
	if err != nil {
		s.metrics.RecordAuthAttempt(methodLocal, false, time.Since(start))
		return nil, err
	}

	s.metrics.RecordAuthAttempt(methodLocal, true, time.Since(start))
	return &AuthResult{User: user, Token: tok}, nil
}

// AuthenticateSession validates a session token and loads its user. A token
// whose user no longer exists is invalid.
func (s *IdentityService) AuthenticateSession(
	ctx context.Context,
	rawToken string,
) (*models.User, *core.SessionClaims, error) {
	start := time.Now()

	claims, err := s.sessions.Validate(rawToken)
	if err != nil {
		s.metrics.RecordTokenValidation(methodLocal, validationResult(err), time.Since(start))
		return nil, nil, err
	}

	user, err := s.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			err = fmt.Errorf("%w: user no longer exists", token.ErrInvalidToken)
		}
		s.metrics.RecordTokenValidation(methodLocal, validationResult(err), time.Since(start))
		return nil, nil, err
	}

	s.metrics.RecordTokenValidation(methodLocal, "valid", time.Since(start))
	return user, claims, nil
}

// AuthenticateExternal verifies an external token and resolves its user.
// The two halves stay separately callable through the verifier and
// ResolveFromClaims.
func (s *IdentityService) AuthenticateExternal(
	ctx context.Context,
	rawToken string,
) (*models.User, *core.ExternalClaims, error) {
	if s.external == nil {
		return nil, nil, fmt.Errorf("%w: external authentication is disabled", token.ErrInvalidToken)
	}

	claims, err := s.external.Verify(ctx, rawToken)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.ResolveFromClaims(ctx, claims)
	if err != nil {
		return nil, nil, err
	}
	return user, claims, nil
}

// ValidateExternal verifies an external token without touching the user store.
func (s *IdentityService) ValidateExternal(
	ctx context.Context,
	rawToken string,
) (*core.ExternalClaims, error) {
	if s.external == nil {
		return nil, fmt.Errorf("%w: external authentication is disabled", token.ErrInvalidToken)
	}
	return s.external.Verify(ctx, rawToken)
}

// LookupExternal verifies an external token and returns the account already
// registered under its email. Nothing is written: the user is nil when no
// account exists, and a local account is returned as it is.
func (s *IdentityService) LookupExternal(
	ctx context.Context,
	rawToken string,
) (*models.User, *core.ExternalClaims, error) {
	claims, err := s.ValidateExternal(ctx, rawToken)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.LookupFromClaims(ctx, claims)
	if errors.Is(err, ErrNotFound) {
		return nil, claims, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return user, claims, nil
}

// LookupFromClaims finds the user whose email matches verified claims.
// Returns ErrNotFound when there is none.
func (s *IdentityService) LookupFromClaims(
	ctx context.Context,
	claims *core.ExternalClaims,
) (*models.User, error) {
	email, err := token.ResolveEmail(claims)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, store.ErrRecordNotFound):
		return nil, ErrNotFound
	case err != nil:
		s.metrics.RecordDatabaseQueryError("get_user_by_email")
		return nil, err
	}
	return user, nil
}

// ResolveFromClaims returns the user for verified external claims, creating
// it on first sight and reconciling a local account with the same email.
// Reconciliation is one-way: the account becomes external and loses its password.
func (s *IdentityService) ResolveFromClaims(
	ctx context.Context,
	claims *core.ExternalClaims,
) (*models.User, error) {
	email, err := token.ResolveEmail(claims)
	if err != nil {
		return nil, err
	}

	for range resolveAttempts {
		existing, err := s.store.GetUserByEmail(ctx, email)
		switch {
		case err == nil:
			return s.reconcile(ctx, existing, claims)

		case errors.Is(err, store.ErrRecordNotFound):
			user, err := s.provision(ctx, email, claims)
			if errors.Is(err, store.ErrEmailConflict) {
				// Another first login for this email won; read its row.
				continue
			}
			return user, err

		default:
			s.metrics.RecordDatabaseQueryError("get_user_by_email")
			return nil, err
		}
	}

	return nil, fmt.Errorf("failed to resolve user for %s", email)
}

func (s *IdentityService) provision(
	ctx context.Context,
	email string,
	claims *core.ExternalClaims,
) (*models.User, error) {
	user := &models.User{
		ID:         uuid.New().String(),
		Name:       provisionedName(token.ResolveName(claims, email)),
		Email:      email,
		ExternalID: claims.Subject,
		Provider:   models.ProviderExternal,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.metrics.RecordUserProvisioned(provisionCreated)
	zap.L().Info("[Identity] Provisioned external user",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("subject", claims.Subject))
	return user, nil
}

func (s *IdentityService) reconcile(
	ctx context.Context,
	user *models.User,
	claims *core.ExternalClaims,
) (*models.User, error) {
	if user.IsExternal() {
		return user, nil
	}

	reconciled, err := s.store.ReconcileExternalUser(ctx, user.ID, claims.Subject)
	if err != nil {
		s.metrics.RecordDatabaseQueryError("reconcile_user")
		return nil, err
	}
	s.invalidateUser(ctx, user.ID)

	s.metrics.RecordUserProvisioned(provisionReconciled)
	zap.L().Info("[Identity] Reconciled local account to external provider",
		zap.String("user_id", user.ID),
		zap.String("subject", reconciled.ExternalID))
	return reconciled, nil
}

// GetUser loads a user through the user cache.
func (s *IdentityService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userCache.GetWithFetch(
		ctx,
		userCacheKey(id),
		s.cacheTTL,
		func(ctx context.Context, _ string) (models.User, error) {
			u, err := s.store.GetUserByID(ctx, id)
			if err != nil {
				return models.User{}, err
			}
			return *u, nil
		},
	)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes the display name of a user.
func (s *IdentityService) UpdateProfile(
	ctx context.Context,
	userID, name string,
) (*models.User, error) {
	name, err := validateUserName(name)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateUserName(ctx, userID, name); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.invalidateUser(ctx, userID)

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// FindByEmail is an exact, case-insensitive lookup used to invite collaborators.
func (s *IdentityService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	email, err := validateEmail(email)
	if err != nil {
		return nil, err
	}
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *IdentityService) invalidateUser(ctx context.Context, id string) {
	if err := s.userCache.Delete(ctx, userCacheKey(id)); err != nil {
		zap.L().Warn("[Identity] Failed to invalidate user cache",
			zap.String("user_id", id),
			zap.Error(err))
	}
}

func userCacheKey(id string) string {
	return "user:" + id
}

// provisionedName fits an identity provider name into the profile limits.
func provisionedName(name string) string {
	if utf8.RuneCountInString(name) <= UserNameMax {
		return name
	}
	return string([]rune(name)[:UserNameMax])
}

func validationResult(err error) string {
	switch {
	case err == nil:
		return "valid"
	case errors.Is(err, token.ErrExpiredToken):
		return "expired"
	case errors.Is(err, token.ErrInvalidToken):
		return "invalid"
	default:
		return "error"
	}
}
