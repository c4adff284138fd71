package store

import (
	"context"
	"errors"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/models"

	"gorm.io/gorm"
)

// CreateUser inserts a user. The email is normalized before insert and a
// unique index violation is reported as ErrEmailConflict.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	user.Email = models.NormalizeEmail(user.Email)
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailConflict
		}
		return err
	}
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// GetUserByEmail looks a user up by email, ignoring case.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ?", models.NormalizeEmail(email)).
		First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// GetUsersByIDs returns the users found for ids, keyed by id.
func (s *Store) GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	result := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var users []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for i := range users {
		result[users[i].ID] = &users[i]
	}
	return result, nil
}

// UpdateUserName changes the display name of a user.
func (s *Store) UpdateUserName(ctx context.Context, id, name string) error {
	res := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// ReconcileExternalUser migrates a local account to the external provider in
// a single conditional UPDATE: provider, external id and password are changed
// together or not at all. Only rows still on the local provider are touched,
// so concurrent reconciliations of the same account converge on one result.
// The current state of the row is returned either way.
func (s *Store) ReconcileExternalUser(
	ctx context.Context,
	id, externalID string,
) (*models.User, error) {
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND provider = ?", id, models.ProviderLocal).
		Updates(map[string]any{
			"provider":      models.ProviderExternal,
			"external_id":   externalID,
			"password_hash": "",
		}).Error
	if err != nil {
		return nil, err
	}
	return s.GetUserByID(ctx, id)
}

// CountUsersByProvider returns the number of users per provider tag.
func (s *Store) CountUsersByProvider(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Provider string
		Count    int64
	}
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Select("provider, COUNT(*) AS count").
		Group("provider").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[string]int64{
		models.ProviderLocal:    0,
		models.ProviderExternal: 0,
	}
	for _, r := range rows {
		counts[r.Provider] = r.Count
	}
	return counts, nil
}
