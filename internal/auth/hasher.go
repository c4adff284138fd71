package auth

import (
	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"

	"golang.org/x/crypto/bcrypt"
)

var _ core.PasswordHasher = BcryptHasher{}

// BcryptHasher hashes passwords with bcrypt. A zero Cost means bcrypt.DefaultCost.
type BcryptHasher struct {
	Cost int
}

func (b BcryptHasher) Hash(plaintext string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b BcryptHasher) Compare(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
