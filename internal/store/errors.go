package store

import "errors"

var (
	// ErrEmailConflict is returned when the unique email index rejects an insert
	ErrEmailConflict = errors.New("email already exists")

	// ErrRecordNotFound wraps GORM's not found error for consistency
	ErrRecordNotFound = errors.New("record not found")
)
