package services

import (
	"errors"
	"fmt"
)

var (
	ErrEmailInUse      = errors.New("email already registered")
	ErrNotFound        = errors.New("resource not found")
	ErrForbidden       = errors.New("access denied")
	ErrInvalidAssignee = errors.New("assignee is not a member of the project")

	// ErrValidation is wrapped with the offending field message.
	ErrValidation = errors.New("validation failed")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
