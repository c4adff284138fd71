package auth

import "errors"

// ErrInvalidCredentials is the only failure Verify reports for a bad login,
// whatever the cause.
var ErrInvalidCredentials = errors.New("invalid email or password")
