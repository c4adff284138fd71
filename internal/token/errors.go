package token

import "errors"

var (
	// ErrTokenGeneration indicates token generation failed
	ErrTokenGeneration = errors.New("failed to generate token")

	// ErrInvalidToken covers malformed tokens, bad signatures and failed
	// issuer, audience or algorithm checks.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("token expired")

	// ErrKeyUnavailable indicates the issuer's signing keys could not be retrieved
	ErrKeyUnavailable = errors.New("signing key unavailable")

	// ErrMissingEmailClaim indicates a verified external token carries no usable email
	ErrMissingEmailClaim = errors.New("token has no email claim")
)
