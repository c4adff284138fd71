package core

// PasswordHasher is the one-way password hashing primitive.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Compare reports whether plaintext matches digest.
	Compare(plaintext, digest string) bool
}
