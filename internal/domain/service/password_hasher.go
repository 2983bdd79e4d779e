// Package service declares the capabilities the use cases depend on but do not implement:
// password hashing, session tokens, token revocation and chat completion.
package service

// PasswordHasher turns credentials into stored hashes and verifies login attempts against them.
type PasswordHasher interface {
	// Hash returns a salted hash of password. Hashes of the same password differ.
	Hash(password string) (string, error)

	// Check reports whether password matches hash. A malformed hash never matches.
	Check(password, hash string) bool
}
