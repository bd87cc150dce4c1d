package ports

// PasswordHasher hashes and verifies plaintext passwords. Hashing is
// CPU-bound; callers must not hold a store transaction open across it.
type PasswordHasher interface {
	// Hash produces a salted adaptive hash. The salt is random per call.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches the stored hash. It returns
	// false for malformed hashes instead of failing.
	Verify(plaintext, hash string) bool
}
