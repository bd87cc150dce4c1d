package service

import "golang.org/x/crypto/bcrypt"

// BcryptHasher implements password hashing with bcrypt. The cost is fixed;
// bcrypt generates a fresh random salt on every Hash call.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports non-match for malformed hashes rather than failing; the
// plaintext and hash are never included in any error or log.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
