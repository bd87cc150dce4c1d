package ports

import (
	"time"

	"github.com/userhub/account-system/internal/core/domain"
)

// TokenService signs and validates the bearer tokens handed out at login.
// Both operations are pure: no I/O beyond the in-memory signing secret.
type TokenService interface {
	// Issue creates an access/refresh token pair for the subject. issuedAt
	// is supplied by the caller so the token reflects the persisted
	// last-login instant.
	Issue(subjectID int64, issuedAt time.Time) (*domain.Token, error)

	// Validate resolves a token string back to its subject id. Every
	// failure mode (bad signature, wrong method, malformed claims, missing
	// subject, expiry) collapses to domain.ErrInvalidCredentials.
	Validate(tokenString string) (int64, error)
}
