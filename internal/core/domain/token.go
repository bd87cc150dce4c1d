package domain

import "time"

// TokenTypeBearer is the only token type issued by the service.
const TokenTypeBearer = "Bearer"

// Token is the credential pair returned by a successful login. It is
// self-contained: no server-side session state backs it, and it is
// invalidated only by expiry.
type Token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in"`
	ExpiresAt    time.Time `json:"expires_at"`
	IssuedAt     time.Time `json:"issued_at"`
	UserID       int64     `json:"user_id"`
}
