package service

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/userhub/account-system/internal/core/domain"
)

// TokenService issues and validates HMAC-signed JWTs. The signing secret is
// loaded once at startup and never mutated.
type TokenService struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
}

// NewTokenService builds a TokenService for the given symmetric algorithm
// identifier (HS256, HS384 or HS512; anything else falls back to HS256).
func NewTokenService(secret, algorithm string, ttl time.Duration) *TokenService {
	method := jwt.SigningMethodHS256
	switch algorithm {
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &TokenService{secret: []byte(secret), method: method, ttl: ttl}
}

// Issue creates the access/refresh pair for the subject. Claims carry the
// subject id as a decimal string plus iat and exp.
func (s *TokenService) Issue(subjectID int64, issuedAt time.Time) (*domain.Token, error) {
	expiresAt := issuedAt.Add(s.ttl)

	access, err := s.sign(subjectID, issuedAt, expiresAt)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(subjectID, issuedAt, expiresAt)
	if err != nil {
		return nil, err
	}

	return &domain.Token{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    domain.TokenTypeBearer,
		ExpiresIn:    int64(s.ttl.Seconds()),
		ExpiresAt:    expiresAt,
		IssuedAt:     issuedAt,
		UserID:       subjectID,
	}, nil
}

// Validate resolves a signed token back to its subject id. All rejection
// reasons collapse to ErrInvalidCredentials so callers cannot tell a forged
// token from an expired or malformed one.
func (s *TokenService) Validate(tokenString string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != s.method.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, domain.ErrInvalidCredentials
	}

	if claims.Subject == "" {
		return 0, domain.ErrInvalidCredentials
	}
	subjectID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidCredentials
	}
	return subjectID, nil
}

func (s *TokenService) sign(subjectID int64, issuedAt, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(subjectID, 10),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}
