package service

import (
	"context"
	"errors"
	"time"

	"github.com/userhub/account-system/internal/core/domain"
	"github.com/userhub/account-system/internal/core/ports"
)

// AuthService implements registration and the login state machine.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens}
}

// Register hashes the password and persists a new user. A taken username
// surfaces as ErrUserExists and leaves the original record unchanged.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		IsActive:     input.IsActive,
		Roles:        input.Roles,
		DateJoined:   time.Now().UTC(),
		PasswordHash: hash,
	}
	if user.Roles == nil {
		user.Roles = domain.NewRoleSet()
	}

	return s.repo.Create(ctx, user)
}

// Login looks up the user by exact username, verifies the password and
// issues a token pair. A missing user and a wrong password yield the same
// ErrInvalidCredentials so usernames cannot be enumerated. The returned
// issued_at is the persisted last-login instant.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Token, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// bcrypt runs outside any store transaction.
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	loginAt := time.Now().UTC().Truncate(time.Second)
	if err := s.repo.RecordLogin(ctx, user.ID, loginAt); err != nil {
		return nil, err
	}

	return s.tokens.Issue(user.ID, loginAt)
}
