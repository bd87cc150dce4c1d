package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/userhub/account-system/internal/core/domain"
	"github.com/userhub/account-system/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// UserService implements CRUD on user records. Mutations invalidate the
// identity cache so the access guard never serves stale state.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	cache  ports.IdentityCache
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, cache ports.IdentityCache, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, cache: cache, log: log}
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns a page of users. Page and limit are clamped to sane bounds;
// username and email filters match substrings case-insensitively.
func (s *UserService) List(ctx context.Context, filter ports.ListFilter) ([]domain.User, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	return s.repo.List(ctx, filter)
}

// UpdateProfile replaces the mutable profile fields of an existing user.
// Username and id never change.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, input ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Email = input.Email
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.IsActive = input.IsActive

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return updated, nil
}

// ChangePassword verifies the current password before writing the new hash.
// The write is a single atomic statement; no partial credential state is
// ever persisted.
func (s *UserService) ChangePassword(ctx context.Context, id int64, currentPassword, newPassword string) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(currentPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	// hashing happens before any store write, outside any transaction
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *UserService) invalidate(ctx context.Context, id int64) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Debug().Err(err).Int64("user_id", id).Msg("identity cache invalidate failed")
	}
}
