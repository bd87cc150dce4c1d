package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/userhub/account-system/internal/core/domain"
	"github.com/userhub/account-system/internal/core/ports"
)

// AccessGuard resolves bearer tokens to identities and enforces the role
// gates layered on top of authentication.
type AccessGuard struct {
	tokens ports.TokenService
	repo   ports.UserRepository
	cache  ports.IdentityCache
	log    zerolog.Logger
}

func NewAccessGuard(tokens ports.TokenService, repo ports.UserRepository, cache ports.IdentityCache, log zerolog.Logger) *AccessGuard {
	return &AccessGuard{tokens: tokens, repo: repo, cache: cache, log: log}
}

// Authenticate validates the token and resolves its subject to a stored
// identity. An invalid token and a vanished subject both yield
// ErrInvalidCredentials.
func (g *AccessGuard) Authenticate(ctx context.Context, tokenString string) (*domain.User, error) {
	subjectID, err := g.tokens.Validate(tokenString)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if user := g.cached(ctx, subjectID); user != nil {
		return user, nil
	}

	user, err := g.repo.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := g.cache.Set(ctx, user); err != nil {
		g.log.Debug().Err(err).Int64("user_id", subjectID).Msg("identity cache set failed")
	}
	return user, nil
}

// RequireActive authenticates and additionally rejects inactive accounts.
func (g *AccessGuard) RequireActive(ctx context.Context, tokenString string) (*domain.User, error) {
	user, err := g.Authenticate(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveAccount
	}
	return user, nil
}

// RequireRole rejects unless the identity is active and its roles intersect
// allowed. The role check runs only after identity resolution succeeds.
func (g *AccessGuard) RequireRole(ctx context.Context, tokenString string, allowed domain.RoleSet) (*domain.User, error) {
	user, err := g.RequireActive(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if !user.Roles.Intersects(allowed) {
		g.log.Debug().
			Strs("roles", user.Roles.Values()).
			Strs("allowed", allowed.Values()).
			Msg("role not permitted")
		return nil, domain.ErrRoleNotPermitted
	}
	return user, nil
}

// RequireSuperuser is kept as a gate of its own for compatibility with the
// historical behavior: authentication plus an admin-role check, without the
// active-account requirement.
func (g *AccessGuard) RequireSuperuser(ctx context.Context, tokenString string) (*domain.User, error) {
	user, err := g.Authenticate(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if !user.HasRole(domain.RoleSuperuser) {
		return nil, domain.ErrInsufficientPrivileges
	}
	return user, nil
}

// cached returns the identity from the cache, or nil on miss or cache
// failure. Cache errors are never fatal to the request.
func (g *AccessGuard) cached(ctx context.Context, id int64) *domain.User {
	user, err := g.cache.Get(ctx, id)
	if err != nil {
		g.log.Debug().Err(err).Int64("user_id", id).Msg("identity cache get failed")
		return nil
	}
	return user
}
