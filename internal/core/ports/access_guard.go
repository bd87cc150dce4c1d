package ports

import (
	"context"

	"github.com/userhub/account-system/internal/core/domain"
)

// AccessGuard resolves bearer tokens to identities and layers role gates on
// top. Authenticate never distinguishes "token invalid" from "token valid
// but user gone": both surface as domain.ErrInvalidCredentials.
type AccessGuard interface {
	Authenticate(ctx context.Context, tokenString string) (*domain.User, error)
	RequireActive(ctx context.Context, tokenString string) (*domain.User, error)
	RequireRole(ctx context.Context, tokenString string, allowed domain.RoleSet) (*domain.User, error)
	RequireSuperuser(ctx context.Context, tokenString string) (*domain.User, error)
}
