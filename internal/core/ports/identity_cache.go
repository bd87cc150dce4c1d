package ports

import (
	"context"

	"github.com/userhub/account-system/internal/core/domain"
)

// IdentityCache is a short-lived cache for token-resolved identities.
// A miss is reported as (nil, nil); cache failures are never fatal to the
// request that hits them.
type IdentityCache interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
	Invalidate(ctx context.Context, id int64) error
}
