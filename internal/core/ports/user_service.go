package ports

import (
	"context"

	"github.com/userhub/account-system/internal/core/domain"
)

// UpdateProfileInput covers the mutable profile fields. Username and id are
// immutable once assigned and deliberately absent here.
type UpdateProfileInput struct {
	Email     string
	FirstName string
	LastName  string
	IsActive  bool
}

type UserService interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, filter ListFilter) ([]domain.User, error)
	UpdateProfile(ctx context.Context, id int64, input UpdateProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, id int64, currentPassword, newPassword string) error
	Delete(ctx context.Context, id int64) error
}
