package ports

import (
	"context"
	"time"

	"github.com/userhub/account-system/internal/core/domain"
)

// ListFilter narrows and pages a user listing. Page starts at 1.
type ListFilter struct {
	Page     int
	Limit    int
	Username string
	Email    string
}

// UserRepository defines the persistence interface for user identities.
// Implementations scope each call to a short-lived connection or
// transaction and release it on every exit path.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, filter ListFilter) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	RecordLogin(ctx context.Context, id int64, at time.Time) error
	Delete(ctx context.Context, id int64) error
}
