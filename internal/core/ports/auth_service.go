package ports

import (
	"context"

	"github.com/userhub/account-system/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration. The plaintext
// password is hashed before anything is persisted.
type RegisterInput struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
	IsActive  bool
	Roles     domain.RoleSet
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.Token, error)
}
