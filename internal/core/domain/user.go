package domain

import (
	"errors"
	"time"
)

// RoleSuperuser is the role required by the superuser gate.
const RoleSuperuser = "admin"

var ErrInvalidCredentials = errors.New("could not validate credentials")
var ErrInactiveAccount = errors.New("inactive user")
var ErrRoleNotPermitted = errors.New("role not permitted")
var ErrInsufficientPrivileges = errors.New("insufficient privileges")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")

// User models a registered account. ID and Username are immutable once
// assigned; PasswordHash is set only through the password hasher and is
// never serialized outward.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	IsActive     bool       `json:"is_active"`
	Roles        RoleSet    `json:"roles"`
	DateJoined   time.Time  `json:"date_joined"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	PasswordHash string     `json:"-"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	return u.Roles.Has(role)
}
