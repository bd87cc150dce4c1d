package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/userhub/account-system/internal/core/domain"
	"github.com/userhub/account-system/internal/core/ports"
)

// RBAC enforces role-based access control: the caller must be active and
// hold at least one of the allowed roles.
func RBAC(guard ports.AccessGuard, allowedRoles ...string) echo.MiddlewareFunc {
	allowed := domain.NewRoleSet(allowedRoles...)

	return gate(func(c echo.Context, guard ports.AccessGuard, token string) (*domain.User, error) {
		return guard.RequireRole(c.Request().Context(), token, allowed)
	}, guard)
}
