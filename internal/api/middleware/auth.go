package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/userhub/account-system/internal/api/metrics"
	"github.com/userhub/account-system/internal/core/domain"
	"github.com/userhub/account-system/internal/core/ports"
)

// Auth resolves the bearer token through the access guard and injects the
// identity into the request context under the "identity" key.
func Auth(guard ports.AccessGuard) echo.MiddlewareFunc {
	return gate(func(c echo.Context, guard ports.AccessGuard, token string) (*domain.User, error) {
		return guard.Authenticate(c.Request().Context(), token)
	}, guard)
}

// Superuser admits only identities carrying the admin role. It is a gate of
// its own rather than an RBAC special case, for compatibility.
func Superuser(guard ports.AccessGuard) echo.MiddlewareFunc {
	return gate(func(c echo.Context, guard ports.AccessGuard, token string) (*domain.User, error) {
		return guard.RequireSuperuser(c.Request().Context(), token)
	}, guard)
}

func gate(resolve func(echo.Context, ports.AccessGuard, string) (*domain.User, error), guard ports.AccessGuard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				metrics.GuardRejectionsTotal.WithLabelValues("invalid_credentials").Inc()
				return err
			}

			user, err := resolve(c, guard, token)
			if err != nil {
				metrics.GuardRejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()
				return err
			}

			c.Set("identity", user)
			return next(c)
		}
	}
}

// bearerToken extracts the credential from the Authorization header.
func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInactiveAccount):
		return "inactive"
	case errors.Is(err, domain.ErrRoleNotPermitted):
		return "role_not_permitted"
	case errors.Is(err, domain.ErrInsufficientPrivileges):
		return "insufficient_privileges"
	default:
		return "invalid_credentials"
	}
}
