package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userhub/account-system/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the guard middleware.
// Its absence means the route was wired without a gate; fail closed.
func ctxIdentity(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("identity").(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication identity")
	}
	return user, nil
}
