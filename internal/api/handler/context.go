package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/storefront/storefront-api/internal/api/middleware"
	"github.com/storefront/storefront-api/internal/core/domain"
)

// caller returns the principal injected by the Auth middleware. A route
// registered without Auth has no principal and is refused.
func caller(c echo.Context) (middleware.Principal, error) {
	p, ok := middleware.PrincipalFrom(c.Request().Context())
	if !ok {
		return middleware.Principal{}, domain.ErrUnauthorizedAccess
	}
	return p, nil
}
