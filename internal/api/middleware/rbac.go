package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/storefront/storefront-api/internal/core/domain"
	"github.com/storefront/storefront-api/internal/core/ports"
)

// RBAC enforces role-based access control. It must run after Auth.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c.Request().Context())
			if !ok {
				return domain.ErrUnauthorizedAccess
			}
			if _, ok := allowed[p.Claims.Role]; !ok {
				countRejection(domain.ErrAdminAccessRequired)
				return domain.ErrAdminAccessRequired
			}
			return next(c)
		}
	}
}

// RequireAdmin verifies the token and admits only admins and managers.
func RequireAdmin(tokens ports.TokenAuthenticator) echo.MiddlewareFunc {
	auth := Auth(tokens)
	staff := RBAC(domain.RoleAdmin, domain.RoleManager)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return auth(staff(next))
	}
}
