package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/storefront/storefront-api/internal/api/metrics"
	"github.com/storefront/storefront-api/internal/core/domain"
	"github.com/storefront/storefront-api/internal/core/ports"
)

// Auth verifies the bearer token and stores the resulting Principal in the
// request context. Failures are returned unchanged to the error handler.
func Auth(tokens ports.TokenAuthenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			claims, token, err := tokens.Authenticate(req.Context(), req.Header.Get(echo.HeaderAuthorization))
			if err != nil {
				countRejection(err)
				return err
			}

			c.SetRequest(req.WithContext(WithPrincipal(req.Context(), Principal{Claims: claims, Token: token})))
			return next(c)
		}
	}
}

func countRejection(err error) {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		metrics.TokenRejectionsTotal.WithLabelValues(string(appErr.Code)).Inc()
	}
}
