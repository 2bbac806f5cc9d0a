package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storefront/storefront-api/internal/api/metrics"
	"github.com/storefront/storefront-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Code    domain.Code `json:"code"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders *domain.AppError values exactly as built by the guards.
//   - Maps Echo's own errors (unknown route, bad method, oversized body) to codes.
//   - Logs unexpected errors internally and answers with SERVER_ERROR.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		appErr := resolveError(err, log, c)
		metrics.ErrorResponsesTotal.WithLabelValues(string(appErr.Code)).Inc()

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(appErr.Status)
			return
		}
		_ = c.JSON(appErr.Status, errorResponse{
			Success: false,
			Message: appErr.Message,
			Code:    appErr.Code,
		})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) *domain.AppError {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	// Echo's own errors (router 404/405, bind failures, body limit).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch {
		case he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed:
			e := domain.NewError(domain.CodeResourceNotFound)
			e.Status = he.Code
			return e
		case he.Code >= http.StatusBadRequest && he.Code < http.StatusInternalServerError:
			e := domain.NewValidationError("")
			e.Status = he.Code
			return e
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return domain.ErrServer
}
