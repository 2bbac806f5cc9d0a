package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/storefront/storefront-api/internal/core/domain"
)

// successResponse is the envelope for every 2xx answer.
type successResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Code    domain.SuccessCode `json:"code"`
	Data    any                `json:"data,omitempty"`
}

func respond(c echo.Context, status int, code domain.SuccessCode, data any) error {
	return c.JSON(status, successResponse{
		Success: true,
		Message: domain.SuccessMessage(code),
		Code:    code,
		Data:    data,
	})
}

// bind decodes the request body into dst. Decoding failures are reported as
// VALIDATION_ERROR so they share the error envelope.
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return domain.NewValidationError("Request body must be a valid JSON object.")
	}
	return nil
}
