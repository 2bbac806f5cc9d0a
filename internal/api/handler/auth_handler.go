package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/storefront-api/internal/api/metrics"
	"github.com/storefront/storefront-api/internal/core/domain"
	"github.com/storefront/storefront-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new customer account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      ports.RegisterInput  true  "User registration details"
// @Success      201   {object}  successResponse{data=ports.RegisterResult}
// @Failure      400   {object}  api.errorResponse
// @Failure      401   {object}  api.errorResponse
// @Failure      409   {object}  api.errorResponse
// @Failure      500   {object}  api.errorResponse
// @Router       /users/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var in ports.RegisterInput
	if err := bind(c, &in); err != nil {
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), in)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return respond(c, http.StatusCreated, domain.CodeUserRegistered, res)
}

// Login authenticates a user and returns a signed token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      ports.LoginInput  true  "Login credentials"
// @Success      200   {object}  successResponse{data=ports.LoginResult}
// @Failure      400   {object}  api.errorResponse
// @Failure      401   {object}  api.errorResponse
// @Failure      500   {object}  api.errorResponse
// @Router       /users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var in ports.LoginInput
	if err := bind(c, &in); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), in)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return respond(c, http.StatusOK, domain.CodeLoginSuccess, res)
}

// Logout revokes the token used for this request.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Failure      401  {object}  api.errorResponse
// @Failure      403  {object}  api.errorResponse
// @Router       /users/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), p.Token, p.Claims); err != nil {
		return err
	}
	return respond(c, http.StatusOK, domain.CodeLogoutSuccess, nil)
}

func loginResult(err error) string {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return string(appErr.Code)
	}
	return string(domain.CodeServerError)
}
