package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/storefront-api/internal/core/domain"
	"github.com/storefront/storefront-api/internal/core/ports"
)

// UserHandler serves profile reads and writes, both for the caller's own
// account and, behind RequireAdmin, for any account by id.
type UserHandler struct {
	authService ports.AuthService
}

func NewUserHandler(authService ports.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// GetMe returns the caller's profile.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse{data=domain.User}
// @Failure      401  {object}  api.errorResponse
// @Failure      404  {object}  api.errorResponse
// @Router       /users/me [get]
func (h *UserHandler) GetMe(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	return h.get(c, ports.SelfTarget(p.Claims))
}

// UpdateMe applies a partial update to the caller's profile.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ports.UpdateProfileInput  true  "Fields to change"
// @Success      200   {object}  successResponse{data=domain.User}
// @Failure      400   {object}  api.errorResponse
// @Failure      404   {object}  api.errorResponse
// @Failure      409   {object}  api.errorResponse
// @Router       /users/me [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	return h.update(c, ports.SelfTarget(p.Claims))
}

// DeleteMe removes the caller's account.
//
// @Summary      Delete own account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse{data=domain.User}
// @Failure      404  {object}  api.errorResponse
// @Router       /users/me [delete]
func (h *UserHandler) DeleteMe(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	return h.delete(c, ports.SelfTarget(p.Claims))
}

// List returns every account.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse{data=[]domain.User}
// @Failure      403  {object}  api.errorResponse
// @Failure      404  {object}  api.errorResponse
// @Router       /users/all [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.authService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, domain.CodeProfilesFetched, users)
}

// GetByID returns any account.
//
// @Summary      Get user by id
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      int  true  "User ID"
// @Success      200     {object}  successResponse{data=domain.User}
// @Failure      400     {object}  api.errorResponse
// @Failure      403     {object}  api.errorResponse
// @Failure      404     {object}  api.errorResponse
// @Router       /users/{userId} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	return h.get(c, ports.ParamTarget(c.Param("userId"), p.Claims))
}

// UpdateByID applies a partial update, including role, to any account.
//
// @Summary      Update user by id
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      int                       true  "User ID"
// @Param        body    body      ports.UpdateProfileInput  true  "Fields to change"
// @Success      200     {object}  successResponse{data=domain.User}
// @Failure      400     {object}  api.errorResponse
// @Failure      403     {object}  api.errorResponse
// @Failure      404     {object}  api.errorResponse
// @Failure      409     {object}  api.errorResponse
// @Router       /users/{userId} [put]
func (h *UserHandler) UpdateByID(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	return h.update(c, ports.ParamTarget(c.Param("userId"), p.Claims))
}

// DeleteByID removes any account.
//
// @Summary      Delete user by id
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      int  true  "User ID"
// @Success      200     {object}  successResponse{data=domain.User}
// @Failure      400     {object}  api.errorResponse
// @Failure      403     {object}  api.errorResponse
// @Failure      404     {object}  api.errorResponse
// @Router       /users/{userId} [delete]
func (h *UserHandler) DeleteByID(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	return h.delete(c, ports.ParamTarget(c.Param("userId"), p.Claims))
}

func (h *UserHandler) get(c echo.Context, target ports.Target) error {
	user, err := h.authService.GetProfile(c.Request().Context(), target)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, domain.CodeProfileFetched, user)
}

func (h *UserHandler) update(c echo.Context, target ports.Target) error {
	var in ports.UpdateProfileInput
	if err := bind(c, &in); err != nil {
		return err
	}
	user, err := h.authService.UpdateProfile(c.Request().Context(), target, in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, domain.CodeUserUpdated, user)
}

func (h *UserHandler) delete(c echo.Context, target ports.Target) error {
	user, err := h.authService.DeleteProfile(c.Request().Context(), target)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, domain.CodeUserDeleted, user)
}
