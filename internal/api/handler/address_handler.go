package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/storefront-api/internal/core/domain"
	"github.com/storefront/storefront-api/internal/core/ports"
)

type AddressHandler struct {
	addressService ports.AddressService
}

func NewAddressHandler(addressService ports.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// Add stores a new address for the caller.
//
// @Summary      Add address
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ports.AddressInput  true  "Address"
// @Success      201   {object}  successResponse{data=domain.Address}
// @Failure      400   {object}  api.errorResponse
// @Failure      404   {object}  api.errorResponse
// @Router       /users/me/addresses [post]
func (h *AddressHandler) Add(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var in ports.AddressInput
	if err := bind(c, &in); err != nil {
		return err
	}

	addr, err := h.addressService.Add(c.Request().Context(), p.Claims, in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, domain.CodeAddressAdded, addr)
}

// List returns the caller's addresses.
//
// @Summary      List addresses
// @Tags         addresses
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse{data=[]domain.Address}
// @Failure      404  {object}  api.errorResponse
// @Router       /users/me/addresses [get]
func (h *AddressHandler) List(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	list, err := h.addressService.List(c.Request().Context(), p.Claims)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, domain.CodeAddressesFetched, list)
}

// Delete removes one of the caller's addresses.
//
// @Summary      Delete address
// @Tags         addresses
// @Produce      json
// @Security     BearerAuth
// @Param        addressId  path      int  true  "Address ID"
// @Success      200        {object}  successResponse
// @Failure      404        {object}  api.errorResponse
// @Router       /users/me/addresses/{addressId} [delete]
func (h *AddressHandler) Delete(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.addressService.Delete(c.Request().Context(), p.Claims, c.Param("addressId")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, domain.CodeAddressDeleted, nil)
}
