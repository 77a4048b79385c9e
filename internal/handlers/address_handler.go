package handlers

import (
	"storefront/internal/dto"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AddressHandler handles HTTP requests for addresses.
type AddressHandler struct {
	service *services.AddressService
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(service *services.AddressService) *AddressHandler {
	return &AddressHandler{service: service}
}

// RegisterRoutes registers the address routes.
func (h *AddressHandler) RegisterRoutes(router fiber.Router, guards Guards) {
	router.Post("/addresses", guards.Auth, h.HandleCreate)
	router.Get("/addresses", guards.Auth, guards.Admin, h.HandleListAll)
	router.Get("/addresses/:addressId", guards.Auth, h.HandleGet)
	router.Get("/users/addresses", guards.Auth, h.HandleListMine)
	router.Put("/addresses/:addressId", guards.Auth, h.HandleUpdate)
	router.Delete("/addresses/:addressId", guards.Auth, h.HandleDelete)
}

func (h *AddressHandler) HandleCreate(c *fiber.Ctx) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.AddressRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	address, err := h.service.CreateAddress(principal, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(address)
}

func (h *AddressHandler) HandleListAll(c *fiber.Ctx) error {
	addresses, err := h.service.GetAddresses()
	if err != nil {
		return err
	}
	return c.JSON(addresses)
}

func (h *AddressHandler) HandleListMine(c *fiber.Ctx) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	addresses, err := h.service.GetUserAddresses(principal)
	if err != nil {
		return err
	}
	return c.JSON(addresses)
}

func (h *AddressHandler) HandleGet(c *fiber.Ctx) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "addressId")
	if err != nil {
		return err
	}
	address, err := h.service.GetAddress(principal, id)
	if err != nil {
		return err
	}
	return c.JSON(address)
}

func (h *AddressHandler) HandleUpdate(c *fiber.Ctx) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "addressId")
	if err != nil {
		return err
	}
	var req dto.AddressRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	address, err := h.service.UpdateAddress(principal, id, req)
	if err != nil {
		return err
	}
	return c.JSON(address)
}

func (h *AddressHandler) HandleDelete(c *fiber.Ctx) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "addressId")
	if err != nil {
		return err
	}
	if err := h.service.DeleteAddress(principal, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Address deleted successfully"})
}
