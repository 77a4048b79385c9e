package handlers

import (
	"strconv"

	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for carts.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes registers the cart routes. All of them need a caller.
func (h *CartHandler) RegisterRoutes(router fiber.Router, guards Guards) {
	router.Post("/carts/products/:productId/quantity/:quantity", guards.Auth, h.HandleAddProduct)
	router.Get("/carts", guards.Auth, guards.Admin, h.HandleListCarts)
	router.Get("/carts/users/cart", guards.Auth, h.HandleGetCart)
	router.Put("/cart/products/:productId/quantity/:operation", guards.Auth, h.HandleUpdateQuantity)
	router.Delete("/carts/:cartId/product/:productId", guards.Auth, h.HandleDeleteProduct)
}

func (h *CartHandler) HandleAddProduct(c *fiber.Ctx) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	productID, err := paramID(c, "productId")
	if err != nil {
		return err
	}
	quantity, err := strconv.Atoi(c.Params("quantity"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid quantity")
	}
	cart, err := h.service.AddProductToCart(c.UserContext(), principal.Email, productID, quantity)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(cart)
}

func (h *CartHandler) HandleListCarts(c *fiber.Ctx) error {
	carts, err := h.service.ListCarts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(carts)
}

func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	cart, err := h.service.GetCart(c.UserContext(), principal.Email)
	if err != nil {
		return err
	}
	return c.JSON(cart)
}

// HandleUpdateQuantity adds one unit, or removes one when operation is "delete".
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	productID, err := paramID(c, "productId")
	if err != nil {
		return err
	}
	delta := 1
	if c.Params("operation") == "delete" {
		delta = -1
	}
	cart, err := h.service.UpdateProductQuantity(c.UserContext(), principal.Email, productID, delta)
	if err != nil {
		return err
	}
	return c.JSON(cart)
}

func (h *CartHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	cartID, err := paramID(c, "cartId")
	if err != nil {
		return err
	}
	productID, err := paramID(c, "productId")
	if err != nil {
		return err
	}
	msg, err := h.service.DeleteProductFromCart(c.UserContext(), principal, cartID, productID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": msg})
}
