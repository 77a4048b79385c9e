package handlers

import (
	"storefront/internal/dto"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, guards Guards) {
	router.Post("/order/users/payment/:paymentMethod", guards.Auth, h.HandlePlaceOrder)
	router.Get("/orders/users", guards.Auth, h.HandleGetUserOrders)
	router.Get("/orders/:orderId", guards.Auth, h.HandleGetOrder)
	router.Put("/admin/orders/:orderId/status", guards.Auth, guards.Admin, h.HandleUpdateOrderStatus)
}

// HandlePlaceOrder checks out the caller's cart.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.PaymentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	summary, err := h.service.PlaceOrder(c.UserContext(), dto.PlaceOrderRequest{
		Email:                  principal.Email,
		AddressID:              req.AddressID,
		PaymentMethod:          c.Params("paymentMethod"),
		GatewayName:            req.PGName,
		GatewayPaymentID:       req.PGPaymentID,
		GatewayStatus:          req.PGStatus,
		GatewayResponseMessage: req.PGResponseMessage,
	})
	if err != nil {
		return err
	}

	log.Info().Uint("order_id", summary.OrderID).Str("email", principal.Email).Msg("order placed")
	return c.Status(fiber.StatusCreated).JSON(summary)
}

// HandleGetUserOrders lists the caller's orders.
func (h *OrderHandler) HandleGetUserOrders(c *fiber.Ctx) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	orders, err := h.service.GetOrdersByEmail(c.UserContext(), principal.Email)
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

// HandleGetOrder retrieves one of the caller's orders.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "orderId")
	if err != nil {
		return err
	}
	order, err := h.service.GetOrder(c.UserContext(), principal.Email, id)
	if err != nil {
		return err
	}
	return c.JSON(order)
}

// HandleUpdateOrderStatus changes the status of any order.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "orderId")
	if err != nil {
		return err
	}
	var req dto.OrderStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	order, err := h.service.UpdateOrderStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return err
	}
	log.Info().Uint("order_id", id).Str("status", req.Status).Msg("order status updated")
	return c.JSON(order)
}
