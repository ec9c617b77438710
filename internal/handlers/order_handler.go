package handlers

import (
	"log"

	"foodcourt/internal/middleware"
	"foodcourt/internal/models"
	"foodcourt/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for checkout and orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, authRequired, adminRequired fiber.Handler) {
	orderRoutes := router.Group("/orders", authRequired)
	orderRoutes.Post("/checkout", h.HandleCheckout)
	orderRoutes.Get("/", h.HandleGetMyOrders)
	orderRoutes.Get("/payment/:intentId", h.HandleGetOrderByPaymentIntent)
	orderRoutes.Get("/tracking/:trackingId", adminRequired, h.HandleGetOrderByTrackingID)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)

	adminRoutes := router.Group("/admin/orders", authRequired, adminRequired)
	adminRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// HandleCheckout converts the user's cart into an order.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	var req services.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	result, err := h.service.Checkout(c.Context(), middleware.UserID(c), req)
	if err != nil {
		log.Printf("Error during checkout for user %s: %v", middleware.UserID(c), err)
		return fail(c, "Checkout failed", err)
	}
	return c.JSON(fiber.Map{
		"message": "Checkout successful",
		"result":  result,
	})
}

// HandleGetMyOrders lists the authenticated user's orders.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetOrdersForUser(middleware.UserID(c))
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		return fail(c, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves one order; only its owner (or an admin) may
// read it.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrderForUser(c.Params("id"), middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		return fail(c, "Could not retrieve order", err)
	}
	return c.JSON(order)
}

// HandleGetOrderByTrackingID retrieves an order by its tracking ID.
// Admin only.
func (h *OrderHandler) HandleGetOrderByTrackingID(c *fiber.Ctx) error {
	order, err := h.service.GetOrderByTrackingID(c.Params("trackingId"))
	if err != nil {
		return fail(c, "Could not retrieve order", err)
	}
	return c.JSON(order)
}

// HandleGetOrderByPaymentIntent retrieves the caller's order by its payment
// provider reference.
func (h *OrderHandler) HandleGetOrderByPaymentIntent(c *fiber.Ctx) error {
	order, err := h.service.GetOrderByPaymentIntentID(c.Params("intentId"), middleware.UserID(c))
	if err != nil {
		return fail(c, "Could not retrieve order", err)
	}
	return c.JSON(order)
}

// StatusUpdateRequest is the body for order status updates. At least one of
// the two fields must be present.
type StatusUpdateRequest struct {
	OrderStatus   models.OrderStatus   `json:"order_status"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
}

// HandleUpdateOrderStatus applies order and/or payment status changes to an
// order, addressed by internal ID or tracking ID. Admin only.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}

	order, err := h.service.UpdateStatus(c.Params("id"), req.OrderStatus, req.PaymentStatus)
	if err != nil {
		log.Printf("Error updating status for order %s: %v", c.Params("id"), err)
		return fail(c, "Could not update order status", err)
	}
	return c.JSON(fiber.Map{
		"message": "Order status updated successfully",
		"order":   order,
	})
}
