package handlers

import (
	"log"

	"foodcourt/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles payment verification and provider webhooks.
type PaymentHandler struct {
	service *services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service: service,
	}
}

// RegisterRoutes registers the payment routes. The webhook endpoint is
// unauthenticated; it is protected by the provider's payload signature
// instead of a session.
func (h *PaymentHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	paymentRoutes := router.Group("/payments")
	paymentRoutes.Get("/verify", authRequired, h.HandleVerifyPayment)
	paymentRoutes.Post("/webhook", h.HandleWebhook)
}

// HandleVerifyPayment polls the provider for an intent's state and
// reconciles the matching order.
func (h *PaymentHandler) HandleVerifyPayment(c *fiber.Ctx) error {
	intentID := c.Query("payment_intent_id")
	result, err := h.service.VerifyPayment(c.Context(), intentID)
	if err != nil {
		log.Printf("Payment verification error for intent %s: %v", intentID, err)
		return fail(c, "Error verifying payment", err)
	}
	return c.JSON(fiber.Map{
		"message":        "Payment verification successful",
		"payment_status": result.PaymentStatus,
		"order":          result.Order,
	})
}

// HandleWebhook receives signed provider events. A bad signature is
// rejected; recognized events reconcile order payment state, everything
// else is acknowledged.
func (h *PaymentHandler) HandleWebhook(c *fiber.Ctx) error {
	if err := h.service.HandleWebhook(c.Body(), c.Get("Stripe-Signature")); err != nil {
		log.Printf("Webhook processing error: %v", err)
		return fail(c, "Webhook error", err)
	}
	return c.JSON(fiber.Map{"received": true})
}
