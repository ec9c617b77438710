package handlers

import (
	"log"

	"foodcourt/internal/middleware"
	"foodcourt/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the shopping cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes, all of which require a user
// session.
func (h *CartHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	cartRoutes := router.Group("/cart", authRequired)
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/add", h.HandleAddToCart)
	cartRoutes.Put("/update", h.HandleUpdateCartItem)
	cartRoutes.Delete("/remove/:productId", h.HandleRemoveFromCart)
}

// CartItemRequest is the body for add and update operations.
type CartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// HandleGetCart returns the user's cart, creating it on first access.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(middleware.UserID(c))
	if err != nil {
		log.Printf("Error fetching cart: %v", err)
		return fail(c, "Could not retrieve cart", err)
	}
	return c.JSON(cart)
}

// HandleAddToCart adds a product to the cart, incrementing quantity if it is
// already present.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	cart, err := h.service.AddItem(middleware.UserID(c), req.ProductID, req.Quantity)
	if err != nil {
		log.Printf("Error adding to cart: %v", err)
		return fail(c, "Could not add product to cart", err)
	}
	return c.JSON(fiber.Map{
		"message": "Product added to cart successfully",
		"cart":    cart,
	})
}

// HandleUpdateCartItem sets a line's quantity; zero or less removes it.
func (h *CartHandler) HandleUpdateCartItem(c *fiber.Ctx) error {
	var req CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	cart, err := h.service.UpdateItem(middleware.UserID(c), req.ProductID, req.Quantity)
	if err != nil {
		log.Printf("Error updating cart: %v", err)
		return fail(c, "Could not update cart", err)
	}
	return c.JSON(fiber.Map{
		"message": "Cart updated successfully",
		"cart":    cart,
	})
}

// HandleRemoveFromCart removes a product from the cart.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	cart, err := h.service.RemoveItem(middleware.UserID(c), c.Params("productId"))
	if err != nil {
		log.Printf("Error removing from cart: %v", err)
		return fail(c, "Could not remove item from cart", err)
	}
	return c.JSON(fiber.Map{
		"message": "Item removed from cart",
		"cart":    cart,
	})
}
