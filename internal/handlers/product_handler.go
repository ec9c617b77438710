package handlers

import (
	"log"

	"foodcourt/internal/middleware"
	"foodcourt/internal/models"
	"foodcourt/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers public catalog routes and the admin management
// routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, authRequired, adminRequired fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)

	adminRoutes := router.Group("/admin/products", authRequired, adminRequired)
	adminRoutes.Get("/", h.HandleGetAllProducts)
	adminRoutes.Post("/", h.HandleCreateProduct)
	adminRoutes.Put("/:id", h.HandleUpdateProduct)
	adminRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListProducts returns the available products, optionally filtered by
// menu category via ?category=.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.Query("category"))
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return fail(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return fail(c, "Could not retrieve product", err)
	}
	return c.JSON(product)
}

// HandleGetAllProducts returns every product, including unavailable ones.
func (h *ProductHandler) HandleGetAllProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return fail(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleCreateProduct creates a new product owned by the acting admin.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(product); err != nil {
		return validationFailed(c, err)
	}

	product.CreatedBy = middleware.UserID(c)
	if err := h.service.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return fail(c, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product added successfully",
		"product": product,
	})
}

// HandleUpdateProduct updates an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	product.ID = c.Params("id")
	if err := h.validate.Struct(product); err != nil {
		return validationFailed(c, err)
	}

	if err := h.service.UpdateProduct(&product); err != nil {
		log.Printf("Error updating product %s: %v", product.ID, err)
		return fail(c, "Could not update product", err)
	}
	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"product": product,
	})
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteProduct(id); err != nil {
		log.Printf("Error deleting product %s: %v", id, err)
		return fail(c, "Could not delete product", err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}
