package handlers

import (
	"log"

	"foodcourt/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles the admin user-management endpoints.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the user management routes. All of them are
// admin only.
func (h *UserHandler) RegisterRoutes(router fiber.Router, authRequired, adminRequired fiber.Handler) {
	userRoutes := router.Group("/admin/users", authRequired, adminRequired)
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Put("/:userId", h.HandleUpdateUser)
	userRoutes.Delete("/:userId", h.HandleDeleteUser)
}

// HandleGetUsers lists every registered account.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers()
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return fail(c, "Could not retrieve users", err)
	}
	return c.JSON(users)
}

// HandleUpdateUser applies profile or role changes to an account.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var req services.UserUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.service.UpdateUser(c.Params("userId"), req)
	if err != nil {
		log.Printf("Error updating user %s: %v", c.Params("userId"), err)
		return fail(c, "Could not update user", err)
	}
	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    user,
	})
}

// HandleDeleteUser removes an account.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	id := c.Params("userId")
	if err := h.service.DeleteUser(id); err != nil {
		log.Printf("Error deleting user %s: %v", id, err)
		return fail(c, "Could not delete user", err)
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
