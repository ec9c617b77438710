package handlers

import (
	"errors"

	"foodcourt/internal/services"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps service-layer sentinel errors to HTTP statuses.
// Anything unrecognized is a generic server error.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrBadSignature):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrProviderUnavailable):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

// fail renders a service error as the standard JSON envelope. Server errors
// keep their detail out of the response body.
func fail(c *fiber.Ctx, message string, err error) error {
	status := statusForError(err)
	body := fiber.Map{"message": message}
	if status < fiber.StatusInternalServerError {
		body["error"] = err.Error()
	}
	return c.Status(status).JSON(body)
}
