package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/pverlaine/convene/internal/services"
	"github.com/pverlaine/convene/internal/store"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serviceError maps well-known service and store errors onto HTTP statuses;
// anything else is a 500 with a generic body.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, services.ErrEmptySelection),
		errors.Is(err, services.ErrInvalidMode),
		errors.Is(err, services.ErrUnknownOption),
		errors.Is(err, services.ErrInvalidActivity),
		errors.Is(err, services.ErrInvalidName),
		errors.Is(err, services.ErrWeakPassword):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNameTaken):
		return apiError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return apiError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrNotPermitted):
		return apiError(c, fiber.StatusForbidden, err.Error())
	}
	return apiError(c, fiber.StatusInternalServerError, "internal error")
}
