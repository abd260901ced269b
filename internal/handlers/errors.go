package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"inventario/internal/logging"
	"inventario/internal/models"
	"inventario/internal/repositories"
	"inventario/internal/services"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service and repository errors onto HTTP responses.
// message describes the failed action, e.g. "Could not create product".
func respondError(c *fiber.Ctx, err error, message string) error {
	ctx := c.UserContext()

	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErr.Fields,
		})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	case errors.Is(err, repositories.ErrDuplicateKey),
		errors.Is(err, services.ErrHasDependents),
		errors.Is(err, services.ErrUserExists):
		logging.Info(ctx).Err(err).Msg(message)
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	case errors.Is(err, repositories.ErrConcurrentUpdate):
		logging.Warn(ctx).Err(err).Msg(message)
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	case errors.Is(err, models.ErrInvalidDiscount):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
			"error":   err.Error(),
		})
	}

	logging.Error(ctx).Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg(message)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

func invalidBody(c *fiber.Ctx, err error) error {
	logging.Debug(c.UserContext()).Err(err).Msg("invalid request body")
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

// paramID reads a positive integer path parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, c.Params(name))
	}
	return uint(id), nil
}

func invalidID(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid ID",
		"error":   err.Error(),
	})
}
