package middleware

import (
	"errors"

	"inventario/internal/logging"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders errors that escaped the handlers, and Fiber's own
// routing errors, as {"error": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	if code >= fiber.StatusInternalServerError {
		logging.Error(c.UserContext()).Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("unhandled error")
	}

	response := fiber.Map{
		"error": err.Error(),
	}
	if id := c.GetRespHeader(fiber.HeaderXRequestID); id != "" {
		response["request_id"] = id
	}

	return c.Status(code).JSON(response)
}

// RequestContext copies the request id assigned by the requestid middleware
// into the user context so that service and repository logs carry it.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id := c.GetRespHeader(fiber.HeaderXRequestID); id != "" {
			c.SetUserContext(logging.ContextWithRequestID(c.UserContext(), id))
		}
		return c.Next()
	}
}
