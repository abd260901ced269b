package handlers

import (
	"context"
	"time"

	"inventario/internal/logging"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether a backing store is reachable.
type Pinger func(ctx context.Context) error

// HealthHandler answers liveness checks.
type HealthHandler struct {
	ping Pinger
}

// NewHealthHandler creates a HealthHandler that checks the store with ping.
func NewHealthHandler(ping Pinger) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// RegisterRoutes mounts GET /health.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

// HandleHealth pings the database with a short deadline.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		logging.Error(ctx).Err(err).Msg("health check failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "unhealthy",
			"database": "unreachable",
			"error":    err.Error(),
			"time":     time.Now().Format(time.RFC3339),
		})
	}

	return c.JSON(fiber.Map{
		"status":   "healthy",
		"database": "connected",
		"time":     time.Now().Format(time.RFC3339),
	})
}
