package main

import (
	"context"
	"encoding/json"
	"fmt"

	"inventario/internal/config"
	"inventario/internal/database"
	"inventario/internal/handlers"
	"inventario/internal/logging"
	"inventario/internal/middleware"
	"inventario/internal/repositories"
	"inventario/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"gorm.io/gorm"
)

// newApp wires repositories, services and handlers on top of an open
// database. publisher may be nil, in which case no events are sent.
func newApp(cfg *config.Config, db *gorm.DB, publisher services.EventPublisher) *fiber.App {
	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		// Tokens from a previous run stop validating after a restart.
		jwtSecret = uuid.NewString()
		logging.Logger().Warn().Msg("JWT_SECRET not set, using a random per-process secret")
	}

	// --- Repositories ---
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	supplierRepo := repositories.NewGORMSupplierRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	tx := repositories.NewGORMTransactor(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, jwtSecret, cfg.JWTTTL)
	categoryService := services.NewCategoryService(categoryRepo, productRepo, tx, publisher)
	supplierService := services.NewSupplierService(supplierRepo, productRepo, tx, publisher)
	productService := services.NewProductService(productRepo, categoryRepo, supplierRepo, tx, publisher)

	app := fiber.New(fiber.Config{
		AppName:      "inventario",
		ErrorHandler: middleware.ErrorHandler,
		UnescapePath: true,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestContext())
	if cfg.IsDevelopment() {
		app.Use(logger.New())
	}

	handlers.NewHealthHandler(func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}).RegisterRoutes(app)

	// --- API Routes ---
	api := app.Group("/api")
	handlers.NewAuthHandler(authService).RegisterRoutes(api)

	// Guarded per resource, so unknown paths under /api stay 404.
	writeGuard := middleware.WriteGuard(authService, cfg.AuthRequired)
	handlers.NewCategoryHandler(categoryService).RegisterRoutes(api, writeGuard)
	handlers.NewSupplierHandler(supplierService).RegisterRoutes(api, writeGuard)
	handlers.NewProductHandler(productService).RegisterRoutes(api, writeGuard)

	return app
}

// handleInventoryEvent logs events read back from the queue. A body that is
// not an inventory event is rejected.
func handleInventoryEvent(msg amqp.Delivery) error {
	var event services.InventoryEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		logging.Logger().Warn().Err(err).Uint64("delivery_tag", msg.DeliveryTag).Msg("discarding malformed inventory event")
		return fmt.Errorf("decode inventory event: %w", err)
	}
	logging.Logger().Info().
		Str("event_id", event.ID).
		Str("type", event.Type).
		Uint("entity_id", event.EntityID).
		Time("occurred_at", event.OccurredAt).
		Msg("inventory event received")
	return nil
}
