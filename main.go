package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventario/internal/config"
	"inventario/internal/database"
	"inventario/internal/logging"
	"inventario/internal/services"
	"inventario/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logging.Logger().Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(cfg.IsDevelopment())
	log := logging.Logger()

	// --- Database ---
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to open database")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	err = database.Seed(seedCtx, db)
	cancelSeed()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}

	// --- RabbitMQ (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQEnabled {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQURL,
			Exchange: cfg.RabbitMQExchange,
			Queue:    cfg.RabbitMQQueue,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize RabbitMQ client")
		}
		defer mqClient.Close()
		publisher = mqClient

		if err := mqClient.Consume(handleInventoryEvent); err != nil {
			log.Error().Err(err).Msg("failed to start RabbitMQ consumer")
		} else {
			log.Info().Str("queue", cfg.RabbitMQQueue).Msg("consuming inventory events")
		}
	}

	app := newApp(cfg, db, publisher)

	// --- Start HTTP Server ---
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("starting server")
		if err := app.Listen(cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}
	log.Info().Msg("server gracefully stopped")
}
