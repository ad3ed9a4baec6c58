// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/artmart-checkout/internal/config"
	"github.com/your-org/artmart-checkout/internal/domain/artmart"
	"github.com/your-org/artmart-checkout/internal/domain/payment"
	"github.com/your-org/artmart-checkout/internal/domain/shipping"
	"github.com/your-org/artmart-checkout/internal/infrastructure/database/postgres"
	"github.com/your-org/artmart-checkout/internal/infrastructure/database/redis"
	"github.com/your-org/artmart-checkout/internal/interfaces/http"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	// Connect to database
	db, err := postgres.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Connect to Redis
	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Run database migrations
	migration := postgres.NewMigration(db.GetDB())
	if err := migration.RunAutoMigrations(); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}

	// External clients
	backend := artmart.NewClient(cfg, logrus.WithField("component", "artmart"))
	gateway := payment.NewClient(cfg, logrus.WithField("component", "bling"))

	// Load the shipping destination set from the order backend.
	// Checkout cannot price or validate anything without it, so a
	// missing destination set is fatal at boot.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	dests, err := backend.FetchShippingDestinations(ctx)
	cancel()
	if err != nil {
		log.Fatalf("Failed to load shipping destinations: %v", err)
	}
	destinations := shipping.NewSet(dests)
	log.Printf("Loaded %d shipping destinations", destinations.Len())

	// Create and start HTTP server
	server := http.NewServer(cfg, db.GetDB(), redisClient.GetClient(), destinations, backend, gateway)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	log.Println("Server shutdown completed")
}
