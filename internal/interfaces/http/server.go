// internal/interfaces/http/server.go
package http

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/artmart-checkout/internal/config"
	"github.com/your-org/artmart-checkout/internal/domain/checkout"
	"github.com/your-org/artmart-checkout/internal/domain/shipping"
	"github.com/your-org/artmart-checkout/internal/interfaces/http/middleware"
	"github.com/your-org/artmart-checkout/internal/interfaces/http/routes"
	"gorm.io/gorm"
)

// Server represents the HTTP server
type Server struct {
	config       *config.Config
	gin          *gin.Engine
	httpServer   *http.Server
	db           *gorm.DB
	redisClient  *redis.Client
	destinations *shipping.Set
	backend      checkout.OrderBackend
	gateway      checkout.PaymentGateway
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, destinations *shipping.Set, backend checkout.OrderBackend, gateway checkout.PaymentGateway) *Server {
	return &Server{
		config:       cfg,
		db:           db,
		redisClient:  redisClient,
		destinations: destinations,
		backend:      backend,
		gateway:      gateway,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	if s.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	s.gin = gin.New()

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.gin,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	log.Printf("HTTP server starting on port %s", s.config.Server.Port)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	log.Println("Shutting down HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	log.Println("HTTP server stopped gracefully")
	return nil
}

// setupMiddleware configures all middleware for the server
func (s *Server) setupMiddleware() {
	s.gin.Use(gin.Recovery())
	s.gin.Use(middleware.Logger(s.config))
	s.gin.Use(middleware.RequestID())
	s.gin.Use(middleware.CORS(s.config))
}

// setupRoutes configures all routes for the server
func (s *Server) setupRoutes() {
	s.gin.GET("/health", s.healthCheck)

	apiV1 := s.gin.Group("/api/v1")
	routes.SetupRoutes(apiV1, s.db, s.redisClient, s.destinations, s.backend, s.gateway, s.config)
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	status := http.StatusOK
	health := gin.H{
		"status":  "ok",
		"version": s.config.App.Version,
	}

	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		health["database"] = "unavailable"
		status = http.StatusServiceUnavailable
	} else {
		health["database"] = "ok"
	}

	if err := s.redisClient.Ping(c.Request.Context()).Err(); err != nil {
		health["redis"] = "unavailable"
		status = http.StatusServiceUnavailable
	} else {
		health["redis"] = "ok"
	}

	if status != http.StatusOK {
		health["status"] = "degraded"
	}
	c.JSON(status, health)
}
