// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/artmart-checkout/internal/config"
	"github.com/your-org/artmart-checkout/internal/domain/checkout"
	"github.com/your-org/artmart-checkout/internal/domain/shipping"
	"github.com/your-org/artmart-checkout/internal/interfaces/http/handlers"
	"github.com/your-org/artmart-checkout/internal/interfaces/http/middleware"
	"github.com/your-org/artmart-checkout/internal/pkg/session"
	"gorm.io/gorm"
)

// SetupRoutes wires all API routes
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, destinations *shipping.Set, backend checkout.OrderBackend, gateway checkout.PaymentGateway, cfg *config.Config) {
	sessionManager := session.NewManager(cfg)

	cartHandler := handlers.NewCartHandler(redisClient, cfg)
	shippingHandler := handlers.NewShippingHandler(destinations)
	checkoutHandler := handlers.NewCheckoutHandler(db, redisClient, destinations, backend, gateway, cfg)
	orderHandler := handlers.NewOrderHandler(db, cfg)

	rg.GET("/shipping", shippingHandler.ListDestinations)

	withSession := rg.Group("")
	withSession.Use(middleware.CartSession(sessionManager))
	{
		cart := withSession.Group("/cart")
		{
			cart.GET("", cartHandler.GetCart)
			cart.DELETE("", cartHandler.ClearCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.DELETE("/items/:id", cartHandler.RemoveItem)
		}

		co := withSession.Group("/checkout")
		{
			co.GET("/quote", checkoutHandler.Quote)
			co.POST("", checkoutHandler.Submit)
		}
	}

	orders := rg.Group("/orders")
	{
		orders.GET("/:number/receipt", orderHandler.GetReceipt)
	}
}
