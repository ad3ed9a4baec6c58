// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/artmart-checkout/internal/config"
	"github.com/your-org/artmart-checkout/internal/domain/cart"
	"github.com/your-org/artmart-checkout/internal/interfaces/http/middleware"
)

// cartStore is the slice of the cart service the handlers need
type cartStore interface {
	GetCart(ctx context.Context, sessionID string) (*cart.SessionCart, error)
	AddItem(ctx context.Context, sessionID string, req *cart.AddItemRequest) (*cart.SessionCart, error)
	RemoveItem(ctx context.Context, sessionID, cartItemID string) (*cart.SessionCart, error)
	Clear(ctx context.Context, sessionID string) error
}

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService cartStore
	config      *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(redisClient *redis.Client, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartService: cart.NewService(redisClient, cfg),
		config:      cfg,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	sessionCart, err := h.cartService.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":    sessionCart.Items,
		"subtotal": sessionCart.Subtotal(),
	})
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var req cart.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sessionCart, err := h.cartService.AddItem(c.Request.Context(), sessionID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"items":    sessionCart.Items,
		"subtotal": sessionCart.Subtotal(),
	})
}

// RemoveItem handles DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	cartItemID := c.Param("id")

	sessionCart, err := h.cartService.RemoveItem(c.Request.Context(), sessionID, cartItemID)
	if err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Cart item not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove cart item",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":    sessionCart.Items,
		"subtotal": sessionCart.Subtotal(),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	if err := h.cartService.Clear(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear cart",
		})
		return
	}

	c.Status(http.StatusNoContent)
}
