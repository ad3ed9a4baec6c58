// internal/interfaces/http/handlers/shipping.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/artmart-checkout/internal/domain/shipping"
)

// ShippingHandler exposes the shipping destination set
type ShippingHandler struct {
	destinations *shipping.Set
}

// NewShippingHandler creates a new shipping handler
func NewShippingHandler(destinations *shipping.Set) *ShippingHandler {
	return &ShippingHandler{destinations: destinations}
}

// ListDestinations handles GET /shipping
func (h *ShippingHandler) ListDestinations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"destinations": h.destinations.All(),
	})
}
