// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/artmart-checkout/internal/config"
	"github.com/your-org/artmart-checkout/internal/domain/order"
	"github.com/your-org/artmart-checkout/internal/pkg/pdf"
	"gorm.io/gorm"
)

// OrderHandler serves archived orders and their receipts
type OrderHandler struct {
	orderService *order.Service
	pdfService   *pdf.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(db *gorm.DB, cfg *config.Config) *OrderHandler {
	return &OrderHandler{
		orderService: order.NewService(db),
		pdfService:   pdf.NewService(cfg),
	}
}

// GetReceipt handles GET /orders/:number/receipt
func (h *OrderHandler) GetReceipt(c *gin.Context) {
	orderNumber := c.Param("number")

	o, err := h.orderService.GetByNumber(c.Request.Context(), orderNumber)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
		return
	}

	if o.Status != order.StatusSucceeded {
		c.JSON(http.StatusNotFound, gin.H{"error": "No receipt for this order"})
		return
	}

	buf, err := h.pdfService.GenerateReceipt(o)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate receipt"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", o.OrderNumber))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
