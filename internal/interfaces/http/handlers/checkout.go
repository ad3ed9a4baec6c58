// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/artmart-checkout/internal/config"
	"github.com/your-org/artmart-checkout/internal/domain/cart"
	"github.com/your-org/artmart-checkout/internal/domain/checkout"
	"github.com/your-org/artmart-checkout/internal/domain/order"
	"github.com/your-org/artmart-checkout/internal/domain/pricing"
	"github.com/your-org/artmart-checkout/internal/domain/shipping"
	"github.com/your-org/artmart-checkout/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// attemptArchiver records settled checkout attempts
type attemptArchiver interface {
	RecordAttempt(ctx context.Context, customer checkout.Customer, items []cart.CartItem, quote pricing.Quote, t checkout.Transition) (*order.Order, error)
}

// CheckoutHandler runs the checkout payment orchestration for one request
type CheckoutHandler struct {
	cartService  cartStore
	orderService attemptArchiver
	destinations *shipping.Set
	backend      checkout.OrderBackend
	gateway      checkout.PaymentGateway
	config       *config.Config
	log          *logrus.Entry
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(db *gorm.DB, redisClient *redis.Client, destinations *shipping.Set, backend checkout.OrderBackend, gateway checkout.PaymentGateway, cfg *config.Config) *CheckoutHandler {
	return &CheckoutHandler{
		cartService:  cart.NewService(redisClient, cfg),
		orderService: order.NewService(db),
		destinations: destinations,
		backend:      backend,
		gateway:      gateway,
		config:       cfg,
		log:          logrus.WithField("component", "checkout"),
	}
}

type shippingAddressRequest struct {
	Name       string `json:"name" binding:"required"`
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	Country    string `json:"country" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Phone      string `json:"phone"`
}

type cardRequest struct {
	Cardholder string `json:"cardholder" binding:"required"`
	Cardnumber string `json:"cardnumber" binding:"required"`
	Cardexpiry string `json:"cardexpiry" binding:"required"`
	CVC        int    `json:"cvc" binding:"required"`
}

type checkoutRequest struct {
	Email           string                 `json:"email" binding:"required,email"`
	ShippingAddress shippingAddressRequest `json:"shipping_address" binding:"required"`
	Card            cardRequest            `json:"card" binding:"required"`
}

// Quote handles GET /checkout/quote?country=XX
func (h *CheckoutHandler) Quote(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	destination, ok := h.destinations.Lookup(c.Query("country"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown shipping destination",
		})
		return
	}

	sessionCart, err := h.cartService.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	quote := pricing.ForCart(sessionCart.Items, destination)
	c.JSON(http.StatusOK, gin.H{
		"subtotal": quote.Subtotal,
		"shipping": quote.Shipping,
		"total":    quote.Total,
		"display": gin.H{
			"subtotal": pricing.FormatMinor(quote.Subtotal),
			"shipping": pricing.FormatMinor(quote.Shipping),
			"total":    pricing.FormatMinor(quote.Total),
		},
	})
}

// Submit handles POST /checkout. It runs exactly one coordinator
// attempt and answers with the terminal outcome. An empty cart never
// reaches the coordinator: the shopper is redirected back to the cart
// before any upstream request is made.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := middleware.GetSessionID(c)

	sessionCart, err := h.cartService.GetCart(ctx, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}
	if sessionCart.IsEmpty() {
		c.Redirect(http.StatusSeeOther, "/cart")
		return
	}

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	destination, ok := h.destinations.Lookup(req.ShippingAddress.Country)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown shipping destination",
		})
		return
	}

	expMonth, expYear, err := checkout.ParseExpiry(req.Card.Cardexpiry)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	customer := checkout.Customer{
		Email: req.Email,
		ShippingAddress: checkout.ShippingAddress{
			Name:       req.ShippingAddress.Name,
			Address:    req.ShippingAddress.Address,
			City:       req.ShippingAddress.City,
			Country:    req.ShippingAddress.Country,
			PostalCode: req.ShippingAddress.PostalCode,
			Phone:      req.ShippingAddress.Phone,
		},
	}
	card := checkout.CreditCard{
		Cardholder: req.Card.Cardholder,
		Number:     req.Card.Cardnumber,
		ExpMonth:   expMonth,
		ExpYear:    expYear,
		CVC:        req.Card.CVC,
	}

	quote := pricing.ForCart(sessionCart.Items, destination)

	coordinator := checkout.NewCoordinator(h.backend, h.gateway, h.log)
	defer coordinator.Close()

	if err := coordinator.Submit(ctx, sessionCart.Items, h.destinations, customer, card); err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			c.Redirect(http.StatusSeeOther, "/cart")
		case errors.Is(err, checkout.ErrUnknownDestination):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown shipping destination"})
		default:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		}
		return
	}

	for {
		select {
		case <-ctx.Done():
			// Client went away; the deferred Close discards any
			// completion still in flight.
			return
		case t, open := <-coordinator.Transitions():
			if !open {
				return
			}
			if !t.State.IsTerminal() {
				continue
			}
			h.settle(c, sessionID, customer, sessionCart, quote, t)
			return
		}
	}
}

// settle archives the terminal outcome and writes the response
func (h *CheckoutHandler) settle(c *gin.Context, sessionID string, customer checkout.Customer, sessionCart *cart.SessionCart, quote pricing.Quote, t checkout.Transition) {
	ctx := c.Request.Context()

	archived, err := h.orderService.RecordAttempt(ctx, customer, sessionCart.Items, quote, t)
	if err != nil {
		h.log.WithError(err).Error("failed to archive checkout attempt")
	}

	if t.State == checkout.StateSucceeded {
		if err := h.cartService.Clear(ctx, sessionID); err != nil {
			h.log.WithError(err).Warn("failed to clear cart after successful checkout")
		}

		response := gin.H{
			"status":  "succeeded",
			"message": checkout.MessageSuccess,
		}
		if archived != nil {
			response["order_number"] = archived.OrderNumber
		}
		c.JSON(http.StatusOK, response)
		return
	}

	// One uniform failure message, whatever went wrong underneath.
	c.JSON(http.StatusPaymentRequired, gin.H{
		"status":  "failed",
		"message": checkout.MessageFailure,
	})
}
