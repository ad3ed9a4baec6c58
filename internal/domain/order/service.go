// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/artmart-checkout/internal/domain/cart"
	"github.com/your-org/artmart-checkout/internal/domain/checkout"
	"github.com/your-org/artmart-checkout/internal/domain/pricing"
	"gorm.io/gorm"
)

// ErrOrderNotFound is returned when no archived order matches
var ErrOrderNotFound = errors.New("order not found")

// Service archives settled checkout attempts
type Service struct {
	db *gorm.DB
}

// NewService creates a new order service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// RecordAttempt archives the terminal outcome of one checkout attempt.
// The transition must be terminal; non-terminal transitions are a
// programming error.
func (s *Service) RecordAttempt(ctx context.Context, customer checkout.Customer, items []cart.CartItem, quote pricing.Quote, t checkout.Transition) (*Order, error) {
	if !t.State.IsTerminal() {
		return nil, fmt.Errorf("cannot archive non-terminal state %s", t.State)
	}

	status := StatusFailed
	if t.State == checkout.StateSucceeded {
		status = StatusSucceeded
	}

	o := &Order{
		OrderNumber:     GenerateOrderNumber(),
		Email:           customer.Email,
		Status:          status,
		SubtotalAmount:  quote.Subtotal,
		ShippingAmount:  quote.Shipping,
		TotalAmount:     quote.Total,
		FailureCategory: string(t.Failure),
		PaymentError:    t.PaymentError,
		ShippingAddress: Address{
			Name:       customer.ShippingAddress.Name,
			Address:    customer.ShippingAddress.Address,
			City:       customer.ShippingAddress.City,
			Country:    customer.ShippingAddress.Country,
			PostalCode: customer.ShippingAddress.PostalCode,
			Phone:      customer.ShippingAddress.Phone,
		},
	}
	if t.Session != nil {
		o.PaymentIntentID = t.Session.PaymentIntentID
		o.Currency = t.Session.Currency
	}

	o.Items = make([]OrderItem, len(items))
	for i, item := range items {
		o.Items[i] = OrderItem{
			ArtworkID:  item.ArtworkID,
			Price:      item.Price,
			PrintSize:  string(item.PrintSize),
			FrameStyle: item.FrameStyle,
			FrameWidth: item.FrameWidth,
			MatWidth:   item.MatWidth,
			MatColor:   item.MatColor,
		}
	}

	if err := s.db.WithContext(ctx).Create(o).Error; err != nil {
		return nil, fmt.Errorf("failed to archive checkout attempt: %w", err)
	}
	return o, nil
}

// GetByNumber loads an archived order with its items
func (s *Service) GetByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	var o Order
	err := s.db.WithContext(ctx).Preload("Items").Where("order_number = ?", orderNumber).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return &o, nil
}
