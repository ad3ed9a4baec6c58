// internal/domain/order/entity.go
package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the terminal outcome of an archived checkout attempt
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Address is the shipping address captured with an order
type Address struct {
	Name       string `gorm:"size:255" json:"name"`
	Address    string `gorm:"size:255" json:"address"`
	City       string `gorm:"size:100" json:"city"`
	Country    string `gorm:"size:2" json:"country"`
	PostalCode string `gorm:"size:20" json:"postal_code"`
	Phone      string `gorm:"size:50" json:"phone"`
}

// Order is the archive record of one settled checkout attempt. It is
// written once when the attempt reaches a terminal state and never
// consulted during checkout itself. Card data is never stored.
type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	Email       string `gorm:"not null;size:255" json:"email"`
	Status      Status `gorm:"not null;size:20" json:"status"`

	// Financial information, in minor currency units
	SubtotalAmount int64  `gorm:"not null" json:"subtotal_amount"`
	ShippingAmount int64  `gorm:"not null" json:"shipping_amount"`
	TotalAmount    int64  `gorm:"not null" json:"total_amount"`
	Currency       string `gorm:"size:3" json:"currency"`

	// Gateway diagnostics
	PaymentIntentID string `gorm:"size:100;index" json:"payment_intent_id"`
	FailureCategory string `gorm:"size:30" json:"failure_category,omitempty"`
	PaymentError    string `gorm:"size:50" json:"payment_error,omitempty"`

	ShippingAddress Address `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one framed print captured with an archived order
type OrderItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	ArtworkID  int64     `gorm:"not null" json:"artwork_id"`
	Price      int64     `gorm:"not null" json:"price"`
	PrintSize  string    `gorm:"size:1" json:"print_size"`
	FrameStyle string    `gorm:"size:20" json:"frame_style"`
	FrameWidth int       `json:"frame_width"`
	MatWidth   int       `json:"mat_width"`
	MatColor   string    `gorm:"size:20" json:"mat_color,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName overrides the table name
func (OrderItem) TableName() string {
	return "order_items"
}

// GenerateOrderNumber produces a short human-readable order number
func GenerateOrderNumber() string {
	return fmt.Sprintf("ORD-%s", strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12]))
}
