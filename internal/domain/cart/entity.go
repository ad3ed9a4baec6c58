// internal/domain/cart/entity.go
package cart

import (
	"fmt"
	"time"
)

// PrintSize is the size of a framed print
type PrintSize string

const (
	PrintSizeSmall  PrintSize = "S"
	PrintSizeMedium PrintSize = "M"
	PrintSizeLarge  PrintSize = "L"
)

// Frame styles and mat colors offered by the print shop
var (
	FrameStyles = []string{"classic", "natural", "shabby", "elegant"}
	MatColors   = []string{"arctic", "ivory", "mint", "indigo", "mauve"}
)

const (
	MinFrameWidth = 20
	MaxFrameWidth = 50
	MinMatWidth   = 0
	MaxMatWidth   = 10
)

// CartItem represents one framed print in a shopping cart.
// Price is in minor currency units (cents) and is quoted upstream
// when the item is configured; it is never recomputed here.
type CartItem struct {
	CartItemID string    `json:"cartItemId"`
	ArtworkID  int64     `json:"artworkId"`
	Price      int64     `json:"price"`
	PrintSize  PrintSize `json:"printSize"`
	FrameStyle string    `json:"frameStyle"`
	FrameWidth int       `json:"frameWidth"`
	MatWidth   int       `json:"matWidth"`
	MatColor   string    `json:"matColor,omitempty"`
	AddedAt    time.Time `json:"addedAt"`
}

// Validate checks the framing configuration. The mat color must be
// present exactly when the mat has a non-zero width.
func (i *CartItem) Validate() error {
	if i.ArtworkID <= 0 {
		return fmt.Errorf("artworkId must be positive")
	}
	if i.Price <= 0 {
		return fmt.Errorf("price must be positive")
	}
	switch i.PrintSize {
	case PrintSizeSmall, PrintSizeMedium, PrintSizeLarge:
	default:
		return fmt.Errorf("invalid print size %q", i.PrintSize)
	}
	if !contains(FrameStyles, i.FrameStyle) {
		return fmt.Errorf("invalid frame style %q", i.FrameStyle)
	}
	if i.FrameWidth < MinFrameWidth || i.FrameWidth > MaxFrameWidth {
		return fmt.Errorf("frame width must be between %d and %d", MinFrameWidth, MaxFrameWidth)
	}
	if i.MatWidth < MinMatWidth || i.MatWidth > MaxMatWidth {
		return fmt.Errorf("mat width must be between %d and %d", MinMatWidth, MaxMatWidth)
	}
	if i.MatWidth > 0 {
		if !contains(MatColors, i.MatColor) {
			return fmt.Errorf("invalid mat color %q", i.MatColor)
		}
	} else if i.MatColor != "" {
		return fmt.Errorf("mat color must be empty when mat width is 0")
	}
	return nil
}

// SessionCart represents a shopper's cart, stored in Redis per session
type SessionCart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// IsEmpty reports whether the cart has no items
func (c *SessionCart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Subtotal sums the item prices in minor currency units
func (c *SessionCart) Subtotal() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Price
	}
	return total
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
