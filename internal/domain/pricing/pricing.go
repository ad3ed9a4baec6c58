// internal/domain/pricing/pricing.go
package pricing

import (
	"fmt"

	"github.com/your-org/artmart-checkout/internal/domain/cart"
	"github.com/your-org/artmart-checkout/internal/domain/shipping"
)

// Quote is the pricing breakdown for a cart and a selected shipping
// destination. All amounts are in minor currency units.
type Quote struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	Total    int64 `json:"total"`
}

// ForCart derives the quote for a cart shipped to the given destination
func ForCart(items []cart.CartItem, destination shipping.Destination) Quote {
	var subtotal int64
	for _, item := range items {
		subtotal += item.Price
	}
	return Quote{
		Subtotal: subtotal,
		Shipping: destination.Cost,
		Total:    subtotal + destination.Cost,
	}
}

// FormatMinor renders a minor-unit amount as a two-decimal major-unit
// string, e.g. 14850 -> "148.50". This matches the display contract of
// the storefront, which shows (amount / 100).toFixed(2).
func FormatMinor(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}

// FormatEuro renders a minor-unit amount with the euro prefix used by the storefront
func FormatEuro(amount int64) string {
	return "€ " + FormatMinor(amount)
}
