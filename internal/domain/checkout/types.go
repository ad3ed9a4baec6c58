// internal/domain/checkout/types.go
package checkout

import (
	"fmt"
	"strconv"
	"strings"
)

// ShippingAddress is the address part of the order backend payload.
// Phone is always serialized, as an empty string when the customer
// provided none.
type ShippingAddress struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
}

// Customer is the order backend checkout payload
type Customer struct {
	Email           string          `json:"email"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
}

// CreditCard holds card data for a single payment confirmation. It is
// constructed from form input at submission time, passed once to the
// payment gateway and discarded. It must never be logged or persisted.
type CreditCard struct {
	Cardholder string
	Number     string
	ExpMonth   int
	ExpYear    int
	CVC        int
}

// ParseExpiry splits a combined "MM/YY" expiry into integer month and year
func ParseExpiry(expiry string) (month, year int, err error) {
	parts := strings.SplitN(expiry, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expiry must be in MM/YY format")
	}
	month, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid expiry month %q", parts[0])
	}
	year, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || year < 0 {
		return 0, 0, fmt.Errorf("invalid expiry year %q", parts[1])
	}
	return month, year, nil
}

// CheckoutSession is issued by the order backend and authorizes exactly
// one payment confirmation. It lives only for the duration of one
// checkout attempt.
type CheckoutSession struct {
	PaymentIntentID string `json:"payment_intent_id"`
	ClientSecret    string `json:"client_secret"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}

// PaymentStatus is the gateway's verdict on a confirmation
type PaymentStatus string

const (
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
)

// PaymentResult is the terminal outcome of a payment confirmation.
// PaymentError carries the gateway reason code (card_expired,
// card_declined, ...) when the status is failed; it is diagnostic
// detail and never shown to the shopper.
type PaymentResult struct {
	Status       PaymentStatus `json:"status"`
	PaymentError string        `json:"payment_error,omitempty"`
}
