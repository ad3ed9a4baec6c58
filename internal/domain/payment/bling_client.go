// internal/domain/payment/bling_client.go
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/artmart-checkout/internal/config"
	"github.com/your-org/artmart-checkout/internal/domain/checkout"
)

// Client talks to the Bling payment gateway. Like the order backend
// client it carries no timeout of its own; cancellation comes from the
// request context.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Entry
}

// NewClient creates a new Bling client
func NewClient(cfg *config.Config, log *logrus.Entry) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.Bling.BaseURL, "/"),
		httpClient: &http.Client{},
		log:        log,
	}
}

// confirmRequest is the exact wire payload of a payment confirmation
type confirmRequest struct {
	ClientSecret string `json:"client_secret"`
	Cardholder   string `json:"cardholder"`
	Cardnumber   string `json:"cardnumber"`
	ExpMonth     int    `json:"exp_month"`
	ExpYear      int    `json:"exp_year"`
	CVC          int    `json:"cvc"`
}

// confirmResponse is the subset of the gateway response we consume
type confirmResponse struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	PaymentError string `json:"payment_error"`
}

// ConfirmPaymentIntent confirms a payment intent with Bling. A decline
// (402 with status "failed") is a valid result, not an error; errors
// are reserved for transport failures and unexpected responses. The
// card is used for this one call and not retained.
func (c *Client) ConfirmPaymentIntent(ctx context.Context, session *checkout.CheckoutSession, card checkout.CreditCard) (*checkout.PaymentResult, error) {
	payload := confirmRequest{
		ClientSecret: session.ClientSecret,
		Cardholder:   card.Cardholder,
		Cardnumber:   card.Number,
		ExpMonth:     card.ExpMonth,
		ExpYear:      card.ExpYear,
		CVC:          card.CVC,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal confirm payload: %w", err)
	}

	url := fmt.Sprintf("%s/payment_intents/%s/confirm", c.baseURL, session.PaymentIntentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("confirm request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPaymentRequired {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected gateway response: status %d", resp.StatusCode)
	}

	var decoded confirmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}

	result := &checkout.PaymentResult{
		Status:       checkout.PaymentStatus(decoded.Status),
		PaymentError: decoded.PaymentError,
	}

	c.log.WithFields(logrus.Fields{
		"payment_intent_id": session.PaymentIntentID,
		"status":            decoded.Status,
	}).Info("payment intent confirmed")

	return result, nil
}
