// internal/domain/artmart/client.go
package artmart

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
	"github.com/your-org/artmart-checkout/internal/domain/shipping"
)

// Client talks to the Artmart order backend. There is no client-side
// timeout; a slow backend simply prolongs the attempt, and cancellation
// happens through the request context.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Entry
}

// NewClient creates a new order backend client
func NewClient(cfg *config.Config, log *logrus.Entry) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.Artmart.BaseURL, "/"),
		httpClient: &http.Client{},
		log:        log,
	}
}

// CreateCheckout creates a checkout session for the backend's cart.
// Any non-2xx status is an order rejection; the response body is
// ignored in that case.
func (c *Client) CreateCheckout(ctx context.Context, customer checkout.Customer) (*checkout.CheckoutSession, error) {
	body, err := json.Marshal(customer)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal checkout payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/cart/checkout", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checkout request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("order backend rejected checkout: status %d", resp.StatusCode)
	}

	var session checkout.CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session: %w", err)
	}

	c.log.WithFields(logrus.Fields{
		"payment_intent_id": session.PaymentIntentID,
		"amount":            session.Amount,
		"currency":          session.Currency,
	}).Info("checkout session created")

	return &session, nil
}

type destinationsResponse struct {
	Destinations []shipping.Destination `json:"destinations"`
}

// FetchShippingDestinations loads the set of countries the backend ships to
func (c *Client) FetchShippingDestinations(ctx context.Context) ([]shipping.Destination, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/shipping", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shipping request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("failed to fetch shipping destinations: status %d", resp.StatusCode)
	}

	var payload destinationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode shipping destinations: %w", err)
	}
	return payload.Destinations, nil
}
