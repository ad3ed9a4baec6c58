// internal/interfaces/http/handlers/checkout_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/artmart-checkout/internal/config"
	"github.com/your-org/artmart-checkout/internal/domain/cart"
	"github.com/your-org/artmart-checkout/internal/domain/checkout"
	"github.com/your-org/artmart-checkout/internal/domain/order"
	"github.com/your-org/artmart-checkout/internal/domain/pricing"
	"github.com/your-org/artmart-checkout/internal/domain/shipping"
)

type mockCartStore struct {
	cart      *cart.SessionCart
	getErr    error
	addErr    error
	removeErr error
	clearErr  error
	cleared   bool
}

func (m *mockCartStore) GetCart(ctx context.Context, sessionID string) (*cart.SessionCart, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.cart, nil
}

func (m *mockCartStore) AddItem(ctx context.Context, sessionID string, req *cart.AddItemRequest) (*cart.SessionCart, error) {
	if m.addErr != nil {
		return nil, m.addErr
	}
	return m.cart, nil
}

func (m *mockCartStore) RemoveItem(ctx context.Context, sessionID, cartItemID string) (*cart.SessionCart, error) {
	if m.removeErr != nil {
		return nil, m.removeErr
	}
	return m.cart, nil
}

func (m *mockCartStore) Clear(ctx context.Context, sessionID string) error {
	m.cleared = true
	return m.clearErr
}

type mockArchiver struct {
	mu         sync.Mutex
	recorded   []checkout.Transition
	orderValue *order.Order
	err        error
}

func (m *mockArchiver) RecordAttempt(ctx context.Context, customer checkout.Customer, items []cart.CartItem, quote pricing.Quote, t checkout.Transition) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded = append(m.recorded, t)
	if m.err != nil {
		return nil, m.err
	}
	return m.orderValue, nil
}

type mockBackend struct {
	mu      sync.Mutex
	calls   int
	session *checkout.CheckoutSession
	err     error
}

func (m *mockBackend) CreateCheckout(ctx context.Context, customer checkout.Customer) (*checkout.CheckoutSession, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.session, nil
}

func (m *mockBackend) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockGateway struct {
	mu     sync.Mutex
	calls  int
	result *checkout.PaymentResult
	err    error
}

func (m *mockGateway) ConfirmPaymentIntent(ctx context.Context, session *checkout.CheckoutSession, card checkout.CreditCard) (*checkout.PaymentResult, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockGateway) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func testDestinations() *shipping.Set {
	return shipping.NewSet([]shipping.Destination{
		{Country: "AT", DisplayName: "Austria", Cost: 1500},
		{Country: "DE", DisplayName: "Germany", Cost: 2000},
	})
}

func filledCart() *cart.SessionCart {
	return &cart.SessionCart{
		SessionID: "session-1",
		Items: []cart.CartItem{
			{
				CartItemID: "item-1",
				ArtworkID:  4711,
				Price:      9900,
				PrintSize:  cart.PrintSizeMedium,
				FrameStyle: "classic",
				FrameWidth: 30,
			},
		},
	}
}

func newCheckoutTestHandler(store *mockCartStore, archiver *mockArchiver, backend *mockBackend, gateway *mockGateway) *CheckoutHandler {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &CheckoutHandler{
		cartService:  store,
		orderService: archiver,
		destinations: testDestinations(),
		backend:      backend,
		gateway:      gateway,
		config:       &config.Config{},
		log:          logrus.NewEntry(logger),
	}
}

func checkoutRouter(h *CheckoutHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/checkout", h.Submit)
	router.GET("/checkout/quote", h.Quote)
	return router
}

func checkoutBody(country string) []byte {
	body, _ := json.Marshal(map[string]any{
		"email": "shopper@example.com",
		"shipping_address": map[string]any{
			"name":        "Max Mustermann",
			"address":     "Karlsplatz 13",
			"city":        "Vienna",
			"country":     country,
			"postal_code": "1040",
		},
		"card": map[string]any{
			"cardholder": "Max Mustermann",
			"cardnumber": "4242424242424242",
			"cardexpiry": "04/28",
			"cvc":        123,
		},
	})
	return body
}

func TestSubmitEmptyCartRedirects(t *testing.T) {
	store := &mockCartStore{cart: &cart.SessionCart{SessionID: "session-1"}}
	backend := &mockBackend{}
	gateway := &mockGateway{}
	h := newCheckoutTestHandler(store, &mockArchiver{}, backend, gateway)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(checkoutBody("AT")))
	checkoutRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))
	// no upstream request is made for an empty cart
	assert.Equal(t, 0, backend.callCount())
	assert.Equal(t, 0, gateway.callCount())
}

func TestSubmitSuccess(t *testing.T) {
	store := &mockCartStore{cart: filledCart()}
	archiver := &mockArchiver{orderValue: &order.Order{OrderNumber: "ORD-ABCDEF123456"}}
	backend := &mockBackend{session: &checkout.CheckoutSession{
		PaymentIntentID: "pi_123",
		ClientSecret:    "cs_secret_456",
		Amount:          11400,
		Currency:        "eur",
	}}
	gateway := &mockGateway{result: &checkout.PaymentResult{Status: checkout.PaymentSucceeded}}
	h := newCheckoutTestHandler(store, archiver, backend, gateway)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(checkoutBody("AT")))
	checkoutRouter(h).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "succeeded", resp["status"])
	assert.Equal(t, checkout.MessageSuccess, resp["message"])
	assert.Equal(t, "ORD-ABCDEF123456", resp["order_number"])

	assert.Equal(t, 1, backend.callCount())
	assert.Equal(t, 1, gateway.callCount())
	assert.True(t, store.cleared)

	require.Len(t, archiver.recorded, 1)
	assert.Equal(t, checkout.StateSucceeded, archiver.recorded[0].State)
}

func TestSubmitOrderRejected(t *testing.T) {
	store := &mockCartStore{cart: filledCart()}
	archiver := &mockArchiver{}
	backend := &mockBackend{err: errors.New("status 400")}
	gateway := &mockGateway{}
	h := newCheckoutTestHandler(store, archiver, backend, gateway)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(checkoutBody("AT")))
	checkoutRouter(h).ServeHTTP(w, req)

	require.Equal(t, http.StatusPaymentRequired, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "failed", resp["status"])
	assert.Equal(t, checkout.MessageFailure, resp["message"])

	assert.Equal(t, 1, backend.callCount())
	assert.Equal(t, 0, gateway.callCount())
	assert.False(t, store.cleared)
}

func TestSubmitPaymentDeclined(t *testing.T) {
	store := &mockCartStore{cart: filledCart()}
	archiver := &mockArchiver{}
	backend := &mockBackend{session: &checkout.CheckoutSession{PaymentIntentID: "pi_123", ClientSecret: "cs_1"}}
	gateway := &mockGateway{result: &checkout.PaymentResult{Status: checkout.PaymentFailed, PaymentError: "card_expired"}}
	h := newCheckoutTestHandler(store, archiver, backend, gateway)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(checkoutBody("AT")))
	checkoutRouter(h).ServeHTTP(w, req)

	require.Equal(t, http.StatusPaymentRequired, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, checkout.MessageFailure, resp["message"])
	// the gateway reason code is archived, never surfaced to the shopper
	assert.NotContains(t, w.Body.String(), "card_expired")

	require.Len(t, archiver.recorded, 1)
	assert.Equal(t, "card_expired", archiver.recorded[0].PaymentError)
	assert.False(t, store.cleared)
}

func TestSubmitUnknownDestination(t *testing.T) {
	store := &mockCartStore{cart: filledCart()}
	backend := &mockBackend{}
	h := newCheckoutTestHandler(store, &mockArchiver{}, backend, &mockGateway{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(checkoutBody("XX")))
	checkoutRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, backend.callCount())
}

func TestSubmitInvalidBody(t *testing.T) {
	store := &mockCartStore{cart: filledCart()}
	h := newCheckoutTestHandler(store, &mockArchiver{}, &mockBackend{}, &mockGateway{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader([]byte(`{"email":"not-an-email"}`)))
	checkoutRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitInvalidExpiry(t *testing.T) {
	store := &mockCartStore{cart: filledCart()}
	backend := &mockBackend{}
	h := newCheckoutTestHandler(store, &mockArchiver{}, backend, &mockGateway{})

	body, _ := json.Marshal(map[string]any{
		"email": "shopper@example.com",
		"shipping_address": map[string]any{
			"name": "Max Mustermann", "address": "Karlsplatz 13", "city": "Vienna",
			"country": "AT", "postal_code": "1040",
		},
		"card": map[string]any{
			"cardholder": "Max Mustermann", "cardnumber": "4242424242424242",
			"cardexpiry": "0428", "cvc": 123,
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(body))
	checkoutRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, backend.callCount())
}

func TestQuote(t *testing.T) {
	store := &mockCartStore{cart: filledCart()}
	h := newCheckoutTestHandler(store, &mockArchiver{}, &mockBackend{}, &mockGateway{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/checkout/quote?country=AT", nil)
	checkoutRouter(h).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Subtotal int64 `json:"subtotal"`
		Shipping int64 `json:"shipping"`
		Total    int64 `json:"total"`
		Display  struct {
			Total string `json:"total"`
		} `json:"display"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(9900), resp.Subtotal)
	assert.Equal(t, int64(1500), resp.Shipping)
	assert.Equal(t, int64(11400), resp.Total)
	assert.Equal(t, "114.00", resp.Display.Total)
}

func TestQuoteUnknownCountry(t *testing.T) {
	store := &mockCartStore{cart: filledCart()}
	h := newCheckoutTestHandler(store, &mockArchiver{}, &mockBackend{}, &mockGateway{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/checkout/quote?country=XX", nil)
	checkoutRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
