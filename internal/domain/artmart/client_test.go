// internal/domain/artmart/client_test.go
package artmart

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/artmart-checkout/internal/config"
	"github.com/your-org/artmart-checkout/internal/domain/checkout"
)

func testClient(baseURL string) *Client {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &config.Config{Artmart: config.ArtmartConfig{BaseURL: baseURL}}
	return NewClient(cfg, logrus.NewEntry(logger))
}

func testCustomer(phone string) checkout.Customer {
	return checkout.Customer{
		Email: "shopper@example.com",
		ShippingAddress: checkout.ShippingAddress{
			Name:       "Max Mustermann",
			Address:    "Karlsplatz 13",
			City:       "Vienna",
			Country:    "AT",
			PostalCode: "1040",
			Phone:      phone,
		},
	}
}

func TestCreateCheckout(t *testing.T) {
	var gotMethod, gotPath, gotContentType string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"payment_intent_id": "pi_123",
			"client_secret":     "cs_secret_456",
			"amount":            11400,
			"currency":          "eur",
		})
	}))
	defer server.Close()

	client := testClient(server.URL)
	session, err := client.CreateCheckout(context.Background(), testCustomer("+43 660 1234567"))

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/cart/checkout", gotPath)
	assert.Equal(t, "application/json", gotContentType)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	assert.Equal(t, "shopper@example.com", payload["email"])
	address, ok := payload["shipping_address"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Max Mustermann", address["name"])
	assert.Equal(t, "Karlsplatz 13", address["address"])
	assert.Equal(t, "Vienna", address["city"])
	assert.Equal(t, "AT", address["country"])
	assert.Equal(t, "1040", address["postal_code"])
	assert.Equal(t, "+43 660 1234567", address["phone"])

	assert.Equal(t, "pi_123", session.PaymentIntentID)
	assert.Equal(t, "cs_secret_456", session.ClientSecret)
	assert.Equal(t, int64(11400), session.Amount)
	assert.Equal(t, "eur", session.Currency)
}

func TestCreateCheckoutSerializesEmptyPhone(t *testing.T) {
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(map[string]any{"payment_intent_id": "pi_1", "client_secret": "cs_1"})
	}))
	defer server.Close()

	_, err := testClient(server.URL).CreateCheckout(context.Background(), testCustomer(""))
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	address := payload["shipping_address"].(map[string]any)

	phone, present := address["phone"]
	assert.True(t, present, "phone must be serialized even when empty")
	assert.Equal(t, "", phone)
}

func TestCreateCheckoutRejection(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		session, err := testClient(server.URL).CreateCheckout(context.Background(), testCustomer(""))

		assert.Error(t, err)
		assert.Nil(t, session)
		server.Close()
	}
}

func TestFetchShippingDestinations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/shipping", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"destinations":[
			{"country":"AT","displayName":"Austria","cost":1500},
			{"country":"DE","displayName":"Germany","cost":2000}
		]}`)
	}))
	defer server.Close()

	dests, err := testClient(server.URL).FetchShippingDestinations(context.Background())

	require.NoError(t, err)
	require.Len(t, dests, 2)
	assert.Equal(t, "AT", dests[0].Country)
	assert.Equal(t, "Austria", dests[0].DisplayName)
	assert.Equal(t, int64(1500), dests[0].Cost)
}

func TestFetchShippingDestinationsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchShippingDestinations(context.Background())
	assert.Error(t, err)
}
