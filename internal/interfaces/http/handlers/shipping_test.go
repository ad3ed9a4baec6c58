// internal/interfaces/http/handlers/shipping_test.go
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/artmart-checkout/internal/domain/shipping"
)

func TestListDestinations(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewShippingHandler(testDestinations())
	router := gin.New()
	router.GET("/shipping", h.ListDestinations)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/shipping", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Destinations []shipping.Destination `json:"destinations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Destinations, 2)
	// sorted by display name
	assert.Equal(t, "Austria", resp.Destinations[0].DisplayName)
	assert.Equal(t, "Germany", resp.Destinations[1].DisplayName)
}
