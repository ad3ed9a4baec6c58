// internal/interfaces/http/middleware/cart_session.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/artmart-checkout/internal/pkg/session"
)

// SessionHeader carries the signed cart session token
const SessionHeader = "X-Cart-Session"

const sessionContextKey = "cart_session_id"

// CartSession resolves the shopper's cart session from the request.
// A missing or invalid token gets a fresh session; the (possibly new)
// token is echoed back on the response so the client can hold on to it.
func CartSession(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(SessionHeader)

		if token != "" {
			if sessionID, err := manager.Validate(token); err == nil {
				c.Set(sessionContextKey, sessionID)
				c.Header(SessionHeader, token)
				c.Next()
				return
			}
		}

		sessionID, freshToken, err := manager.Issue()
		if err != nil {
			c.AbortWithStatusJSON(500, gin.H{"error": "Failed to create cart session"})
			return
		}
		c.Set(sessionContextKey, sessionID)
		c.Header(SessionHeader, freshToken)
		c.Next()
	}
}

// GetSessionID returns the cart session id resolved for this request
func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionContextKey)
}
