package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"newsletter-hub/pkg/response"
)

// Auth gates requests behind the shared internal key. The gateway in
// front of this service authenticates end users and forwards identity
// headers; this check only keeps the service off the open network.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.internalKey == "" {
			// Key not configured: local development mode.
			c.Next()
			return
		}

		key := c.GetHeader("X-Internal-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(m.internalKey)) != 1 {
			m.l.Warnf(c.Request.Context(), "Auth: rejected request from %s", c.ClientIP())
			response.Unauthorized(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
