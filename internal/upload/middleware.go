package upload

import (
	"bytes"
	"io"

	"github.com/gin-gonic/gin"

	"newsletter-hub/pkg/log"
	"newsletter-hub/pkg/response"
)

// Middleware runs the guard checks in front of extraction routes:
// rate limit first, then IP allowlist, then body signature.
func (g *Guard) Middleware(l log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ip := extractIP(c.Request)

		if err := g.CheckRateLimit(ip); err != nil {
			l.Warnf(ctx, "upload guard: %v", err)
			c.AbortWithStatusJSON(429, response.Resp{
				ErrorCode: 429,
				Message:   "Too many requests",
			})
			return
		}

		if err := g.ValidateIPAddress(c.Request); err != nil {
			l.Warnf(ctx, "upload guard: %v", err)
			response.Forbidden(c)
			c.Abort()
			return
		}

		if g.config.Secret != "" {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				response.Error(c, err, nil)
				c.Abort()
				return
			}
			// Hand the body back to the handler's binder.
			c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

			if err := g.ValidateSignature(body, c.GetHeader("X-Upload-Signature")); err != nil {
				l.Warnf(ctx, "upload guard: %v", err)
				response.Unauthorized(c)
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
