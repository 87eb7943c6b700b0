package http

import (
	"github.com/gin-gonic/gin"

	"newsletter-hub/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	newsletters := rg.Group("/newsletters")
	{
		newsletters.POST("/extract", mw.Auth(), h.Extract)
		newsletters.POST("/scan", mw.Auth(), h.Scan)
	}
}
