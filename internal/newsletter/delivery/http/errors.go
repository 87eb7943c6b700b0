package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"newsletter-hub/internal/newsletter"
	"newsletter-hub/pkg/response"
)

// mapError translates domain errors into HTTP responses. The pipeline
// degrades instead of failing, so the error surface here is small.
func (h *handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, newsletter.ErrEmptyInput):
		response.Error(c, err, nil)
	default:
		response.InternalError(c, err)
	}
}
