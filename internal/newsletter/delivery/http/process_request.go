package http

import (
	"encoding/base64"
	"errors"

	"github.com/gin-gonic/gin"

	"newsletter-hub/internal/model"
)

var errMissingInput = errors.New("raw_text or ai_payload is required")

// processExtractReq binds and validates the extract request body.
func (h *handler) processExtractReq(c *gin.Context) (extractReq, error) {
	var req extractReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	if req.RawText == "" && len(req.AIPayload) == 0 {
		return req, errMissingInput
	}
	return req, nil
}

// processScanReq binds the scan request body and decodes the image.
func (h *handler) processScanReq(c *gin.Context) (scanReq, error) {
	var req scanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}

	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		return req, errors.New("image must be base64-encoded")
	}
	req.image = image
	return req, nil
}

// scopeFrom builds the request scope from identity headers. The upstream
// gateway authenticates and injects them.
func scopeFrom(c *gin.Context) model.Scope {
	return model.Scope{
		UserID:   c.GetHeader("X-User-ID"),
		FamilyID: c.GetHeader("X-Family-ID"),
	}
}
