package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsletter-hub/pkg/response"
)

// Extract godoc
// @Summary     Extract a newsletter
// @Description Normalizes OCR text and a loosely-structured AI payload into a canonical newsletter record plus derived tasks.
// @Tags        Newsletter
// @Accept      json
// @Produce     json
// @Param       body body extractReq true "OCR text and/or AI payload"
// @Success     200 {object} extractResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/newsletters/extract [POST]
func (h *handler) Extract(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processExtractReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Extract(ctx, scopeFrom(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Extract: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newExtractResp(output))
}

// Scan godoc
// @Summary     Scan and extract a newsletter image
// @Description Runs OCR on the uploaded image, then the full extraction pipeline.
// @Tags        Newsletter
// @Accept      json
// @Produce     json
// @Param       body body scanReq true "Base64 image and upload metadata"
// @Success     200 {object} extractResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     503 {object} response.Resp "OCR not configured"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/newsletters/scan [POST]
func (h *handler) Scan(c *gin.Context) {
	ctx := c.Request.Context()

	if h.ocr == nil {
		c.JSON(http.StatusServiceUnavailable, response.Resp{
			ErrorCode: http.StatusServiceUnavailable,
			Message:   "OCR is not configured",
		})
		return
	}

	req, err := h.processScanReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	handle, err := h.ocr.Acquire(ctx)
	if err != nil {
		h.l.Errorf(ctx, "ocr.Acquire: %v", err)
		response.InternalError(c, err)
		return
	}
	defer handle.Release()

	rawText, err := handle.Recognize(ctx, req.image)
	if err != nil {
		h.l.Errorf(ctx, "ocr.Recognize: %v", err)
		response.InternalError(c, err)
		return
	}

	output, err := h.uc.Extract(ctx, scopeFrom(c), req.toInput(rawText))
	if err != nil {
		h.l.Errorf(ctx, "uc.Extract: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newExtractResp(output))
}
