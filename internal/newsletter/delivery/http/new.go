package http

import (
	"newsletter-hub/internal/newsletter"
	"newsletter-hub/pkg/log"
	"newsletter-hub/pkg/ocr"
)

type handler struct {
	l   log.Logger
	uc  newsletter.UseCase
	ocr *ocr.Pool // optional; nil disables the scan route
}

// New creates a new HTTP handler for the newsletter domain.
func New(l log.Logger, uc newsletter.UseCase, ocrPool *ocr.Pool) *handler {
	return &handler{
		l:   l,
		uc:  uc,
		ocr: ocrPool,
	}
}
