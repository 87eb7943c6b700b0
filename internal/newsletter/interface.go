package newsletter

import (
	"context"

	"newsletter-hub/internal/model"
)

// UseCase is the extraction pipeline contract consumed by delivery layers.
type UseCase interface {
	// Extract turns OCR text and a loosely-structured AI payload into a
	// canonical newsletter and its derived tasks.
	Extract(ctx context.Context, sc model.Scope, input ExtractInput) (ExtractOutput, error)
}
