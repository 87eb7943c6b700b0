package newsletter

import "errors"

// Domain-specific errors for the newsletter package. The normalization
// core itself never fails on malformed input; these mark glue-boundary
// conditions only.
var (
	ErrEmptyInput = errors.New("no OCR text or AI payload provided")
)
