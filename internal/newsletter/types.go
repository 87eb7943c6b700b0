package newsletter

import "newsletter-hub/internal/model"

// ExtractInput is the input for the extraction pipeline.
type ExtractInput struct {
	RawText        string   // OCR output, UTF-8, arbitrary line breaks
	AIPayload      any      // AI response: string (possibly fenced) or decoded object
	IssueMonthHint string   // "YYYY-MM", supplied when the caller already knows it
	ChildIDs       []string // children selected at upload time
}

// ExtractOutput is the canonical record plus its derived tasks.
type ExtractOutput struct {
	Newsletter model.CanonicalNewsletter
	Tasks      []model.Task
}
