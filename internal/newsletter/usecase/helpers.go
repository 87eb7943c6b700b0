package usecase

import (
	"context"
	"regexp"
	"strings"

	"newsletter-hub/internal/model"
	"newsletter-hub/internal/newsletter/payload"
	"newsletter-hub/pkg/gcalendar"
	"newsletter-hub/pkg/gemini"
)

var issueMonthRe = regexp.MustCompile(`^(\d{4})-(\d{1,2})`)

// fetchPayload asks the LLM to structure the OCR text when the caller
// did not supply a payload. Failures degrade to nil: the pipeline then
// produces a near-empty record with an inferred title instead of erroring.
func (uc *implUseCase) fetchPayload(ctx context.Context, rawText string) any {
	if uc.llm == nil || strings.TrimSpace(rawText) == "" {
		return nil
	}

	resp, err := uc.llm.GenerateContent(ctx, gemini.GenerateRequest{
		Contents: []gemini.Content{
			{Parts: []gemini.Part{{Text: gemini.BuildNewsletterPrompt(rawText)}}},
		},
		GenerationConfig: &gemini.GenerationConfig{
			Temperature:     0.2, // low temperature for deterministic JSON output
			MaxOutputTokens: 4096,
		},
	})
	if err != nil {
		uc.l.Warnf(ctx, "fetchPayload: LLM request failed (non-fatal): %v", err)
		return nil
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		uc.l.Warnf(ctx, "fetchPayload: empty LLM response (non-fatal)")
		return nil
	}
	return resp.Candidates[0].Content.Parts[0].Text
}

// pushToBoard mirrors the derived tasks onto the family task board.
// Failures are logged, not returned.
func (uc *implUseCase) pushToBoard(ctx context.Context, sc model.Scope, tasks []model.Task) {
	if uc.board == nil || len(tasks) == 0 {
		return
	}

	pushed, err := uc.board.PushTasks(ctx, sc.FamilyID, tasks)
	if err != nil {
		uc.l.Warnf(ctx, "pushToBoard: %v (non-fatal)", err)
		return
	}
	uc.l.Infof(ctx, "pushToBoard: %d tasks mirrored", len(pushed))
}

// pushToCalendar creates all-day calendar events for dated actions.
// Failures are logged, not returned.
func (uc *implUseCase) pushToCalendar(ctx context.Context, n model.CanonicalNewsletter) {
	if uc.cal == nil {
		return
	}

	for _, a := range n.Actions {
		if a.Type != model.ActionEvent || a.EventDate == nil {
			continue
		}
		_, err := uc.cal.CreateAllDayEvent(ctx, gcalendar.AllDayEventRequest{
			Summary:     a.EventName,
			Description: deref(a.Notes),
			Date:        *a.EventDate,
		})
		if err != nil {
			uc.l.Warnf(ctx, "pushToCalendar: %q: %v (non-fatal)", a.EventName, err)
		}
	}
}

// resolveIssueMonth normalizes the payload's issue month, then the
// caller hint, to "YYYY-MM"; returns "" when neither is usable.
func (uc *implUseCase) resolveIssueMonth(doc payload.Document, hint string) string {
	if m := normalizeIssueMonth(doc.IssueMonth); m != "" {
		return m
	}
	if m := normalizeIssueMonth(hint); m != "" {
		return m
	}
	// Last resort: derive from a resolvable issue date.
	if iso, ok := uc.dates.Resolve(doc.IssueDate, ""); ok {
		return iso[:7]
	}
	return ""
}

func (uc *implUseCase) resolveIssueDate(doc payload.Document, issueMonth string) *string {
	if doc.IssueDate == "" {
		return nil
	}
	iso, ok := uc.dates.Resolve(doc.IssueDate, issueMonth)
	if !ok {
		return nil
	}
	return &iso
}

func normalizeIssueMonth(s string) string {
	m := issueMonthRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return ""
	}
	month := m[2]
	if len(month) == 1 {
		month = "0" + month
	}
	if month < "01" || month > "12" {
		return ""
	}
	return m[1] + "-" + month
}

func infos(doc payload.Document) []model.NewsletterInfo {
	out := make([]model.NewsletterInfo, 0, len(doc.Infos))
	for _, info := range doc.Infos {
		out = append(out, model.NewsletterInfo{
			Title:    info.Title,
			Summary:  info.Summary,
			Audience: optional(info.Audience),
		})
	}
	return out
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
