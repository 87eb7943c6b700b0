package usecase

import (
	"context"
	"strings"

	"newsletter-hub/internal/model"
	"newsletter-hub/internal/newsletter"
	"newsletter-hub/internal/newsletter/normalize"
	"newsletter-hub/internal/newsletter/payload"
	"newsletter-hub/internal/newsletter/title"
)

// OverviewPlaceholder is the product's standard overview text when the
// AI payload carries none.
const OverviewPlaceholder = "おたよりの内容をご確認ください。"

// Extract runs the full normalization pipeline: parse the AI payload,
// normalize and dedup actions, infer the title, assemble the canonical
// record and derive its tasks. Malformed payloads degrade to an
// all-default record; the pipeline itself never fails on bad input.
func (uc *implUseCase) Extract(ctx context.Context, sc model.Scope, input newsletter.ExtractInput) (newsletter.ExtractOutput, error) {
	if strings.TrimSpace(input.RawText) == "" && input.AIPayload == nil {
		return newsletter.ExtractOutput{}, newsletter.ErrEmptyInput
	}

	uc.l.Infof(ctx, "Extract: user=%s text_length=%d hint=%q", sc.UserID, len(input.RawText), input.IssueMonthHint)

	raw := input.AIPayload
	if raw == nil {
		raw = uc.fetchPayload(ctx, input.RawText)
	}

	parsed := payload.Parse(raw)
	if len(parsed) == 0 {
		uc.l.Warnf(ctx, "Extract: unparseable AI payload, degrading to defaults")
	}
	doc := payload.Adapt(parsed)
	uc.l.Debugf(ctx, "Extract: shape=%s raw_actions=%d infos=%d", payload.AdapterName(parsed), len(doc.Actions), len(doc.Infos))

	issueMonth := uc.resolveIssueMonth(doc, input.IssueMonthHint)
	issueDate := uc.resolveIssueDate(doc, issueMonth)

	actions := uc.norm.Actions(doc.Actions, issueMonth)
	actions = normalize.Sort(normalize.Dedup(actions))

	header := model.NewsletterHeader{
		Title: uc.titles.Infer(title.Input{
			ExistingTitle: doc.Title,
			ClassName:     doc.ClassName,
			IssueMonth:    issueMonth,
			IssueDate:     deref(issueDate),
			RawText:       input.RawText,
		}),
		ClassName:  optional(doc.ClassName),
		SchoolName: optional(doc.SchoolName),
		IssueMonth: optional(issueMonth),
		IssueDate:  issueDate,
	}

	overview := strings.TrimSpace(doc.Overview)
	if overview == "" {
		overview = OverviewPlaceholder
	}

	canonical := model.CanonicalNewsletter{
		Header:    header,
		Overview:  overview,
		KeyPoints: doc.KeyPoints,
		Actions:   actions,
		Infos:     infos(doc),
	}

	tasks := uc.tasks.FromNewsletter(canonical, input.ChildIDs)

	// Side effects degrade gracefully: the canonical record and its
	// tasks are returned even when downstream services are unreachable.
	uc.pushToBoard(ctx, sc, tasks)
	uc.pushToCalendar(ctx, canonical)

	uc.l.Infof(ctx, "Extract: title=%q actions=%d tasks=%d", header.Title, len(actions), len(tasks))

	return newsletter.ExtractOutput{
		Newsletter: canonical,
		Tasks:      tasks,
	}, nil
}
