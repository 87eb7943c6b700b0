package task

import (
	"time"

	"github.com/google/uuid"

	"newsletter-hub/internal/model"
	"newsletter-hub/pkg/jpdate"
)

// ContinuationPrefix marks tasks whose action carries over from a
// previous newsletter.
const ContinuationPrefix = "(継続) "

// Generator derives task entities from canonical newsletter actions.
// Generation is pure: no I/O, persistence is the caller's concern.
type Generator struct {
	dates *jpdate.Resolver
	newID func() string
	now   func() time.Time
}

// NewGenerator creates a task generator backed by the given date resolver.
func NewGenerator(dates *jpdate.Resolver) *Generator {
	return &Generator{
		dates: dates,
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// NewGeneratorWith fixes the id source and clock, for tests.
func NewGeneratorWith(dates *jpdate.Resolver, newID func() string, now func() time.Time) *Generator {
	return &Generator{dates: dates, newID: newID, now: now}
}

// FromNewsletter returns one task per action. childIDs are the child ids
// the caller selected at upload time; the first becomes the assignee,
// otherwise the unassigned sentinel applies.
func (g *Generator) FromNewsletter(n model.CanonicalNewsletter, childIDs []string) []model.Task {
	assignee := model.AssigneeUnassigned
	if len(childIDs) > 0 && childIDs[0] != "" {
		assignee = childIDs[0]
	}

	issueMonth := ""
	if n.Header.IssueMonth != nil {
		issueMonth = *n.Header.IssueMonth
	}

	createdAt := g.now()
	tasks := make([]model.Task, 0, len(n.Actions))
	for _, a := range n.Actions {
		title := a.EventName
		if a.IsContinuation {
			title = ContinuationPrefix + title
		}

		tasks = append(tasks, model.Task{
			ID:             g.newID(),
			Title:          title,
			DueAt:          g.dueAt(a, issueMonth),
			IsContinuation: a.IsContinuation,
			RepeatRule:     a.RepeatRule,
			AssigneeCid:    assignee,
			Completed:      false,
			CreatedAt:      createdAt,
		})
	}
	return tasks
}

// dueAt picks due date over event date and re-runs it through the
// resolver with the newsletter's issue month as context.
func (g *Generator) dueAt(a model.Action, issueMonth string) *string {
	raw := ""
	switch {
	case a.DueDate != nil:
		raw = *a.DueDate
	case a.EventDate != nil:
		raw = *a.EventDate
	default:
		return nil
	}

	iso, ok := g.dates.Resolve(raw, issueMonth)
	if !ok {
		return nil
	}
	return &iso
}
