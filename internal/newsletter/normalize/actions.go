package normalize

import (
	"regexp"
	"strings"

	"newsletter-hub/internal/model"
	"newsletter-hub/internal/newsletter/payload"
	"newsletter-hub/pkg/jpdate"
)

// FallbackName keeps low-confidence items visible instead of silently
// dropping them when the source record has content but no usable name.
const FallbackName = "要確認"

// DefaultConfidence applies to any confidence sub-field the AI omitted.
const DefaultConfidence = 0.7

var (
	timeRe     = regexp.MustCompile(`^\d{2}:\d{2}$`)
	validByDay = map[string]bool{
		"MO": true, "TU": true, "WE": true, "TH": true,
		"FR": true, "SA": true, "SU": true,
	}
)

// Normalizer maps heterogeneous raw action records onto the canonical
// Action shape.
type Normalizer struct {
	dates *jpdate.Resolver
}

// New creates an action normalizer backed by the given date resolver.
func New(dates *jpdate.Resolver) *Normalizer {
	return &Normalizer{dates: dates}
}

// Actions converts raw records into canonical actions. issueMonth
// ("YYYY-MM") provides year context for year-omitted dates. Records with
// no name and no other signal are treated as OCR noise and skipped.
func (n *Normalizer) Actions(raw []payload.RawAction, issueMonth string) []model.Action {
	out := make([]model.Action, 0, len(raw))
	for _, r := range raw {
		if a, ok := n.action(r, issueMonth); ok {
			out = append(out, a)
		}
	}
	return out
}

func (n *Normalizer) action(r payload.RawAction, issueMonth string) (model.Action, bool) {
	eventDate := n.resolve(r.Str("event_date", "date", "eventDate"), issueMonth)
	dueDate := n.resolve(r.Str("due_date", "deadline", "dueDate"), issueMonth)
	items := r.Strings("items", "materials", "belongings")
	fee := optional(r.Str("fee", "cost", "price"))
	notes := optional(r.Str("notes", "note", "remarks"))

	name := strings.TrimSpace(r.Str("event_name", "name", "title"))
	if name == "" {
		// A nameless record with nothing else in it is noise; a
		// nameless record with real content stays visible for review.
		if eventDate == nil && dueDate == nil && len(items) == 0 && fee == nil && notes == nil {
			return model.Action{}, false
		}
		name = FallbackName
	}

	return model.Action{
		Type:           actionType(r),
		EventName:      name,
		IsContinuation: r.Bool("is_continuation", "isContinuation", "continuation"),
		EventDate:      eventDate,
		DueDate:        dueDate,
		Items:          items,
		Fee:            fee,
		RepeatRule:     repeatRule(r),
		Audience:       optional(r.Str("audience", "target")),
		Importance:     importance(r),
		ActionRequired: true,
		Notes:          notes,
		Confidence:     confidence(r),
	}, true
}

// actionType honors an explicit type field, then falls back to the array
// the record came from: "events" entries are calendar events, the rest
// are to-dos.
func actionType(r payload.RawAction) model.ActionType {
	switch r.Str("type") {
	case "event":
		return model.ActionEvent
	case "todo", "task":
		return model.ActionTodo
	}
	if r.Source == "events" {
		return model.ActionEvent
	}
	return model.ActionTodo
}

func importance(r payload.RawAction) string {
	switch r.Str("importance", "priority") {
	case model.ImportanceHigh:
		return model.ImportanceHigh
	case model.ImportanceLow:
		return model.ImportanceLow
	default:
		return model.ImportanceMedium
	}
}

// repeatRule accepts a rule only when both a non-empty byDay array and a
// well-formed time are present. No partial rules.
func repeatRule(r payload.RawAction) *model.RepeatRule {
	m := r.Map("repeat_rule", "repeatRule", "recurrence")
	if m == nil {
		return nil
	}

	rawDays, ok := m["byDay"].([]any)
	if !ok {
		if rawDays, ok = m["by_day"].([]any); !ok {
			return nil
		}
	}
	days := make([]string, 0, len(rawDays))
	for _, d := range rawDays {
		s, ok := d.(string)
		if !ok || !validByDay[strings.ToUpper(s)] {
			continue
		}
		days = append(days, strings.ToUpper(s))
	}

	timeStr, _ := m["time"].(string)
	if len(days) == 0 || !timeRe.MatchString(timeStr) {
		return nil
	}

	return &model.RepeatRule{ByDay: days, Time: timeStr}
}

func confidence(r payload.RawAction) model.Confidence {
	c := model.Confidence{
		Date:  DefaultConfidence,
		Due:   DefaultConfidence,
		Items: DefaultConfidence,
	}
	m := r.Map("confidence")
	if m == nil {
		return c
	}
	if v, ok := m["date"].(float64); ok && v >= 0 && v <= 1 {
		c.Date = v
	}
	if v, ok := m["due"].(float64); ok && v >= 0 && v <= 1 {
		c.Due = v
	}
	if v, ok := m["items"].(float64); ok && v >= 0 && v <= 1 {
		c.Items = v
	}
	return c
}

func (n *Normalizer) resolve(raw, issueMonth string) *string {
	if raw == "" {
		return nil
	}
	iso, ok := n.dates.Resolve(raw, issueMonth)
	if !ok {
		return nil
	}
	return &iso
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
