package normalize_test

import (
	"testing"
	"time"

	"newsletter-hub/internal/model"
	"newsletter-hub/internal/newsletter/normalize"
	"newsletter-hub/internal/newsletter/payload"
	"newsletter-hub/pkg/jpdate"
)

func newNormalizer() *normalize.Normalizer {
	resolver := jpdate.NewResolverAt(func() time.Time {
		return time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	})
	return normalize.New(resolver)
}

func raw(source string, fields map[string]any) payload.RawAction {
	return payload.RawAction{Source: source, Fields: fields}
}

func TestActionsFieldMapping(t *testing.T) {
	n := newNormalizer()

	t.Run("Legacy field names resolve through fallback chains", func(t *testing.T) {
		actions := n.Actions([]payload.RawAction{
			raw("todos", map[string]any{
				"name":     "体操服の記名",
				"deadline": "8-31",
				"note":     "油性ペンで",
			}),
		}, "2025-08")

		if len(actions) != 1 {
			t.Fatalf("expected 1 action, got %d", len(actions))
		}
		a := actions[0]
		if a.EventName != "体操服の記名" {
			t.Errorf("name = %q", a.EventName)
		}
		if a.DueDate == nil || *a.DueDate != "2025-08-31" {
			t.Errorf("due date = %v, want 2025-08-31", a.DueDate)
		}
		if a.Notes == nil || *a.Notes != "油性ペンで" {
			t.Errorf("notes = %v", a.Notes)
		}
		if a.Type != model.ActionTodo {
			t.Errorf("type = %q, want todo", a.Type)
		}
	})

	t.Run("Defaults applied", func(t *testing.T) {
		actions := n.Actions([]payload.RawAction{
			raw("actions", map[string]any{"event_name": "遠足"}),
		}, "")

		a := actions[0]
		if a.Importance != model.ImportanceMedium {
			t.Errorf("importance = %q, want medium", a.Importance)
		}
		if !a.ActionRequired {
			t.Errorf("action_required must always be true")
		}
		c := a.Confidence
		if c.Date != 0.7 || c.Due != 0.7 || c.Items != 0.7 {
			t.Errorf("confidence defaults = %+v, want 0.7 each", c)
		}
	})

	t.Run("Explicit confidence preserved", func(t *testing.T) {
		actions := n.Actions([]payload.RawAction{
			raw("actions", map[string]any{
				"event_name": "遠足",
				"confidence": map[string]any{"date": 0.95, "items": 0.2},
			}),
		}, "")

		c := actions[0].Confidence
		if c.Date != 0.95 || c.Items != 0.2 || c.Due != 0.7 {
			t.Errorf("confidence = %+v", c)
		}
	})

	t.Run("Events array implies event type", func(t *testing.T) {
		actions := n.Actions([]payload.RawAction{
			raw("events", map[string]any{"name": "夕涼み会", "date": "2025-07-20"}),
		}, "2025-07")

		a := actions[0]
		if a.Type != model.ActionEvent {
			t.Errorf("type = %q, want event", a.Type)
		}
		if a.EventDate == nil || *a.EventDate != "2025-07-20" {
			t.Errorf("event date = %v", a.EventDate)
		}
	})

	t.Run("Unresolvable date becomes nil", func(t *testing.T) {
		actions := n.Actions([]payload.RawAction{
			raw("actions", map[string]any{"event_name": "個人面談", "event_date": "未定"}),
		}, "2025-07")

		if actions[0].EventDate != nil {
			t.Errorf("event date = %v, want nil for unresolvable input", actions[0].EventDate)
		}
	})
}

func TestActionsNameFallback(t *testing.T) {
	n := newNormalizer()

	t.Run("Nameless record with content becomes 要確認", func(t *testing.T) {
		actions := n.Actions([]payload.RawAction{
			raw("todos", map[string]any{"event_name": "", "deadline": "2025-07-10"}),
		}, "2025-07")

		if len(actions) != 1 || actions[0].EventName != normalize.FallbackName {
			t.Errorf("expected %q fallback, got %+v", normalize.FallbackName, actions)
		}
	})

	t.Run("Nameless record with no signal is dropped", func(t *testing.T) {
		actions := n.Actions([]payload.RawAction{
			raw("todos", map[string]any{"event_name": ""}),
		}, "")

		if len(actions) != 0 {
			t.Errorf("expected empty-name no-signal record dropped, got %+v", actions)
		}
	})
}

func TestActionsRepeatRule(t *testing.T) {
	n := newNormalizer()

	t.Run("Complete rule accepted", func(t *testing.T) {
		actions := n.Actions([]payload.RawAction{
			raw("actions", map[string]any{
				"event_name": "朝の体操",
				"repeat_rule": map[string]any{
					"byDay": []any{"MO", "WE", "FR"},
					"time":  "08:30",
				},
			}),
		}, "")

		rr := actions[0].RepeatRule
		if rr == nil || len(rr.ByDay) != 3 || rr.Time != "08:30" {
			t.Errorf("repeat rule = %+v", rr)
		}
	})

	t.Run("Missing time rejects whole rule", func(t *testing.T) {
		actions := n.Actions([]payload.RawAction{
			raw("actions", map[string]any{
				"event_name":  "朝の体操",
				"repeat_rule": map[string]any{"byDay": []any{"MO"}},
			}),
		}, "")

		if actions[0].RepeatRule != nil {
			t.Errorf("partial rule must be nil, got %+v", actions[0].RepeatRule)
		}
	})

	t.Run("Empty byDay rejects whole rule", func(t *testing.T) {
		actions := n.Actions([]payload.RawAction{
			raw("actions", map[string]any{
				"event_name":  "朝の体操",
				"repeat_rule": map[string]any{"byDay": []any{}, "time": "08:30"},
			}),
		}, "")

		if actions[0].RepeatRule != nil {
			t.Errorf("ruleless byDay must be nil, got %+v", actions[0].RepeatRule)
		}
	})

	t.Run("Unknown weekday codes are dropped", func(t *testing.T) {
		actions := n.Actions([]payload.RawAction{
			raw("actions", map[string]any{
				"event_name": "朝の体操",
				"repeat_rule": map[string]any{
					"byDay": []any{"MO", "XX"},
					"time":  "08:30",
				},
			}),
		}, "")

		rr := actions[0].RepeatRule
		if rr == nil || len(rr.ByDay) != 1 || rr.ByDay[0] != "MO" {
			t.Errorf("repeat rule = %+v", rr)
		}
	})
}
