package payload_test

import (
	"testing"

	"newsletter-hub/internal/newsletter/payload"
)

func TestAdapt(t *testing.T) {
	t.Run("Header shape", func(t *testing.T) {
		m := payload.Parse(`{
			"header": {"title": "7月 ひまわり組だより", "class_name": "ひまわり組", "issue_month": "2025-07"},
			"overview": "夏の行事のお知らせです。",
			"key_points": ["プール開き", "七夕会"],
			"actions": [{"type": "event", "event_name": "プール開き", "event_date": "2025-07-05"}],
			"infos": [{"title": "保健だより", "summary": "熱中症に注意"}]
		}`)

		if got := payload.AdapterName(m); got != "header" {
			t.Fatalf("adapter = %q, want header", got)
		}

		doc := payload.Adapt(m)
		if doc.Title != "7月 ひまわり組だより" || doc.ClassName != "ひまわり組" || doc.IssueMonth != "2025-07" {
			t.Errorf("header fields not mapped: %+v", doc)
		}
		if len(doc.Actions) != 1 || doc.Actions[0].Source != "actions" {
			t.Errorf("expected 1 action from actions array, got %+v", doc.Actions)
		}
		if len(doc.Infos) != 1 || doc.Infos[0].Title != "保健だより" {
			t.Errorf("infos not mapped: %+v", doc.Infos)
		}
		if len(doc.KeyPoints) != 2 {
			t.Errorf("key points not mapped: %+v", doc.KeyPoints)
		}
	})

	t.Run("Split shape with todos and events", func(t *testing.T) {
		m := payload.Parse(`{
			"title": "園だより",
			"summary": "今月の予定",
			"todos": [{"name": "体操服の記名", "deadline": "2025-07-10"}],
			"events": [{"name": "夕涼み会", "date": "2025-07-20"}]
		}`)

		if got := payload.AdapterName(m); got != "split" {
			t.Fatalf("adapter = %q, want split", got)
		}

		doc := payload.Adapt(m)
		if doc.Title != "園だより" || doc.Overview != "今月の予定" {
			t.Errorf("flat header fields not mapped: %+v", doc)
		}
		if len(doc.Actions) != 2 {
			t.Fatalf("expected 2 actions, got %d", len(doc.Actions))
		}
		if doc.Actions[0].Source != "todos" || doc.Actions[1].Source != "events" {
			t.Errorf("sources = %q, %q", doc.Actions[0].Source, doc.Actions[1].Source)
		}
	})

	t.Run("Flat shape with tasks", func(t *testing.T) {
		m := payload.Parse(`{"title": "おたより", "tasks": [{"title": "遠足費の集金"}]}`)

		if got := payload.AdapterName(m); got != "flat" {
			t.Fatalf("adapter = %q, want flat", got)
		}

		doc := payload.Adapt(m)
		if len(doc.Actions) != 1 || doc.Actions[0].Source != "tasks" {
			t.Errorf("expected tasks array collected, got %+v", doc.Actions)
		}
	})

	t.Run("Empty map yields zero document", func(t *testing.T) {
		doc := payload.Adapt(map[string]any{})
		if doc.Title != "" || len(doc.Actions) != 0 || len(doc.Infos) != 0 {
			t.Errorf("expected zero document, got %+v", doc)
		}
	})

	t.Run("Non-map array entries are skipped", func(t *testing.T) {
		m := payload.Parse(`{"actions": ["not an object", {"event_name": "音楽会"}]}`)
		doc := payload.Adapt(m)
		if len(doc.Actions) != 1 {
			t.Errorf("expected 1 action, got %d", len(doc.Actions))
		}
	})
}

func TestRawActionFallbackChains(t *testing.T) {
	a := payload.RawAction{
		Source: "todos",
		Fields: map[string]any{
			"deadline": "2025-07-10",
			"items":    []any{"水筒", "帽子", 42},
			"done":     true,
			"weight":   0.9,
			"repeat_rule": map[string]any{
				"byDay": []any{"MO", "WE"},
				"time":  "08:30",
			},
		},
	}

	if got := a.Str("due_date", "deadline", "dueDate"); got != "2025-07-10" {
		t.Errorf("Str chain = %q", got)
	}
	if got := a.Str("missing", "also_missing"); got != "" {
		t.Errorf("Str on missing keys = %q", got)
	}
	if items := a.Strings("items"); len(items) != 2 {
		t.Errorf("Strings should skip non-strings, got %v", items)
	}
	if !a.Bool("done") {
		t.Errorf("Bool(done) = false")
	}
	if f, ok := a.Float("weight"); !ok || f != 0.9 {
		t.Errorf("Float(weight) = %v, %v", f, ok)
	}
	if m := a.Map("repeat_rule"); m == nil {
		t.Errorf("Map(repeat_rule) = nil")
	}
}
