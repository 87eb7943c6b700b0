package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"newsletter-hub/internal/model"
	"newsletter-hub/internal/newsletter"
	"newsletter-hub/internal/newsletter/normalize"
	"newsletter-hub/internal/newsletter/title"
	"newsletter-hub/internal/newsletter/usecase"
	"newsletter-hub/internal/task"
	"newsletter-hub/internal/task/repository"
	"newsletter-hub/pkg/gcalendar"
	"newsletter-hub/pkg/gemini"
	"newsletter-hub/pkg/jpdate"
)

// mock dependencies

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

type mockBoardRepo struct {
	fail   bool
	pushed []model.Task
}

func (m *mockBoardRepo) PushTasks(ctx context.Context, familyID string, tasks []model.Task) ([]model.Task, error) {
	if m.fail {
		return nil, errors.New("board down")
	}
	m.pushed = append(m.pushed, tasks...)
	return tasks, nil
}

func (m *mockBoardRepo) GetTask(ctx context.Context, id string) (model.Task, error) {
	return model.Task{}, nil
}

type mockCalendarClient struct {
	fail    bool
	created []gcalendar.AllDayEventRequest
}

func (m *mockCalendarClient) CreateAllDayEvent(ctx context.Context, req gcalendar.AllDayEventRequest) (*gcalendar.Event, error) {
	if m.fail {
		return nil, errors.New("cal error")
	}
	m.created = append(m.created, req)
	return &gcalendar.Event{HtmlLink: "http://cal.link"}, nil
}

func newTestUseCase(llm gemini.IGemini, board *mockBoardRepo, cal *mockCalendarClient) newsletter.UseCase {
	fixedNow := func() time.Time {
		return time.Date(2025, time.July, 1, 9, 0, 0, 0, time.UTC)
	}
	dates := jpdate.NewResolverAt(fixedNow)

	seq := 0
	newID := func() string {
		seq++
		return "task-" + strconv.Itoa(seq)
	}

	var boardRepo repository.BoardRepository
	if board != nil {
		boardRepo = board
	}
	var calClient usecase.CalendarClient
	if cal != nil {
		calClient = cal
	}

	return usecase.New(
		&mockLogger{},
		llm,
		title.NewEngine(title.DefaultWeights()),
		normalize.New(dates),
		dates,
		task.NewGeneratorWith(dates, newID, fixedNow),
		boardRepo,
		calClient,
	)
}

func TestExtract(t *testing.T) {
	// LLM mock for the OCR-only path.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req gemini.GenerateRequest
		json.NewDecoder(r.Body).Decode(&req)
		prompt := req.Contents[0].Parts[0].Text

		if strings.Contains(prompt, "error_llm_500") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		// Fenced output exercises the markdown stripping path.
		payload := "```json\n{\"header\":{\"title\":\"運動会のお知らせ\",\"issue_month\":\"2025-07\"}," +
			"\"overview\":\"運動会の案内です。\"," +
			"\"actions\":[{\"event_name\":\"運動会\",\"type\":\"event\",\"event_date\":\"7/20\"}]}\n```"
		resp := gemini.GenerateResponse{
			Candidates: []gemini.Candidate{
				{Content: gemini.Content{Parts: []gemini.Part{{Text: payload}}}},
			},
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}))
	defer ts.Close()

	llmClient := gemini.NewClient("test-key")
	llmClient.SetAPIURL(ts.URL)

	sc := model.Scope{UserID: "u1", FamilyID: "f1"}

	t.Run("Payload Path", func(t *testing.T) {
		board := &mockBoardRepo{}
		cal := &mockCalendarClient{}
		uc := newTestUseCase(llmClient, board, cal)

		out, err := uc.Extract(context.Background(), sc, newsletter.ExtractInput{
			RawText: "ひまわり保育園\n7月\n園だより\n今月は夏祭りがあります。",
			AIPayload: map[string]any{
				"header": map[string]any{
					"title":       "園だより",
					"class_name":  "ひよこ組",
					"issue_month": "2025-07",
					"issue_date":  "2025年7月1日",
				},
				"overview":   "夏祭りと遠足のお知らせです。",
				"key_points": []any{"夏祭りは7月20日", "遠足の申込締切は8月末"},
				"actions": []any{
					map[string]any{"event_name": "夏祭り", "type": "event", "event_date": "7/20", "importance": "high", "items": []any{"水筒"}},
					map[string]any{"name": "夏祭り", "type": "todo", "items": []any{"タオル"}},
					map[string]any{"event_name": "遠足申込", "type": "todo", "due_date": "8-31"},
				},
				"infos": []any{
					map[string]any{"title": "プール開き", "summary": "水遊びが始まります。", "audience": "全園児"},
				},
			},
			ChildIDs: []string{"child-1", "child-2"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		n := out.Newsletter
		if n.Header.Title != "7月 園だより" {
			t.Errorf("expected title %q, got %q", "7月 園だより", n.Header.Title)
		}
		if n.Header.IssueMonth == nil || *n.Header.IssueMonth != "2025-07" {
			t.Errorf("expected issue month 2025-07, got %v", n.Header.IssueMonth)
		}
		if n.Header.IssueDate == nil || *n.Header.IssueDate != "2025-07-01" {
			t.Errorf("expected issue date 2025-07-01, got %v", n.Header.IssueDate)
		}
		if n.Overview != "夏祭りと遠足のお知らせです。" {
			t.Errorf("unexpected overview %q", n.Overview)
		}

		// Duplicate 夏祭り collapses to the dated event; sorted by date.
		if len(n.Actions) != 2 {
			t.Fatalf("expected 2 actions after dedup, got %d", len(n.Actions))
		}
		if n.Actions[0].EventName != "夏祭り" || n.Actions[0].Type != model.ActionEvent {
			t.Errorf("expected dated event first, got %+v", n.Actions[0])
		}
		if n.Actions[0].EventDate == nil || *n.Actions[0].EventDate != "2025-07-20" {
			t.Errorf("expected event date 2025-07-20, got %v", n.Actions[0].EventDate)
		}
		if n.Actions[1].DueDate == nil || *n.Actions[1].DueDate != "2025-08-31" {
			t.Errorf("expected due date 2025-08-31, got %v", n.Actions[1].DueDate)
		}

		if len(n.Infos) != 1 || n.Infos[0].Title != "プール開き" {
			t.Errorf("unexpected infos %+v", n.Infos)
		}

		if len(out.Tasks) != 2 {
			t.Fatalf("expected 2 tasks, got %d", len(out.Tasks))
		}
		if out.Tasks[0].DueAt == nil || *out.Tasks[0].DueAt != "2025-07-20" {
			t.Errorf("expected first task due 2025-07-20, got %v", out.Tasks[0].DueAt)
		}
		if out.Tasks[0].AssigneeCid != "child-1" {
			t.Errorf("expected first child assigned, got %q", out.Tasks[0].AssigneeCid)
		}

		if len(board.pushed) != 2 {
			t.Errorf("expected 2 tasks mirrored to board, got %d", len(board.pushed))
		}
		if len(cal.created) != 1 || cal.created[0].Date != "2025-07-20" {
			t.Errorf("expected 1 all-day calendar event for the dated action, got %+v", cal.created)
		}
	})

	t.Run("Board Failure Path (Graceful degradation)", func(t *testing.T) {
		board := &mockBoardRepo{fail: true}
		uc := newTestUseCase(llmClient, board, nil)

		out, err := uc.Extract(context.Background(), sc, newsletter.ExtractInput{
			AIPayload: map[string]any{
				"actions": []any{
					map[string]any{"event_name": "保護者会", "type": "event", "event_date": "2025-07-10"},
				},
			},
			ChildIDs: []string{"child-1"},
		})
		if err != nil {
			t.Fatalf("unexpected error on board fail (should gracefully degrade): %v", err)
		}
		if len(out.Tasks) != 1 {
			t.Errorf("expected 1 task despite board failure, got %d", len(out.Tasks))
		}
	})

	t.Run("Calendar Failure Path (Graceful degradation)", func(t *testing.T) {
		cal := &mockCalendarClient{fail: true}
		uc := newTestUseCase(llmClient, nil, cal)

		out, err := uc.Extract(context.Background(), sc, newsletter.ExtractInput{
			AIPayload: map[string]any{
				"actions": []any{
					map[string]any{"event_name": "保護者会", "type": "event", "event_date": "2025-07-10"},
				},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error on calendar fail (should gracefully degrade): %v", err)
		}
		if len(out.Newsletter.Actions) != 1 {
			t.Errorf("expected 1 action despite calendar failure, got %d", len(out.Newsletter.Actions))
		}
	})

	t.Run("Malformed Payload Path", func(t *testing.T) {
		uc := newTestUseCase(llmClient, nil, nil)

		out, err := uc.Extract(context.Background(), sc, newsletter.ExtractInput{
			AIPayload:      "```json\n{\"header\": broken\n```",
			IssueMonthHint: "2025-07",
		})
		if err != nil {
			t.Fatalf("malformed payload must degrade, not fail: %v", err)
		}

		n := out.Newsletter
		if n.Header.Title != "7月 おたより" {
			t.Errorf("expected fallback title %q, got %q", "7月 おたより", n.Header.Title)
		}
		if n.Overview != usecase.OverviewPlaceholder {
			t.Errorf("expected placeholder overview, got %q", n.Overview)
		}
		if len(n.Actions) != 0 || len(n.Infos) != 0 {
			t.Errorf("expected empty actions and infos, got %d/%d", len(n.Actions), len(n.Infos))
		}
		if len(out.Tasks) != 0 {
			t.Errorf("expected no tasks, got %d", len(out.Tasks))
		}
	})

	t.Run("OCR Only Path", func(t *testing.T) {
		uc := newTestUseCase(llmClient, nil, nil)

		out, err := uc.Extract(context.Background(), sc, newsletter.ExtractInput{
			RawText:  "運動会のお知らせ\n7月20日に運動会を開催します。",
			ChildIDs: []string{"child-1"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		n := out.Newsletter
		if n.Overview != "運動会の案内です。" {
			t.Errorf("unexpected overview %q", n.Overview)
		}
		if len(n.Actions) != 1 {
			t.Fatalf("expected 1 action, got %d", len(n.Actions))
		}
		if n.Actions[0].EventDate == nil || *n.Actions[0].EventDate != "2025-07-20" {
			t.Errorf("expected event date 2025-07-20, got %v", n.Actions[0].EventDate)
		}
		if len(out.Tasks) != 1 {
			t.Errorf("expected 1 task, got %d", len(out.Tasks))
		}
	})

	t.Run("LLM Failure Path (Graceful degradation)", func(t *testing.T) {
		uc := newTestUseCase(llmClient, nil, nil)

		out, err := uc.Extract(context.Background(), sc, newsletter.ExtractInput{
			RawText: "error_llm_500",
		})
		if err != nil {
			t.Fatalf("LLM failure must degrade, not fail: %v", err)
		}
		if out.Newsletter.Header.Title != "おたより" {
			t.Errorf("expected last-resort title, got %q", out.Newsletter.Header.Title)
		}
		if len(out.Newsletter.Actions) != 0 {
			t.Errorf("expected no actions, got %d", len(out.Newsletter.Actions))
		}
	})

	t.Run("No LLM Configured", func(t *testing.T) {
		uc := newTestUseCase(nil, nil, nil)

		out, err := uc.Extract(context.Background(), sc, newsletter.ExtractInput{
			RawText:        "7月\nひよこ組だより",
			IssueMonthHint: "2025-07",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Newsletter.Header.Title == "" {
			t.Error("expected inferred title even without an LLM")
		}
	})

	t.Run("Empty Input", func(t *testing.T) {
		uc := newTestUseCase(llmClient, nil, nil)

		_, err := uc.Extract(context.Background(), sc, newsletter.ExtractInput{})
		if !errors.Is(err, newsletter.ErrEmptyInput) {
			t.Errorf("expected ErrEmptyInput, got %v", err)
		}
	})
}
