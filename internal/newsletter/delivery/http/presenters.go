package http

import (
	"encoding/json"

	"newsletter-hub/internal/model"
	"newsletter-hub/internal/newsletter"
	"newsletter-hub/pkg/response"
)

// --- Request DTOs ---

type extractReq struct {
	RawText    string          `json:"raw_text"`
	AIPayload  json.RawMessage `json:"ai_payload"`
	IssueMonth string          `json:"issue_month" binding:"omitempty,len=7"`
	ChildIDs   []string        `json:"child_ids"`
}

func (r extractReq) toInput() newsletter.ExtractInput {
	var payload any
	if len(r.AIPayload) > 0 && string(r.AIPayload) != "null" {
		payload = []byte(r.AIPayload)
	}
	return newsletter.ExtractInput{
		RawText:        r.RawText,
		AIPayload:      payload,
		IssueMonthHint: r.IssueMonth,
		ChildIDs:       r.ChildIDs,
	}
}

// ---

type scanReq struct {
	Image      string   `json:"image" binding:"required"` // base64
	IssueMonth string   `json:"issue_month" binding:"omitempty,len=7"`
	ChildIDs   []string `json:"child_ids"`

	image []byte // decoded by processScanReq
}

func (r scanReq) toInput(rawText string) newsletter.ExtractInput {
	return newsletter.ExtractInput{
		RawText:        rawText,
		IssueMonthHint: r.IssueMonth,
		ChildIDs:       r.ChildIDs,
	}
}

// --- Response DTOs ---

type taskResp struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	DueAt          *string           `json:"dueAt"`
	IsContinuation bool              `json:"isContinuation"`
	RepeatRule     *model.RepeatRule `json:"repeatRule,omitempty"`
	AssigneeCid    string            `json:"assigneeCid"`
	Completed      bool              `json:"completed"`
	CreatedAt      response.DateTime `json:"createdAt"`
}

type extractResp struct {
	Newsletter model.CanonicalNewsletter `json:"newsletter"`
	Tasks      []taskResp                `json:"tasks"`
}

func (h *handler) newExtractResp(out newsletter.ExtractOutput) extractResp {
	tasks := make([]taskResp, len(out.Tasks))
	for i, t := range out.Tasks {
		tasks[i] = taskResp{
			ID:             t.ID,
			Title:          t.Title,
			DueAt:          t.DueAt,
			IsContinuation: t.IsContinuation,
			RepeatRule:     t.RepeatRule,
			AssigneeCid:    t.AssigneeCid,
			Completed:      t.Completed,
			CreatedAt:      response.DateTime(t.CreatedAt),
		}
	}
	return extractResp{
		Newsletter: out.Newsletter,
		Tasks:      tasks,
	}
}
