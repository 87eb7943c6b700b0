package model

// ActionType distinguishes calendar events from generic to-dos.
type ActionType string

const (
	ActionEvent ActionType = "event"
	ActionTodo  ActionType = "todo"
)

// Importance levels attached to extracted actions.
const (
	ImportanceHigh   = "high"
	ImportanceMedium = "medium"
	ImportanceLow    = "low"
)

// NewsletterHeader is the identifying block of a scanned newsletter.
// Title is never empty in a canonical record: inference guarantees a
// non-generic fallback.
type NewsletterHeader struct {
	Title      string  `json:"title"`
	ClassName  *string `json:"class_name"`
	SchoolName *string `json:"school_name"`
	IssueMonth *string `json:"issue_month"` // YYYY-MM
	IssueDate  *string `json:"issue_date"`  // YYYY-MM-DD
}

// RepeatRule describes a recurring schedule. A rule is only present when
// both fields could be derived from the source; there are no partial rules.
type RepeatRule struct {
	ByDay []string `json:"byDay"` // subset of MO..SU
	Time  string   `json:"time"`  // HH:mm
}

// Confidence carries per-field heuristic certainty scores in [0,1].
type Confidence struct {
	Date  float64 `json:"date"`
	Due   float64 `json:"due"`
	Items float64 `json:"items"`
}

// Action is a single actionable item extracted from a newsletter.
// Within one canonical newsletter no two actions share the same
// normalized name key.
type Action struct {
	Type           ActionType  `json:"type"`
	EventName      string      `json:"event_name"`
	IsContinuation bool        `json:"is_continuation"`
	EventDate      *string     `json:"event_date"` // YYYY-MM-DD
	DueDate        *string     `json:"due_date"`   // YYYY-MM-DD
	Items          []string    `json:"items"`
	Fee            *string     `json:"fee"`
	RepeatRule     *RepeatRule `json:"repeat_rule"`
	Audience       *string     `json:"audience"`
	Importance     string      `json:"importance"`
	ActionRequired bool        `json:"action_required"`
	Notes          *string     `json:"notes"`
	Confidence     Confidence  `json:"confidence"`
}

// NewsletterInfo is an informational entry that never generates a task.
type NewsletterInfo struct {
	Title    string  `json:"title"`
	Summary  string  `json:"summary"`
	Audience *string `json:"audience"`
}

// CanonicalNewsletter is the single normalized shape all consumers rely
// on, regardless of how the AI payload was structured. Immutable after
// construction.
type CanonicalNewsletter struct {
	Header    NewsletterHeader `json:"header"`
	Overview  string           `json:"overview"`
	KeyPoints []string         `json:"key_points"`
	Actions   []Action         `json:"actions"`
	Infos     []NewsletterInfo `json:"infos"`
}
