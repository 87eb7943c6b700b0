package model

import "time"

// AssigneeUnassigned is the sentinel child id for tasks nobody has
// claimed yet; reassignment happens in the task-board service.
const AssigneeUnassigned = "unassigned"

// Task is a scheduling entity derived from one newsletter action.
// Tasks are mutable after creation (completion, reassignment) but that
// lifecycle belongs to the task-board service, not this pipeline.
type Task struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	DueAt          *string     `json:"dueAt"` // YYYY-MM-DD
	IsContinuation bool        `json:"isContinuation"`
	RepeatRule     *RepeatRule `json:"repeatRule"`
	AssigneeCid    string      `json:"assigneeCid"`
	Completed      bool        `json:"completed"`
	CreatedAt      time.Time   `json:"createdAt"`
}
