package repository

import (
	"context"

	"newsletter-hub/internal/model"
)

// BoardRepository pushes derived tasks to the family task-board service.
type BoardRepository interface {
	// PushTasks creates the tasks on the board and returns them with
	// board-assigned identifiers.
	PushTasks(ctx context.Context, familyID string, tasks []model.Task) ([]model.Task, error)

	// GetTask fetches a single board task by id.
	GetTask(ctx context.Context, id string) (model.Task, error)
}
