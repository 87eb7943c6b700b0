package taskboard

import (
	"context"
	"fmt"
	"time"

	"newsletter-hub/internal/model"
	"newsletter-hub/internal/task/repository"
	"newsletter-hub/pkg/log"
	"newsletter-hub/pkg/taskboard"
)

type boardRepository struct {
	client *taskboard.Client
	l      log.Logger
}

// New creates a BoardRepository backed by the task-board HTTP client.
func New(client *taskboard.Client, l log.Logger) repository.BoardRepository {
	return &boardRepository{
		client: client,
		l:      l,
	}
}

func (r *boardRepository) PushTasks(ctx context.Context, familyID string, tasks []model.Task) ([]model.Task, error) {
	if len(tasks) == 0 {
		return nil, nil
	}

	req := taskboard.CreateTasksBatchRequest{
		Tasks: make([]taskboard.CreateTaskRequest, len(tasks)),
	}
	for i, t := range tasks {
		req.Tasks[i] = toCreateRequest(familyID, t)
	}

	created, err := r.client.CreateTasksBatch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("push tasks: %w", err)
	}

	out := make([]model.Task, len(created))
	for i, bt := range created {
		out[i] = fromBoardTask(bt)
	}
	return out, nil
}

func (r *boardRepository) GetTask(ctx context.Context, id string) (model.Task, error) {
	bt, err := r.client.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, fmt.Errorf("get task: %w", err)
	}
	return fromBoardTask(*bt), nil
}

func toCreateRequest(familyID string, t model.Task) taskboard.CreateTaskRequest {
	req := taskboard.CreateTaskRequest{
		Title:          t.Title,
		DueAt:          t.DueAt,
		IsContinuation: t.IsContinuation,
		AssigneeCid:    t.AssigneeCid,
		FamilyID:       familyID,
	}
	if t.RepeatRule != nil {
		req.RepeatByDay = t.RepeatRule.ByDay
		req.RepeatTime = t.RepeatRule.Time
	}
	return req
}

func fromBoardTask(bt taskboard.BoardTask) model.Task {
	created, _ := time.Parse(time.RFC3339, bt.CreateTime)
	return model.Task{
		ID:          bt.ID,
		Title:       bt.Title,
		DueAt:       bt.DueAt,
		AssigneeCid: bt.AssigneeCid,
		Completed:   bt.Completed,
		CreatedAt:   created,
	}
}
