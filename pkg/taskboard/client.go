package taskboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client is the HTTP wrapper for the family task-board REST API.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// NewClient creates a new task-board HTTP client.
func NewClient(baseURL, accessToken string) *Client {
	return &Client{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient:  &http.Client{},
	}
}

// CreateTask creates a single task via POST /api/v1/tasks.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*BoardTask, error) {
	url := fmt.Sprintf("%s/api/v1/tasks", c.baseURL)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal create task request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build create task request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.accessToken))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call task-board create API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("task-board API create error %d: %s", resp.StatusCode, string(raw))
	}

	var task BoardTask
	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return nil, fmt.Errorf("failed to decode task-board create response: %w", err)
	}
	return &task, nil
}

// CreateTasksBatch creates several tasks via POST /api/v1/tasks:batch.
func (c *Client) CreateTasksBatch(ctx context.Context, req CreateTasksBatchRequest) ([]BoardTask, error) {
	url := fmt.Sprintf("%s/api/v1/tasks:batch", c.baseURL)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build batch request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.accessToken))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call task-board batch API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("task-board API batch error %d: %s", resp.StatusCode, string(raw))
	}

	var batchResp struct {
		Tasks []BoardTask `json:"tasks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&batchResp); err != nil {
		return nil, fmt.Errorf("failed to decode task-board batch response: %w", err)
	}
	return batchResp.Tasks, nil
}

// GetTask fetches a single task by its ID.
func (c *Client) GetTask(ctx context.Context, id string) (*BoardTask, error) {
	url := fmt.Sprintf("%s/api/v1/tasks/%s", c.baseURL, id)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build get task request: %w", err)
	}
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.accessToken))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call task-board get API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("task-board API get error %d: %s", resp.StatusCode, string(raw))
	}

	var task BoardTask
	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return nil, fmt.Errorf("failed to decode task-board get response: %w", err)
	}
	return &task, nil
}

// ---- Request/Response types scoped to this package ----

// CreateTaskRequest is the body for POST /api/v1/tasks.
type CreateTaskRequest struct {
	Title          string   `json:"title"`
	DueAt          *string  `json:"dueAt,omitempty"`
	IsContinuation bool     `json:"isContinuation"`
	RepeatByDay    []string `json:"repeatByDay,omitempty"`
	RepeatTime     string   `json:"repeatTime,omitempty"`
	AssigneeCid    string   `json:"assigneeCid"`
	FamilyID       string   `json:"familyId"`
}

// CreateTasksBatchRequest is the body for POST /api/v1/tasks:batch.
type CreateTasksBatchRequest struct {
	Tasks []CreateTaskRequest `json:"tasks"`
}

// BoardTask is the task-board API task object.
type BoardTask struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	DueAt       *string `json:"dueAt"`
	AssigneeCid string  `json:"assigneeCid"`
	Completed   bool    `json:"completed"`
	CreateTime  string  `json:"createTime"`
	UpdateTime  string  `json:"updateTime"`
}
