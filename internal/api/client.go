// Package api is the thin HTTP client over the record store's /todos surface.
//
// Four operations, one network call each. Outcomes are classified into the
// error taxonomy in errors.go. The client never retries on its own; a blind
// retry of create could duplicate rows, so callers re-fetch instead.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"taskdeck/internal/model"
)

type Client struct {
	baseURL string
	hc      *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		hc:      &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithHTTP is used by tests to inject a custom transport/timeout.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	c := NewClient(baseURL)
	if hc != nil {
		c.hc = hc
	}
	return c
}

// List fetches tasks ordered by the server. assigneeFilter is a substring
// match on the server side; empty means no filter.
func (c *Client) List(ctx context.Context, sort model.SortField, order model.SortOrder, assigneeFilter string) ([]model.Task, error) {
	q := url.Values{}
	q.Set("sort", string(sort))
	q.Set("order", string(order))
	if strings.TrimSpace(assigneeFilter) != "" {
		q.Set("assignee", assigneeFilter)
	}
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "/todos?"+q.Encode(), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create submits a new task. The server assigns the id; completed and
// favorite start false.
func (c *Client) Create(ctx context.Context, draft model.TaskDraft) (model.Task, error) {
	body := model.Task{
		DueDate:  draft.DueDate,
		Title:    draft.Title,
		Assignee: draft.Assignee,
	}
	var out model.Task
	if err := c.do(ctx, http.MethodPost, "/todos", body, &out); err != nil {
		return model.Task{}, err
	}
	return out, nil
}

// Update replaces every field of the task (minus id). Last write wins.
func (c *Client) Update(ctx context.Context, id int64, fields model.Task) (model.Task, error) {
	fields.ID = 0
	var out model.Task
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/todos/%d", id), fields, &out); err != nil {
		return model.Task{}, err
	}
	return out, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/todos/%d", id), nil, nil)
}

// do performs one round trip and classifies the outcome.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	op := method + " " + path

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &TransportError{Op: op, Err: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServerRejection{Status: resp.StatusCode, Detail: detailOf(raw)}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return &TransportError{Op: op, Err: err}
		}
	}
	return nil
}

// detailOf extracts the optional {"detail": "..."} field from an error body.
func detailOf(raw []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Detail)
}
