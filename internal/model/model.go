package model

import "strings"

// DateLayout is the wire format for due dates (ISO calendar date, no time part).
const DateLayout = "2006-01-02"

type SortField string

const (
	SortDueDate  SortField = "due_date"
	SortTitle    SortField = "title"
	SortAssignee SortField = "assignee"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

func ValidSortField(f SortField) bool {
	switch f {
	case SortDueDate, SortTitle, SortAssignee:
		return true
	}
	return false
}

func ValidSortOrder(o SortOrder) bool {
	return o == OrderAsc || o == OrderDesc
}

// Task is the record store's unit of state. IDs are assigned by the server at
// creation and immutable afterwards.
type Task struct {
	ID        int64  `json:"id"`
	DueDate   string `json:"due_date"` // YYYY-MM-DD
	Title     string `json:"title"`
	Assignee  string `json:"assignee"`
	Completed bool   `json:"completed"`
	Favorite  bool   `json:"favorite"`
}

// TaskDraft holds the editable fields before they become (or replace) a Task.
// Used both by the create form and by inline-edit staging.
type TaskDraft struct {
	DueDate  string `json:"due_date"`
	Title    string `json:"title"`
	Assignee string `json:"assignee"`
}

// Trimmed returns the draft with all fields whitespace-trimmed.
func (d TaskDraft) Trimmed() TaskDraft {
	return TaskDraft{
		DueDate:  strings.TrimSpace(d.DueDate),
		Title:    strings.TrimSpace(d.Title),
		Assignee: strings.TrimSpace(d.Assignee),
	}
}

// Valid reports whether the draft may be submitted: all three fields non-empty
// after trimming. The client never sends a write that violates this.
func (d TaskDraft) Valid() bool {
	t := d.Trimmed()
	return t.DueDate != "" && t.Title != "" && t.Assignee != ""
}

// DraftOf stages a task's editable fields.
func DraftOf(t Task) TaskDraft {
	return TaskDraft{DueDate: t.DueDate, Title: t.Title, Assignee: t.Assignee}
}

// ViewConfig is the process-wide list configuration. It survives restarts:
// the JSON tags below are the durable client-storage keys.
type ViewConfig struct {
	Sort           SortField `json:"sort"`
	Order          SortOrder `json:"order"`
	AssigneeFilter string    `json:"assigneeFilter"`
	ShowCompleted  bool      `json:"showCompleted"`

	// Theme is presentation-only: "auto", "light" or "dark".
	Theme string `json:"uiTheme"`
}

func DefaultViewConfig() ViewConfig {
	return ViewConfig{
		Sort:  SortDueDate,
		Order: OrderAsc,
		Theme: "auto",
	}
}

// Normalize repairs out-of-range values loaded from durable storage.
func (c ViewConfig) Normalize() ViewConfig {
	if !ValidSortField(c.Sort) {
		c.Sort = SortDueDate
	}
	if !ValidSortOrder(c.Order) {
		c.Order = OrderAsc
	}
	switch c.Theme {
	case "auto", "light", "dark":
	default:
		c.Theme = "auto"
	}
	return c
}
