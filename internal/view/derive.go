// Package view computes everything the list screen renders that is not stored
// directly: the visible subset, per-row due-date classification, the
// incremental-reveal window, and the auxiliary indices (assignee options,
// favorite titles). All functions are pure; they never touch the network and
// never re-sort fetched tasks (row order is the server's contract).
package view

import (
	"sort"
	"time"

	"taskdeck/internal/model"
)

// PageSize is both the initial reveal window and the growth step per
// scroll-proximity signal.
const PageSize = 20

type RowClass int

const (
	ClassNormal RowClass = iota
	ClassDueSoon
	ClassOverdue
	ClassCompleted
)

// DaysUntilDue returns the whole-day distance from today's midnight to the
// due date's midnight. ok is false when the due date does not parse.
func DaysUntilDue(dueDate string, today time.Time) (int, bool) {
	due, err := time.Parse(model.DateLayout, dueDate)
	if err != nil {
		return 0, false
	}
	todayMid := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	dueMid := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	return int(dueMid.Sub(todayMid) / (24 * time.Hour)), true
}

// Classify maps a task to its row style. Completed wins regardless of date;
// otherwise: past due is overdue, 0..3 days out is due-soon.
func Classify(t model.Task, today time.Time) RowClass {
	if t.Completed {
		return ClassCompleted
	}
	days, ok := DaysUntilDue(t.DueDate, today)
	if !ok {
		return ClassNormal
	}
	switch {
	case days < 0:
		return ClassOverdue
	case days <= 3:
		return ClassDueSoon
	default:
		return ClassNormal
	}
}

// VisibleTasks applies the completed-rows filter, preserving server order.
func VisibleTasks(tasks []model.Task, showCompleted bool) []model.Task {
	if showCompleted {
		return tasks
	}
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// ClampVisible bounds a reveal window to the filtered set. A window below one
// page is brought back up to PageSize (or the set length, whichever is less).
func ClampVisible(visible, filteredLen int) int {
	if visible < PageSize {
		visible = PageSize
	}
	if visible > filteredLen {
		visible = filteredLen
	}
	return visible
}

// GrowVisible is the scroll-proximity signal: reveal one more page, capped.
func GrowVisible(visible, filteredLen int) int {
	return ClampVisible(visible+PageSize, filteredLen)
}

// Page is the rendered slice: the first visible rows of the filtered set.
func Page(filtered []model.Task, visible int) []model.Task {
	if visible < 0 {
		visible = 0
	}
	if visible > len(filtered) {
		visible = len(filtered)
	}
	return filtered[:visible]
}

// AssigneeOptions returns the sorted distinct non-empty assignees across the
// unfiltered list.
func AssigneeOptions(tasks []model.Task) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range tasks {
		if t.Assignee == "" || seen[t.Assignee] {
			continue
		}
		seen[t.Assignee] = true
		out = append(out, t.Assignee)
	}
	sort.Strings(out)
	return out
}

// FavoriteTitlesByAssignee maps each assignee to the sorted titles they have
// marked favorite, across the unfiltered list. Rows missing a title or an
// assignee never count as favorites.
func FavoriteTitlesByAssignee(tasks []model.Task) map[string][]string {
	out := map[string][]string{}
	seen := map[string]map[string]bool{}
	for _, t := range tasks {
		if !t.Favorite || t.Title == "" || t.Assignee == "" {
			continue
		}
		if seen[t.Assignee] == nil {
			seen[t.Assignee] = map[string]bool{}
		}
		if seen[t.Assignee][t.Title] {
			continue
		}
		seen[t.Assignee][t.Title] = true
		out[t.Assignee] = append(out[t.Assignee], t.Title)
	}
	for a := range out {
		sort.Strings(out[a])
	}
	return out
}
