package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/model"
)

type listResultMsg struct {
	token int
	tasks []model.Task
	err   error
}

type assigneeIndexMsg struct {
	token int
	tasks []model.Task
	err   error
}

type favoriteIndexMsg struct {
	token int
	tasks []model.Task
	err   error
}

type mutationDoneMsg struct {
	op       string // create|delete|complete|favorite
	favorite bool   // final favorite value, op == favorite only
	err      error
}

type saveDoneMsg struct {
	err error
}

type noticeExpireMsg struct {
	seq int
}

type holidaysMsg struct {
	days map[string]string
}

// refreshCmd opens a refresh round on the engine and fans out the primary
// list call plus the two auxiliary index calls. All three carry the round's
// token; the engine discards anything stale.
func (m appModel) refreshCmd() tea.Cmd {
	token := m.engine.BeginRefresh()
	cfg := m.engine.Config()
	client := m.client

	primary := func() tea.Msg {
		tasks, err := client.List(context.Background(), cfg.Sort, cfg.Order, cfg.AssigneeFilter)
		return listResultMsg{token: token, tasks: tasks, err: err}
	}
	// Unfiltered, assignee-sorted: feeds the assignee options index.
	byAssignee := func() tea.Msg {
		tasks, err := client.List(context.Background(), model.SortAssignee, model.OrderAsc, "")
		return assigneeIndexMsg{token: token, tasks: tasks, err: err}
	}
	// Unfiltered, title-sorted: feeds the favorites index.
	byTitle := func() tea.Msg {
		tasks, err := client.List(context.Background(), model.SortTitle, model.OrderAsc, "")
		return favoriteIndexMsg{token: token, tasks: tasks, err: err}
	}
	return tea.Batch(primary, byAssignee, byTitle)
}

func (m appModel) createCmd(draft model.TaskDraft) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		_, err := client.Create(context.Background(), draft.Trimmed())
		return mutationDoneMsg{op: "create", err: err}
	}
}

func (m appModel) deleteCmd(id int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.Delete(context.Background(), id)
		return mutationDoneMsg{op: "delete", err: err}
	}
}

// toggleCompletedCmd sends the full task back with completed flipped.
func (m appModel) toggleCompletedCmd(t model.Task) tea.Cmd {
	client := m.client
	t.Completed = !t.Completed
	return func() tea.Msg {
		_, err := client.Update(context.Background(), t.ID, t)
		return mutationDoneMsg{op: "complete", err: err}
	}
}

func (m appModel) toggleFavoriteCmd(t model.Task) tea.Cmd {
	client := m.client
	t.Favorite = !t.Favorite
	on := t.Favorite
	return func() tea.Msg {
		_, err := client.Update(context.Background(), t.ID, t)
		return mutationDoneMsg{op: "favorite", favorite: on, err: err}
	}
}

func (m appModel) saveEditCmd(payload model.Task) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		_, err := client.Update(context.Background(), payload.ID, payload)
		return saveDoneMsg{err: err}
	}
}

func noticeExpireCmd(seq int) tea.Cmd {
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpireMsg{seq: seq}
	})
}

func (m appModel) fetchHolidaysCmd() tea.Cmd {
	if m.holidays == nil {
		return nil
	}
	c := m.holidays
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return holidaysMsg{days: c.Fetch(ctx)}
	}
}
