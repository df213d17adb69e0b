// Package state holds the two owned state containers of the client: the view
// state engine (task collection + list configuration) and the inline-edit
// coordinator. Both are plain single-goroutine state machines; the event loop
// (Bubble Tea) delivers every transition, so no locking is involved.
package state

import (
	"taskdeck/internal/api"
	"taskdeck/internal/model"
	"taskdeck/internal/view"
)

// Engine owns the authoritative in-memory task collection, the view
// configuration and the derived indices.
//
// Refreshes are tokened: BeginRefresh hands out a monotonically increasing
// token and every Apply* callback must present it back. A response carrying
// anything but the latest token is stale (a newer refresh was started while it
// was in flight) and is discarded wholesale. That token check is the only
// cancellation mechanism; the underlying requests are never aborted.
type Engine struct {
	tasks   []model.Task
	cfg     model.ViewConfig
	loading bool
	err     string

	refreshSeq int

	assigneeOptions []string
	favoriteTitles  map[string][]string

	notice    string
	noticeSeq int

	// persist is called after every config change; nil disables persistence
	// (tests). Failures are ignored: config storage is best-effort.
	persist func(model.ViewConfig)
}

func NewEngine(cfg model.ViewConfig, persist func(model.ViewConfig)) *Engine {
	return &Engine{cfg: cfg.Normalize(), persist: persist}
}

func (e *Engine) Tasks() []model.Task                { return e.tasks }
func (e *Engine) Config() model.ViewConfig           { return e.cfg }
func (e *Engine) Loading() bool                      { return e.loading }
func (e *Engine) Err() string                        { return e.err }
func (e *Engine) Notice() string                     { return e.notice }
func (e *Engine) AssigneeOptions() []string          { return e.assigneeOptions }
func (e *Engine) FavoriteTitles() map[string][]string { return e.favoriteTitles }

// BeginRefresh opens a new refresh round: loading on, error cleared, and a
// fresh token that supersedes every earlier one.
func (e *Engine) BeginRefresh() int {
	e.refreshSeq++
	e.loading = true
	e.err = ""
	return e.refreshSeq
}

func (e *Engine) latest(token int) bool { return token == e.refreshSeq }

// ApplyList lands the primary list response. Stale tokens change nothing and
// return false. For the latest token, loading always clears; on success the
// collection is replaced wholesale (full resynchronization, no merge), on
// failure the previous collection stays on screen and only err is set.
func (e *Engine) ApplyList(token int, tasks []model.Task, err error) bool {
	if !e.latest(token) {
		return false
	}
	e.loading = false
	if err != nil {
		e.err = api.UserMessage(err)
		return false
	}
	e.tasks = tasks
	return true
}

// ApplyAssigneeIndex lands the auxiliary assignee-sorted fetch. Failures are
// swallowed: a missing index degrades the filter dropdown, never the list.
func (e *Engine) ApplyAssigneeIndex(token int, tasks []model.Task, err error) {
	if !e.latest(token) || err != nil {
		return
	}
	e.assigneeOptions = view.AssigneeOptions(tasks)
}

// ApplyFavoriteIndex lands the auxiliary title-sorted fetch; same silent
// degradation as ApplyAssigneeIndex.
func (e *Engine) ApplyFavoriteIndex(token int, tasks []model.Task, err error) {
	if !e.latest(token) || err != nil {
		return
	}
	e.favoriteTitles = view.FavoriteTitlesByAssignee(tasks)
}

// ToggleSort is the sole sort-control entry point: same field flips the
// order, a new field resets to ascending. Always requires a refresh.
func (e *Engine) ToggleSort(field model.SortField) bool {
	if !model.ValidSortField(field) {
		return false
	}
	if e.cfg.Sort == field {
		if e.cfg.Order == model.OrderAsc {
			e.cfg.Order = model.OrderDesc
		} else {
			e.cfg.Order = model.OrderAsc
		}
	} else {
		e.cfg.Sort = field
		e.cfg.Order = model.OrderAsc
	}
	e.saveConfig()
	return true
}

// SetAssigneeFilter reports true when the filter actually changed (and a
// refresh is therefore due).
func (e *Engine) SetAssigneeFilter(filter string) bool {
	if e.cfg.AssigneeFilter == filter {
		return false
	}
	e.cfg.AssigneeFilter = filter
	e.saveConfig()
	return true
}

// SetShowCompleted never triggers a fetch; the derived view recomputes from
// what is already in memory.
func (e *Engine) SetShowCompleted(show bool) bool {
	if e.cfg.ShowCompleted == show {
		return false
	}
	e.cfg.ShowCompleted = show
	e.saveConfig()
	return false
}

// SetTheme is cosmetic only; never a fetch trigger.
func (e *Engine) SetTheme(theme string) bool {
	if e.cfg.Theme == theme {
		return false
	}
	e.cfg.Theme = theme
	e.saveConfig()
	return false
}

// FailMutation records a create/delete/toggle failure. State is otherwise
// untouched; recovery is always a new explicit user action.
func (e *Engine) FailMutation(err error) {
	e.err = api.UserMessage(err)
}

func (e *Engine) ClearError() { e.err = "" }

// SetNotice replaces the transient notice and returns the timer sequence the
// expiry message must present. Replacing implicitly cancels the previous
// pending timer: its seq no longer matches.
func (e *Engine) SetNotice(text string) int {
	e.noticeSeq++
	e.notice = text
	return e.noticeSeq
}

// ExpireNotice clears the notice if seq is still current. A stale seq means a
// newer notice replaced this one; leave it alone.
func (e *Engine) ExpireNotice(seq int) bool {
	if seq != e.noticeSeq {
		return false
	}
	e.notice = ""
	return true
}

func (e *Engine) saveConfig() {
	if e.persist != nil {
		e.persist(e.cfg)
	}
}
