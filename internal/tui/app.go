// Package tui is the presentation layer: a Bubble Tea program over the view
// state engine and the inline-edit coordinator. It renders derived views and
// delegates every mutation; nothing in here owns task state.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/api"
	"taskdeck/internal/holiday"
	"taskdeck/internal/model"
	"taskdeck/internal/state"
	"taskdeck/internal/view"
)

type uiMode int

const (
	modeList uiMode = iota
	modeCreate
	modeFilter
	modeHelp
)

// noticeTTL is how long the favorite added/removed notice stays on screen.
const noticeTTL = 2500 * time.Millisecond

// growThreshold: moving the cursor within this many rows of the end of the
// revealed page counts as the scroll-proximity signal.
const growThreshold = 5

const (
	createFieldDue = iota
	createFieldTitle
	createFieldAssignee
	createFieldCount
)

type appModel struct {
	client   *api.Client
	engine   *state.Engine
	edit     *state.EditCoordinator
	holidays *holiday.Client

	width  int
	height int

	mode    uiMode
	cursor  int
	visible int

	createInputs [createFieldCount]textinput.Model
	createFocus  int
	editInput    textinput.Model
	filterInput  textinput.Model
	spin         spinner.Model

	holidayNames map[string]string

	// now is swappable so tests can pin "today" for row classification.
	now func() time.Time
}

func newAppModel(client *api.Client, engine *state.Engine, holidays *holiday.Client) appModel {
	m := appModel{
		client:   client,
		engine:   engine,
		edit:     state.NewEditCoordinator(),
		holidays: holidays,
		visible:  view.PageSize,
		now:      time.Now,
	}

	placeholders := [createFieldCount]string{"YYYY-MM-DD", "Title", "Assignee"}
	for i := range m.createInputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 200
		m.createInputs[i] = ti
	}

	m.editInput = textinput.New()
	m.editInput.CharLimit = 200

	m.filterInput = textinput.New()
	m.filterInput.Placeholder = "Assignee contains…"
	m.filterInput.CharLimit = 100

	m.spin = spinner.New(spinner.WithSpinner(spinner.Dot))
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.spin.Tick, m.fetchHolidaysCmd())
}

// filtered is the completed-filtered set the page window applies to.
func (m appModel) filtered() []model.Task {
	return view.VisibleTasks(m.engine.Tasks(), m.engine.Config().ShowCompleted)
}

// page is the rendered slice.
func (m appModel) page() []model.Task {
	return view.Page(m.filtered(), m.visible)
}

func (m appModel) cursorTask() (model.Task, bool) {
	p := m.page()
	if m.cursor < 0 || m.cursor >= len(p) {
		return model.Task{}, false
	}
	return p[m.cursor], true
}

func (m appModel) taskByID(id int64) (model.Task, bool) {
	for _, t := range m.engine.Tasks() {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// resetPage re-anchors the reveal window after the filtered set's identity
// changed (new fetch, show-completed toggle).
func (m *appModel) resetPage() {
	n := len(m.filtered())
	m.visible = view.ClampVisible(view.PageSize, n)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *appModel) moveCursor(delta int) {
	n := len(m.page())
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	// Approaching the bottom of the revealed page grows the window.
	if m.cursor >= m.visible-growThreshold {
		m.visible = view.GrowVisible(m.visible, len(m.filtered()))
	}
}
