package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/api"
	"taskdeck/internal/model"
	"taskdeck/internal/state"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case listResultMsg:
		if m.engine.ApplyList(msg.token, msg.tasks, msg.err) {
			// Fresh collection: the filtered set's identity changed.
			m.resetPage()
		}
		return m, nil

	case assigneeIndexMsg:
		m.engine.ApplyAssigneeIndex(msg.token, msg.tasks, msg.err)
		return m, nil

	case favoriteIndexMsg:
		m.engine.ApplyFavoriteIndex(msg.token, msg.tasks, msg.err)
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			m.engine.FailMutation(msg.err)
			return m, nil
		}
		cmds := []tea.Cmd{m.refreshCmd()}
		if msg.op == "favorite" {
			text := "Removed from favorites"
			if msg.favorite {
				text = "Added to favorites"
			}
			seq := m.engine.SetNotice(text)
			cmds = append(cmds, noticeExpireCmd(seq))
		}
		return m, tea.Batch(cmds...)

	case saveDoneMsg:
		m.edit.FinishSave()
		if msg.err != nil {
			m.engine.FailMutation(msg.err)
			return m, nil
		}
		return m, m.refreshCmd()

	case noticeExpireMsg:
		m.engine.ExpireNotice(msg.seq)
		return m, nil

	case holidaysMsg:
		m.holidayNames = msg.days
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, whatever is focused.
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.mode {
	case modeHelp:
		// Any key closes the overlay.
		m.mode = modeList
		return m, nil
	case modeCreate:
		return m.handleCreateKey(msg)
	case modeFilter:
		return m.handleFilterKey(msg)
	}

	if m.edit.Phase() == state.PhaseEditing {
		return m.handleEditKey(msg)
	}
	return m.handleListKey(msg)
}

func (m appModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		m.moveCursor(-1)
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		return m, nil

	case "r":
		return m, m.refreshCmd()

	case "s":
		return m.toggleSort(model.SortDueDate)
	case "t":
		return m.toggleSort(model.SortTitle)
	case "a":
		return m.toggleSort(model.SortAssignee)

	case "v":
		m.engine.SetShowCompleted(!m.engine.Config().ShowCompleted)
		// View-only change, but the filtered set's identity changed.
		m.resetPage()
		return m, nil

	case "T":
		m.engine.SetTheme(nextTheme(m.engine.Config().Theme))
		applyThemePreference(m.engine.Config().Theme)
		return m, nil

	case "/":
		m.mode = modeFilter
		m.filterInput.SetValue(m.engine.Config().AssigneeFilter)
		m.filterInput.CursorEnd()
		m.filterInput.Focus()
		return m, nil

	case "n":
		m.mode = modeCreate
		m.createFocus = createFieldDue
		for i := range m.createInputs {
			m.createInputs[i].SetValue("")
			m.createInputs[i].Blur()
		}
		m.createInputs[m.createFocus].Focus()
		return m, nil

	case "enter", "e":
		return m.beginEdit(state.FieldTitle)
	case "D":
		return m.beginEdit(state.FieldDueDate)
	case "A":
		return m.beginEdit(state.FieldAssignee)

	case "c", " ":
		if t, ok := m.cursorTask(); ok {
			return m, m.toggleCompletedCmd(t)
		}
		return m, nil

	case "f":
		if t, ok := m.cursorTask(); ok {
			return m, m.toggleFavoriteCmd(t)
		}
		return m, nil

	case "d":
		if t, ok := m.cursorTask(); ok {
			return m, m.deleteCmd(t.ID)
		}
		return m, nil

	case "?":
		m.mode = modeHelp
		return m, nil
	}

	return m, nil
}

func (m appModel) toggleSort(field model.SortField) (tea.Model, tea.Cmd) {
	if !m.engine.ToggleSort(field) {
		return m, nil
	}
	return m, m.refreshCmd()
}

func (m appModel) beginEdit(field state.EditField) (tea.Model, tea.Cmd) {
	t, ok := m.cursorTask()
	if !ok {
		return m, nil
	}
	if !m.edit.Begin(t, field) {
		return m, nil
	}
	m.loadEditInput()
	return m, nil
}

// loadEditInput points the inline input at the session's focused field.
func (m *appModel) loadEditInput() {
	sess, ok := m.edit.Session()
	if !ok {
		return
	}
	switch sess.Field {
	case state.FieldDueDate:
		m.editInput.Placeholder = "YYYY-MM-DD"
		m.editInput.SetValue(sess.Draft.DueDate)
	case state.FieldTitle:
		m.editInput.Placeholder = "Title"
		m.editInput.SetValue(sess.Draft.Title)
	case state.FieldAssignee:
		m.editInput.Placeholder = "Assignee"
		m.editInput.SetValue(sess.Draft.Assignee)
	}
	m.editInput.CursorEnd()
	m.editInput.Focus()
}

func (m appModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sess, ok := m.edit.Session()
	if !ok {
		return m.handleListKey(msg)
	}

	switch msg.String() {
	case "esc":
		m.edit.Cancel()
		m.editInput.Blur()
		return m, nil

	case "tab":
		// Stage the current input, then move focus to the next field on the
		// same row. Unsaved sibling drafts are retained.
		m.edit.SetValue(m.editInput.Value())
		if t, ok := m.taskByID(sess.RowID); ok {
			m.edit.Begin(t, nextEditField(sess.Field))
			m.loadEditInput()
		}
		return m, nil

	case "enter":
		return m.commitEdit()
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	m.edit.SetValue(m.editInput.Value())
	return m, cmd
}

func (m appModel) commitEdit() (tea.Model, tea.Cmd) {
	sess, ok := m.edit.Session()
	if !ok {
		return m, nil
	}
	m.edit.SetValue(m.editInput.Value())
	m.editInput.Blur()

	original, ok := m.taskByID(sess.RowID)
	if !ok {
		// Row vanished under the edit (deleted elsewhere); drop the session.
		m.edit.Cancel()
		return m, nil
	}

	decision, payload, err := m.edit.Commit(original)
	if err != nil {
		m.engine.FailMutation(err)
		return m, nil
	}
	if decision == state.CommitSave {
		return m, m.saveEditCmd(payload)
	}
	return m, nil
}

func nextEditField(f state.EditField) state.EditField {
	switch f {
	case state.FieldDueDate:
		return state.FieldTitle
	case state.FieldTitle:
		return state.FieldAssignee
	default:
		return state.FieldDueDate
	}
}

func (m appModel) handleCreateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		return m, nil

	case "tab", "down":
		m.setCreateFocus((m.createFocus + 1) % createFieldCount)
		return m, nil
	case "shift+tab", "up":
		m.setCreateFocus((m.createFocus + createFieldCount - 1) % createFieldCount)
		return m, nil

	case "enter":
		draft := model.TaskDraft{
			DueDate:  m.createInputs[createFieldDue].Value(),
			Title:    m.createInputs[createFieldTitle].Value(),
			Assignee: m.createInputs[createFieldAssignee].Value(),
		}
		if !draft.Valid() {
			m.engine.FailMutation(&api.ValidationError{
				Msg: "Due date, title and assignee are all required.",
			})
			return m, nil
		}
		if !validDate(draft.Trimmed().DueDate) {
			m.engine.FailMutation(&api.ValidationError{Msg: "Due date must be YYYY-MM-DD."})
			return m, nil
		}
		m.mode = modeList
		m.engine.ClearError()
		return m, m.createCmd(draft)
	}

	var cmd tea.Cmd
	m.createInputs[m.createFocus], cmd = m.createInputs[m.createFocus].Update(msg)
	return m, cmd
}

func (m *appModel) setCreateFocus(i int) {
	m.createInputs[m.createFocus].Blur()
	m.createFocus = i
	m.createInputs[m.createFocus].Focus()
}

func (m appModel) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.filterInput.Blur()
		return m, nil

	case "enter":
		m.mode = modeList
		m.filterInput.Blur()
		if m.engine.SetAssigneeFilter(strings.TrimSpace(m.filterInput.Value())) {
			return m, m.refreshCmd()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}
