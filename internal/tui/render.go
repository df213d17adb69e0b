package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"taskdeck/internal/model"
	"taskdeck/internal/state"
	"taskdeck/internal/view"
)

func (m appModel) View() string {
	if m.mode == modeHelp {
		return m.helpView()
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")

	switch m.mode {
	case modeCreate:
		b.WriteString(m.createFormView())
	case modeFilter:
		b.WriteString("  Filter by assignee: " + m.filterInput.View() + "\n")
		b.WriteString(styleMuted().Render("  enter apply · esc cancel") + "\n")
	default:
		b.WriteString(m.listView())
	}

	b.WriteString(m.footerView())
	return b.String()
}

func (m appModel) headerView() string {
	cfg := m.engine.Config()
	arrow := "↑"
	if cfg.Order == model.OrderDesc {
		arrow = "↓"
	}
	head := fmt.Sprintf(" Taskdeck · sort %s %s", cfg.Sort, arrow)
	if cfg.AssigneeFilter != "" {
		head += fmt.Sprintf(" · assignee ~ %q", cfg.AssigneeFilter)
	}
	if cfg.ShowCompleted {
		head += " · showing completed"
	}
	return styleHeader().Render(head)
}

func (m appModel) statusView() string {
	switch {
	case m.engine.Err() != "":
		return styleError().Render(" ✗ " + m.engine.Err())
	case m.engine.Notice() != "":
		return styleNotice().Render(" ✓ " + m.engine.Notice())
	case m.engine.Loading():
		return " " + m.spin.View() + styleMuted().Render(" loading…")
	}
	return ""
}

func (m appModel) listView() string {
	filtered := m.filtered()
	page := view.Page(filtered, m.visible)
	if len(page) == 0 {
		return styleMuted().Render("  No tasks. Press n to create one.") + "\n"
	}

	today := m.now()
	savingID, saving := m.edit.SavingRowID()

	var b strings.Builder
	for i, t := range page {
		line := m.rowView(t, today, i == m.cursor)
		if saving && t.ID == savingID {
			line += styleMuted().Render("  saving…")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if rest := len(filtered) - len(page); rest > 0 {
		b.WriteString(styleMuted().Render(fmt.Sprintf("  …%d more (scroll to reveal)", rest)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m appModel) rowView(t model.Task, today time.Time, selected bool) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}

	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}

	star := " "
	if t.Favorite {
		star = lipgloss.NewStyle().Foreground(colorFavorite).Render("★")
	}

	due := t.DueDate
	if name, ok := m.holidayNames[t.DueDate]; ok && name != "" {
		due += " ⛩"
	}

	title := t.Title
	assignee := t.Assignee

	// Inline editor replaces the focused field of the row being edited.
	if sess, ok := m.edit.Session(); ok && m.edit.Phase() == state.PhaseEditing && sess.RowID == t.ID {
		field := m.editInput.View()
		switch sess.Field {
		case state.FieldDueDate:
			due = field
			title = sess.Draft.Title
			assignee = sess.Draft.Assignee
		case state.FieldTitle:
			title = field
			due = sess.Draft.DueDate
			assignee = sess.Draft.Assignee
		case state.FieldAssignee:
			assignee = field
			due = sess.Draft.DueDate
			title = sess.Draft.Title
		}
	}

	line := fmt.Sprintf("%s%s %s  %s  %s  @%s", cursor, check, star, due, title, assignee)
	line = fitWidth(line, m.width)

	st := m.rowStyle(view.Classify(t, today))
	if selected {
		st = st.Background(colorSelBg).Foreground(colorSelFg)
	}
	return st.Render(line)
}

func (m appModel) rowStyle(class view.RowClass) lipgloss.Style {
	switch class {
	case view.ClassOverdue:
		return lipgloss.NewStyle().Foreground(colorOverdue)
	case view.ClassDueSoon:
		return lipgloss.NewStyle().Foreground(colorDueSoon)
	case view.ClassCompleted:
		return lipgloss.NewStyle().Foreground(colorDone).Strikethrough(true)
	default:
		return lipgloss.NewStyle()
	}
}

// fitWidth pads or cuts a rendered line to the terminal width, ANSI-aware.
func fitWidth(line string, width int) string {
	if width <= 0 {
		return line
	}
	w := xansi.StringWidth(line)
	if w < width {
		return line + strings.Repeat(" ", width-w)
	}
	if w > width {
		return xansi.Cut(line, 0, width)
	}
	return line
}

func (m appModel) createFormView() string {
	labels := [createFieldCount]string{"Due date", "Title", "Assignee"}
	var b strings.Builder
	b.WriteString("  New task\n")
	for i, in := range m.createInputs {
		marker := "  "
		if i == m.createFocus {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("  %s%-9s %s\n", marker, labels[i], in.View()))
	}
	b.WriteString(styleMuted().Render("  enter create · tab next field · esc cancel"))
	b.WriteString("\n")
	return b.String()
}

func (m appModel) footerView() string {
	if m.mode != modeList {
		return ""
	}
	if m.edit.Phase() == state.PhaseEditing {
		return styleMuted().Render(" enter save · tab switch field · esc cancel")
	}
	hints := " n new · enter edit · D due · A assignee · c done · f fav · d del · s/t/a sort · / filter · v completed · ? help · q quit"
	return styleMuted().Render(fitWidth(hints, m.width))
}
