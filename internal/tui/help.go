package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"taskdeck/internal/model"
)

const helpMarkdown = `
# Taskdeck

A single-team task list. The list order always comes from the server; sorting
keys re-fetch rather than re-sort.

## Keys

| Key | Action |
|-----|--------|
| n | New task |
| enter / e | Edit title inline |
| D / A | Edit due date / assignee inline |
| tab | Switch edited field (drafts on the row are kept) |
| c / space | Toggle completed |
| f | Toggle favorite |
| d | Delete |
| s / t / a | Sort by due date / title / assignee (again to flip) |
| / | Filter by assignee |
| v | Show/hide completed |
| T | Cycle theme |
| r | Refresh |
| q | Quit |

Completed rows are struck through; overdue rows are red, rows due within three
days are highlighted. Favorites are grouped per assignee in the favorites
index.
`

// helpView renders the help overlay through glamour. Fixed style + no auto
// detection: WithAutoStyle can block probing the terminal mid-frame.
func (m appModel) helpView() string {
	width := m.width
	if width < 20 {
		width = 80
	}
	if width > 100 {
		width = 100
	}

	style := "light"
	if themeIsDark(m.engine.Config().Theme) {
		style = "dark"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown + "\n" + m.favoritesSection())
	if err != nil {
		return helpMarkdown
	}
	return out + styleMuted().Render(" press any key to close")
}

func themeIsDark(theme string) bool {
	// "auto" follows whatever lipgloss decided at startup; glamour only needs
	// a coarse hint.
	return theme != "light"
}

// favoritesSection folds the favorites index into the overlay, one assignee
// per heading.
func (m appModel) favoritesSection() string {
	fav := m.engine.FavoriteTitles()
	if len(fav) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("## Favorites\n\n")
	for _, assignee := range m.engine.AssigneeOptions() {
		titles := fav[assignee]
		if len(titles) == 0 {
			continue
		}
		fmt.Fprintf(&b, "**%s**\n\n", assignee)
		for _, title := range titles {
			fmt.Fprintf(&b, "- %s\n", title)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func validDate(s string) bool {
	_, err := time.Parse(model.DateLayout, s)
	return err == nil
}
