package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/api"
	"taskdeck/internal/holiday"
	"taskdeck/internal/model"
	"taskdeck/internal/state"
	"taskdeck/internal/store"
)

// Run starts the interactive task list against the given record store URL.
func Run(client *api.Client, st store.Store, holidays *holiday.Client) error {
	cfg := st.LoadViewConfig()

	applyColorProfilePreference()
	applyThemePreference(cfg.Theme)

	engine := state.NewEngine(cfg, func(c model.ViewConfig) {
		// Best effort: config persistence must never interrupt the session.
		_ = st.SaveViewConfig(c)
	})

	m := newAppModel(client, engine, holidays)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
