package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The list must stay readable on both light and dark terminals, so the
// semantic colors are lipgloss.AdaptiveColor pairs. The overdue/due-soon
// colors carry meaning (row classification), not just decoration.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted    lipgloss.TerminalColor = ac("240", "243")
	colorAccent   lipgloss.TerminalColor = ac("27", "62") // blue
	colorOverdue  lipgloss.TerminalColor = ac("160", "196")
	colorDueSoon  lipgloss.TerminalColor = ac("130", "214")
	colorDone     lipgloss.TerminalColor = ac("245", "240")
	colorError    lipgloss.TerminalColor = ac("160", "203")
	colorNotice   lipgloss.TerminalColor = ac("28", "78")
	colorSelBg    lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelFg    lipgloss.TerminalColor = ac("235", "255")
	colorFavorite lipgloss.TerminalColor = ac("178", "220") // star
)

func styleMuted() lipgloss.Style  { return lipgloss.NewStyle().Foreground(colorMuted) }
func styleError() lipgloss.Style  { return lipgloss.NewStyle().Foreground(colorError) }
func styleNotice() lipgloss.Style { return lipgloss.NewStyle().Foreground(colorNotice) }
func styleHeader() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

func nextTheme(theme string) string {
	switch theme {
	case "light":
		return "dark"
	case "dark":
		return "auto"
	default:
		return "light"
	}
}

// applyColorProfilePreference sets the color profile for the interactive TUI.
// NO_COLOR wins; otherwise follow the terminal's capabilities (with the usual
// COLORTERM/TERM nudges for terminals whose probing under-reports).
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference resolves the configured theme: explicit light/dark
// pins the background, auto falls back to the COLORFGBG heuristic (terminal
// background probing is unreliable in too many emulators to trust alone).
func applyThemePreference(theme string) {
	switch theme {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	// COLORFGBG is usually "fg;bg" (sometimes more segments); last segment is bg.
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
