package tui

import (
	"github.com/charmbracelet/lipgloss"

	"smartnote/internal/tui/theme"
)

// Styles are built on demand so a theme switch takes effect on the next frame

func statusBarStyle() lipgloss.Style {
	return theme.StatusBar
}

func helpStyle() lipgloss.Style {
	return theme.HelpHint
}

func statusErrorStyle() lipgloss.Style {
	return theme.Error
}

func statusOkStyle() lipgloss.Style {
	return theme.Ok
}
