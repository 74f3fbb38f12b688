package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CenterInPane centers content in a width x height pane with the hint line
// pinned to the bottom. Hints are dropped when the pane is too short.
func CenterInPane(content, hints string, width, height int) string {
	content = strings.TrimRight(content, "\n")
	hints = strings.TrimRight(hints, "\n")

	hintHeight := 0
	if hints != "" {
		hintHeight = lipgloss.Height(hints)
	}
	if hintHeight > 0 && lipgloss.Height(content)+hintHeight >= height {
		hints = ""
		hintHeight = 0
	}

	body := lipgloss.Place(width, max(0, height-hintHeight), lipgloss.Center, lipgloss.Center, content)
	if hints == "" {
		return body
	}
	return body + "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, hints)
}
