package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"smartnote/internal/tui/theme"
)

// HelpBind represents a single keybind entry
type HelpBind struct {
	Key  string
	Desc string
}

// HelpSection represents a group of related keybinds
type HelpSection struct {
	Title string
	Binds []HelpBind
}

func renderSection(s HelpSection) string {
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary).Width(16)
	descStyle := lipgloss.NewStyle().Foreground(theme.Text)

	lines := []string{theme.Subtitle.Render(s.Title)}
	for _, b := range s.Binds {
		lines = append(lines, "  "+keyStyle.Render(b.Key)+descStyle.Render(b.Desc))
	}
	return strings.Join(lines, "\n")
}

// RenderHelpPopup renders the sections in a centered box under title. When a
// single column would overflow the height the sections flow into two.
func RenderHelpPopup(title string, sections []HelpSection, width, height int) string {
	blocks := make([]string, len(sections))
	total := 0
	for i, s := range sections {
		blocks[i] = renderSection(s)
		total += lipgloss.Height(blocks[i]) + 1
	}

	// title, blank, dismiss hint, border and padding
	const chrome = 8
	var body string
	if total+chrome <= height || len(blocks) < 2 {
		body = strings.Join(blocks, "\n\n")
	} else {
		var left, right []string
		used := 0
		for _, b := range blocks {
			if used < total/2 {
				left = append(left, b)
				used += lipgloss.Height(b) + 1
			} else {
				right = append(right, b)
			}
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			strings.Join(left, "\n\n"),
			"    ",
			strings.Join(right, "\n\n"),
		)
	}

	content := theme.Title.Render(title) + "\n\n" + body + "\n\n" + theme.HelpHint.Render("Press any key to close")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.ModalBox.Render(content))
}
