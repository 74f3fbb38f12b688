package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"smartnote/internal/markdown"
	"smartnote/internal/tui/shared"
	"smartnote/internal/tui/theme"
)

const (
	headerLines = 5
	dateFormat  = "Jan 2, 2006 3:04 PM"
)

func markdownStyles() markdown.Styles {
	return markdown.Styles{
		Heading:       theme.MarkdownHeading,
		Bold:          lipgloss.NewStyle().Bold(true),
		Italic:        lipgloss.NewStyle().Italic(true),
		Strikethrough: lipgloss.NewStyle().Strikethrough(true),
		Code:          theme.MarkdownCode,
		Quote:         theme.MarkdownQuote,
		Link:          theme.MarkdownLink,
		Rule:          theme.Muted,
		Bullet:        theme.Tag,
	}
}

func (m Model) summaryView() string {
	if m.summary == "" {
		return ""
	}
	body := theme.Subtitle.Render("AI Summary") + "\n" + m.summary + "\n" + theme.HelpHint.Render("esc: dismiss")
	return theme.SummaryBox.Width(max(10, m.width-2)).Render(body)
}

func (m Model) attachmentsView() string {
	if len(m.note.Attachments) == 0 {
		return ""
	}
	lines := []string{theme.Subtitle.Render(fmt.Sprintf("Attachments (%d)", len(m.note.Attachments)))}
	for i, a := range m.note.Attachments {
		size := ""
		if n := a.Size(); n >= 0 {
			size = theme.Muted.Render(fmt.Sprintf(" %s, %s", a.MIMEType(), humanSize(n)))
		}
		lines = append(lines, fmt.Sprintf("  %d. %s%s", i+1, a.Name, size))
	}
	return strings.Join(lines, "\n")
}

func humanSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}

// layout sizes the body to whatever the header, summary, and attachments
// leave free
func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	used := headerLines
	if s := m.summaryView(); s != "" {
		used += lipgloss.Height(s)
	}
	if a := m.attachmentsView(); a != "" {
		used += lipgloss.Height(a) + 1
	}
	if m.note.IsDeleted {
		used++
	}
	bodyHeight := max(3, m.height-used)

	m.title.Width = max(10, m.width-2)
	m.tagInput.Width = max(10, m.width/3)
	m.content.SetWidth(max(10, m.width))
	m.content.SetHeight(bodyHeight)
	m.viewport.Width = max(10, m.width)
	m.viewport.Height = bodyHeight
	if m.preview || m.note.IsDeleted {
		m.refreshPreview()
	}
}

func (m *Model) refreshPreview() {
	src := m.content.Value()
	if m.note.IsDeleted {
		src = m.note.Content
	}
	r := markdown.NewRenderer(markdownStyles(), max(10, m.viewport.Width))
	rendered := r.Render(src)
	if strings.TrimSpace(rendered) == "" {
		rendered = theme.Muted.Render("Nothing to preview")
	}
	m.viewport.SetContent(rendered)
}

func (m Model) toolbar() string {
	if m.note.IsDeleted {
		return theme.HelpHint.Render("r: restore  D: delete forever  esc: back")
	}
	aiHint := "alt+g tags  alt+s summary  alt+r polish"
	if m.busy {
		aiHint = theme.Warn.Render(m.busyOp.String() + "...")
	}
	mode := "alt+p preview"
	if m.preview {
		mode = "alt+p edit"
	}
	hints := []string{
		"alt+b/i/l bold/italic/list",
		mode,
		"alt+f fav",
		"alt+a/x attach/remove",
		"alt+d delete",
	}
	return theme.HelpHint.Render(strings.Join(hints, "  ")) + "  " + theme.HelpHint.Render(aiHint)
}

func (m Model) tagsLine() string {
	chips := make([]string, len(m.tags))
	for i, t := range m.tags {
		chips[i] = theme.Tag.Render("#" + t)
	}
	line := strings.Join(chips, " ")
	if m.note.IsDeleted {
		if line == "" {
			return theme.Muted.Render("no tags")
		}
		return line
	}
	if line != "" {
		line += "  "
	}
	return line + m.tagInput.View()
}

func (m Model) View() string {
	if !m.loaded {
		msg := theme.Muted.Render("Select a note to start editing")
		return shared.CenterInPane(msg, theme.HelpHint.Render("ctrl+n: new note"), m.width, m.height)
	}

	if m.confirm != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View())
	}

	var sections []string

	if m.note.IsDeleted {
		sections = append(sections, theme.Warn.Render("This note is in the trash"))
		sections = append(sections, theme.Title.Render(m.note.DisplayTitle()))
	} else {
		sections = append(sections, theme.Title.Render(m.title.View()))
	}

	meta := theme.Date.Render("Updated " + m.note.Updated().Format(dateFormat))
	if m.note.IsFavorite {
		meta += "  " + theme.Favorite.Render("★ Favorite")
	}
	if m.dirty {
		meta += "  " + theme.Muted.Render("editing...")
	}
	sections = append(sections, meta)
	sections = append(sections, m.tagsLine())
	sections = append(sections, m.toolbar())
	sections = append(sections, "")

	if s := m.summaryView(); s != "" {
		sections = append(sections, s)
	}

	if m.prompt != nil {
		sections = append(sections, m.prompt.View())
	}

	if m.preview || m.note.IsDeleted {
		sections = append(sections, m.viewport.View())
	} else {
		sections = append(sections, m.content.View())
	}

	if a := m.attachmentsView(); a != "" {
		sections = append(sections, "", a)
	}

	return lipgloss.NewStyle().Width(m.width).Render(strings.Join(sections, "\n"))
}
