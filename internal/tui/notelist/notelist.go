// Package notelist renders the filtered, sorted notes of the current view.
package notelist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"smartnote/internal/notes"
	"smartnote/internal/tui/messages"
	"smartnote/internal/tui/theme"
)

const (
	rowHeight   = 4
	maxRowTags  = 2
	headerLines = 4
	dateFormat  = "Jan 2, 03:04 PM"
)

// Model is the middle pane
type Model struct {
	notes      []notes.Note
	selectedID string
	cursor     int
	offset     int

	heading   string
	sort      notes.SortOption
	search    textinput.Model
	searching bool

	focused bool
	width   int
	height  int
}

func New(sort notes.SortOption) Model {
	ti := textinput.New()
	ti.Placeholder = "Search notes..."
	ti.Prompt = "/ "
	ti.CharLimit = 128
	return Model{
		sort:    sort,
		search:  ti,
		heading: "All Notes",
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.search.Width = max(4, width-4)
}

func (m *Model) SetFocused(f bool) {
	m.focused = f
}

// SetNotes replaces the rows. The cursor follows the selected note when it
// is still listed.
func (m *Model) SetNotes(list []notes.Note, selectedID string) {
	m.notes = list
	m.selectedID = selectedID
	for i, n := range list {
		if n.ID == selectedID {
			m.cursor = i
			m.ensureVisible()
			return
		}
	}
	if m.cursor >= len(list) {
		m.cursor = max(0, len(list)-1)
	}
	m.ensureVisible()
}

func (m *Model) SetHeading(h string) {
	m.heading = h
}

func (m *Model) SetSort(s notes.SortOption) {
	m.sort = s
}

// SearchTerm returns the text in the search box
func (m Model) SearchTerm() string {
	return m.search.Value()
}

// IsTyping reports whether the search box has keyboard input
func (m Model) IsTyping() bool {
	return m.searching
}

// CurrentID returns the id under the cursor, or ""
func (m Model) CurrentID() string {
	if m.cursor < 0 || m.cursor >= len(m.notes) {
		return ""
	}
	return m.notes[m.cursor].ID
}

func (m Model) visibleRows() int {
	return max(1, (m.height-headerLines)/rowHeight)
}

func (m *Model) ensureVisible() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.searching {
		switch keyMsg.String() {
		case "enter", "esc":
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		before := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if term := m.search.Value(); term != before {
			return m, func() tea.Msg { return messages.SearchChangedMsg{Term: term} }
		}
		return m, cmd
	}

	switch keyMsg.String() {
	case "j", "down":
		if m.cursor < len(m.notes)-1 {
			m.cursor++
			m.ensureVisible()
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
		}
	case "g":
		m.cursor = 0
		m.ensureVisible()
	case "G":
		m.cursor = max(0, len(m.notes)-1)
		m.ensureVisible()
	case "/":
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case "ctrl+u":
		if m.search.Value() != "" {
			m.search.SetValue("")
			return m, func() tea.Msg { return messages.SearchChangedMsg{} }
		}
	case "s":
		m.sort = m.sort.Next()
		next := m.sort
		return m, func() tea.Msg { return messages.SortChangedMsg{Sort: next} }
	case "n":
		return m, func() tea.Msg { return messages.NewNoteMsg{} }
	case "enter", "l", "right":
		if id := m.CurrentID(); id != "" {
			return m, func() tea.Msg { return messages.SelectNoteMsg{ID: id, Focus: true} }
		}
	case "h", "left":
		return m, messages.FocusPane(messages.PaneSidebar)
	}
	return m, nil
}

func (m Model) renderRow(i int) string {
	n := m.notes[i]
	inner := max(10, m.width-3)

	titleStyle := theme.Bold
	if n.ID == m.selectedID {
		titleStyle = theme.Selected
	}
	title := n.DisplayTitle()
	if n.IsFavorite {
		title = theme.Favorite.Render("★ ") + titleStyle.Render(title)
	} else {
		title = titleStyle.Render(title)
	}

	preview := strings.ReplaceAll(n.Preview(), "\n", " ")
	preview = theme.Muted.Render(truncate(preview, inner))

	var tags []string
	for j, t := range n.Tags {
		if j == maxRowTags {
			tags = append(tags, theme.Muted.Render(fmt.Sprintf("+%d", len(n.Tags)-maxRowTags)))
			break
		}
		tags = append(tags, theme.Tag.Render("#"+t))
	}
	date := theme.Date.Render(n.Updated().Format(dateFormat))
	tagLine := strings.Join(tags, " ")
	gap := max(1, inner-lipgloss.Width(tagLine)-lipgloss.Width(date))
	meta := tagLine + strings.Repeat(" ", gap) + date

	marker := "  "
	if m.focused && i == m.cursor {
		marker = theme.Cursor.Render("▌ ")
	} else if n.ID == m.selectedID {
		marker = theme.Selected.Render("▌ ")
	}

	lines := []string{title, preview, meta}
	for j := range lines {
		lines[j] = marker + lines[j]
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(theme.Title.Render(m.heading))
	b.WriteString(theme.Muted.Render(fmt.Sprintf("  %d", len(m.notes))))
	b.WriteString("\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
	} else {
		b.WriteString(theme.Muted.Render("/ Search notes..."))
	}
	b.WriteString("\n")
	b.WriteString(theme.HelpHint.Render("sort: " + m.sort.Label() + " (s)  new: n"))
	b.WriteString("\n\n")

	if len(m.notes) == 0 {
		b.WriteString(theme.Muted.Render("No notes found."))
		return lipgloss.NewStyle().Width(m.width).Render(b.String())
	}

	end := min(len(m.notes), m.offset+m.visibleRows())
	rows := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		rows = append(rows, m.renderRow(i))
	}
	b.WriteString(strings.Join(rows, "\n\n"))

	return lipgloss.NewStyle().Width(m.width).Render(b.String())
}
