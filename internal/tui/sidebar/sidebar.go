// Package sidebar renders the view navigation, tag list, and account line.
package sidebar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"smartnote/internal/auth"
	"smartnote/internal/notes"
	"smartnote/internal/tui/messages"
	"smartnote/internal/tui/theme"
)

type entry struct {
	view notes.ViewMode
	tag  string
}

var fixedEntries = []entry{
	{view: notes.ViewAll},
	{view: notes.ViewFavorites},
	{view: notes.ViewTrash},
}

// Model is the left-hand navigation pane
type Model struct {
	user   *auth.User
	counts map[notes.ViewMode]int
	tags   []string

	activeView notes.ViewMode
	activeTag  string

	cursor    int
	filtered  []int // indexes into tags
	searching bool
	search    textinput.Model

	focused bool
	width   int
	height  int
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "filter tags"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	return Model{
		counts: map[notes.ViewMode]int{},
		search: ti,
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

// SetData refreshes the derived values shown in the pane
func (m *Model) SetData(user *auth.User, counts map[notes.ViewMode]int, tags []string) {
	m.user = user
	m.counts = counts
	m.tags = tags
	m.applyFilter()
}

// SetActive marks the current view so it renders highlighted
func (m *Model) SetActive(view notes.ViewMode, tag string) {
	m.activeView = view
	m.activeTag = tag
}

// IsTyping reports whether the tag filter has keyboard input
func (m Model) IsTyping() bool {
	return m.searching
}

func (m *Model) applyFilter() {
	query := strings.TrimSpace(m.search.Value())
	if query == "" {
		m.filtered = make([]int, len(m.tags))
		for i := range m.tags {
			m.filtered[i] = i
		}
	} else {
		matches := fuzzy.Find(query, m.tags)
		m.filtered = make([]int, len(matches))
		for i, match := range matches {
			m.filtered[i] = match.Index
		}
	}
	if m.cursor >= m.entryCount() {
		m.cursor = max(0, m.entryCount()-1)
	}
}

func (m Model) entryCount() int {
	return len(fixedEntries) + len(m.filtered)
}

func (m Model) entryAt(i int) entry {
	if i < len(fixedEntries) {
		return fixedEntries[i]
	}
	return entry{view: notes.ViewTag, tag: m.tags[m.filtered[i-len(fixedEntries)]]}
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
		case "esc":
			m.searching = false
			m.search.SetValue("")
			m.search.Blur()
			m.applyFilter()
			return m, nil
		case "enter":
			m.searching = false
			m.search.Blur()
			if len(m.filtered) > 0 {
				m.cursor = len(fixedEntries)
				return m, m.selectCurrent()
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.applyFilter()
		return m, cmd
	}

	switch keyMsg.String() {
	case "j", "down":
		if m.cursor < m.entryCount()-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g":
		m.cursor = 0
	case "G":
		m.cursor = max(0, m.entryCount()-1)
	case "/":
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case "enter", "l", "right":
		return m, m.selectCurrent()
	case "L":
		return m, func() tea.Msg { return messages.LogoutMsg{} }
	}
	return m, nil
}

func (m Model) selectCurrent() tea.Cmd {
	if m.entryCount() == 0 {
		return nil
	}
	e := m.entryAt(m.cursor)
	return tea.Batch(
		func() tea.Msg { return messages.ViewSelectedMsg{View: e.view, Tag: e.tag} },
		messages.FocusPane(messages.PaneList),
	)
}

func (m Model) isActive(e entry) bool {
	if e.view != m.activeView {
		return false
	}
	return e.view != notes.ViewTag || e.tag == m.activeTag
}

func (m Model) renderEntry(i int) string {
	e := m.entryAt(i)

	var label string
	switch e.view {
	case notes.ViewAll:
		label = fmt.Sprintf("All Notes (%d)", m.counts[notes.ViewAll])
	case notes.ViewFavorites:
		label = fmt.Sprintf("Favorites (%d)", m.counts[notes.ViewFavorites])
	case notes.ViewTrash:
		label = fmt.Sprintf("Trash (%d)", m.counts[notes.ViewTrash])
	default:
		label = "#" + e.tag
	}

	style := theme.NavInactive
	if m.isActive(e) {
		style = theme.NavActive
	}
	if e.view == notes.ViewTag && !m.isActive(e) {
		style = theme.Tag
	}

	prefix := "  "
	if m.focused && i == m.cursor {
		prefix = theme.Cursor.Render("> ")
	}
	return prefix + style.Render(label)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("SmartNote"))
	b.WriteString("\n\n")

	for i := range fixedEntries {
		b.WriteString(m.renderEntry(i) + "\n")
	}

	b.WriteString("\n" + theme.Subtitle.Render("Tags") + "\n")
	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View() + "\n")
	}
	if len(m.tags) == 0 {
		b.WriteString(theme.Muted.Render("  No tags yet") + "\n")
	} else if len(m.filtered) == 0 {
		b.WriteString(theme.Muted.Render("  No matching tags") + "\n")
	}
	for i := len(fixedEntries); i < m.entryCount(); i++ {
		b.WriteString(m.renderEntry(i) + "\n")
	}

	body := strings.TrimRight(b.String(), "\n")

	footer := ""
	if m.user != nil {
		avatar := lipgloss.NewStyle().Bold(true).Foreground(theme.TextBright).Background(theme.Primary).Padding(0, 1).Render(m.user.Initial())
		footer = avatar + " " + m.user.Username
		if m.focused {
			footer += "\n" + theme.HelpHint.Render("L: sign out")
		}
	}

	bodyLines := strings.Count(body, "\n") + 1
	footerLines := strings.Count(footer, "\n") + 1
	gap := max(1, m.height-bodyLines-footerLines)

	return lipgloss.NewStyle().Width(m.width).Render(body + strings.Repeat("\n", gap) + footer)
}
