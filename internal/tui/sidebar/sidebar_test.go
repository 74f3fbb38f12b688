package sidebar

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartnote/internal/auth"
	"smartnote/internal/notes"
	"smartnote/internal/tui/messages"
)

func press(m Model, k string) (Model, tea.Cmd) {
	switch k {
	case "enter":
		return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	}
	return m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

// firstMsg runs cmd and digs the first message out of a batch
func firstMsg(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		require.NotEmpty(t, batch)
		return batch[0]()
	}
	return msg
}

func newSidebar() Model {
	m := New()
	m.SetSize(30, 20)
	m.SetFocused(true)
	m.SetData(&auth.User{Username: "bob"},
		map[notes.ViewMode]int{notes.ViewAll: 3, notes.ViewFavorites: 1, notes.ViewTrash: 2},
		[]string{"golang", "groceries", "work"})
	return m
}

func TestSelectFixedViews(t *testing.T) {
	m := newSidebar()

	m, _ = press(m, "j")
	_, cmd := press(m, "enter")
	msg := firstMsg(t, cmd).(messages.ViewSelectedMsg)
	assert.Equal(t, notes.ViewFavorites, msg.View)

	m, _ = press(m, "j")
	_, cmd = press(m, "enter")
	assert.Equal(t, notes.ViewTrash, firstMsg(t, cmd).(messages.ViewSelectedMsg).View)
}

func TestSelectTag(t *testing.T) {
	m := newSidebar()
	for i := 0; i < 5; i++ {
		m, _ = press(m, "j")
	}
	_, cmd := press(m, "enter")
	msg := firstMsg(t, cmd).(messages.ViewSelectedMsg)
	assert.Equal(t, notes.ViewTag, msg.View)
	assert.Equal(t, "work", msg.Tag)
}

func TestFuzzyTagFilter(t *testing.T) {
	m := newSidebar()
	m, _ = press(m, "/")
	require.True(t, m.IsTyping())

	for _, r := range "gro" {
		m, _ = press(m, string(r))
	}
	require.Len(t, m.filtered, 1)
	assert.Equal(t, "groceries", m.tags[m.filtered[0]])

	m, cmd := press(m, "enter")
	assert.False(t, m.IsTyping())
	assert.Equal(t, "groceries", firstMsg(t, cmd).(messages.ViewSelectedMsg).Tag)

	m, _ = press(m, "/")
	m, _ = press(m, "esc")
	assert.Len(t, m.filtered, 3)
}

func TestViewShowsCountsAndUser(t *testing.T) {
	m := newSidebar()
	m.SetActive(notes.ViewTrash, "")
	out := m.View()
	assert.Contains(t, out, "All Notes (3)")
	assert.Contains(t, out, "Trash (2)")
	assert.Contains(t, out, "#golang")
	assert.Contains(t, out, "bob")
}

func TestLogoutKey(t *testing.T) {
	m := newSidebar()
	_, cmd := press(m, "L")
	require.NotNil(t, cmd)
	_, ok := cmd().(messages.LogoutMsg)
	assert.True(t, ok)
}
