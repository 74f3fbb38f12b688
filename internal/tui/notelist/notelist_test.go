package notelist

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func sample() []notes.Note {
	return []notes.Note{
		{ID: "a", Title: "First", Content: strings.Repeat("x", 150), Tags: []string{"one", "two", "three"}, UpdatedAt: 2000},
		{ID: "b", Content: "body", UpdatedAt: 1000},
	}
}

func newList() Model {
	m := New(notes.SortDateDesc)
	m.SetSize(60, 30)
	m.SetFocused(true)
	m.SetNotes(sample(), "")
	return m
}

func TestSelectEmitsSelectNote(t *testing.T) {
	m := newList()
	m, _ = press(m, "j")
	assert.Equal(t, "b", m.CurrentID())

	_, cmd := press(m, "enter")
	require.NotNil(t, cmd)
	msg := cmd().(messages.SelectNoteMsg)
	assert.Equal(t, "b", msg.ID)
	assert.True(t, msg.Focus)
}

func TestCursorFollowsSelection(t *testing.T) {
	m := newList()
	m.SetNotes(sample(), "b")
	assert.Equal(t, "b", m.CurrentID())

	m.SetNotes(sample()[:1], "gone")
	assert.Equal(t, "a", m.CurrentID())

	m.SetNotes(nil, "")
	assert.Equal(t, "", m.CurrentID())
}

func TestSortCycle(t *testing.T) {
	m := newList()
	m, cmd := press(m, "s")
	require.NotNil(t, cmd)
	assert.Equal(t, notes.SortDateDesc.Next(), cmd().(messages.SortChangedMsg).Sort)
	assert.Contains(t, m.View(), notes.SortDateDesc.Next().Label())
}

func TestSearchEmitsTerm(t *testing.T) {
	m := newList()
	m, _ = press(m, "/")
	require.True(t, m.IsTyping())

	m, cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, "q", cmd().(messages.SearchChangedMsg).Term)

	m, _ = press(m, "esc")
	assert.False(t, m.IsTyping())
	assert.Equal(t, "q", m.SearchTerm())
}

func TestNewNoteKey(t *testing.T) {
	_, cmd := press(newList(), "n")
	require.NotNil(t, cmd)
	_, ok := cmd().(messages.NewNoteMsg)
	assert.True(t, ok)
}

func TestRowRendering(t *testing.T) {
	out := newList().View()
	assert.Contains(t, out, "First")
	assert.Contains(t, out, "Untitled Note")
	assert.Contains(t, out, "#one")
	assert.Contains(t, out, "#two")
	assert.NotContains(t, out, "#three")
	assert.Contains(t, out, "+1")

	empty := New(notes.SortDateDesc)
	empty.SetSize(40, 10)
	assert.Contains(t, empty.View(), "No notes found.")
}
