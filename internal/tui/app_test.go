package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartnote/internal/auth"
	"smartnote/internal/notes"
	"smartnote/internal/notes/service"
	"smartnote/internal/storage"
	"smartnote/internal/tui/theme"
)

func newTestApp(t *testing.T, signedIn bool) (AppModel, *storage.Repository, service.NoteService) {
	t.Helper()
	kv, err := storage.NewFileKV(filepath.Join(t.TempDir(), "store"))
	require.NoError(t, err)
	repo := storage.NewRepository(kv)
	if signedIn {
		require.NoError(t, repo.SaveUser(&auth.User{ID: "u1", Username: "bob", Email: "bob@example.com"}))
	}
	svc := service.NewNoteService(repo)

	m := NewAppModel(Deps{
		Notes:   svc,
		Repo:    repo,
		Session: auth.NewSession(repo),
	})
	return update(m, tea.WindowSizeMsg{Width: 140, Height: 40}), repo, svc
}

func update(m AppModel, msg tea.Msg) AppModel {
	next, _ := m.Update(msg)
	return next.(AppModel)
}

func TestSignedOutShowsAuth(t *testing.T) {
	m, _, _ := newTestApp(t, false)
	assert.False(t, m.State().LoggedIn())
	assert.Contains(t, m.View(), "Welcome back")

	m = update(m, LoggedInMsg{User: auth.User{Username: "ann"}})
	assert.True(t, m.State().LoggedIn())
	assert.Contains(t, m.View(), "All Notes")
}

func TestNewNoteLeavesTrashAndSelects(t *testing.T) {
	m, _, svc := newTestApp(t, true)

	m = update(m, ViewSelectedMsg{View: notes.ViewTrash})
	assert.Equal(t, notes.ViewTrash, m.State().View)

	m = update(m, NewNoteMsg{})
	require.Len(t, svc.List(), 1)
	id := svc.List()[0].ID
	assert.Equal(t, notes.ViewAll, m.State().View)
	assert.Equal(t, id, m.State().SelectedID)
	assert.Equal(t, id, m.editor.CurrentID())
	assert.Equal(t, PaneEditor, m.focus)
}

func TestSoftDeleteKeepsSelectionPermanentClears(t *testing.T) {
	m, _, svc := newTestApp(t, true)
	m = update(m, NewNoteMsg{})
	id := m.State().SelectedID

	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}, Alt: true})
	assert.Equal(t, id, m.State().SelectedID)
	assert.True(t, m.editor.IsTrash())
	m = update(m, NotesChangedMsg{})
	assert.Empty(t, svc.Query(m.State().Query()))

	require.NoError(t, svc.PermanentDelete(id))
	m = update(m, NoteRemovedMsg{ID: id})
	assert.Empty(t, m.State().SelectedID)
	assert.Equal(t, PaneList, m.focus)
}

func TestThemeTogglePersists(t *testing.T) {
	m, repo, _ := newTestApp(t, true)
	start := m.State().Theme

	m = update(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, start.Toggle(), m.State().Theme)
	assert.Equal(t, start.Toggle(), repo.LoadTheme())
	assert.Equal(t, start.Toggle(), theme.Current())

	m = update(m, ToggleThemeMsg{})
	assert.Equal(t, start, repo.LoadTheme())
}

func TestLogoutResetsStateButKeepsPreferences(t *testing.T) {
	m, repo, _ := newTestApp(t, true)
	m = update(m, SortChangedMsg{Sort: notes.SortTitleAsc})
	m = update(m, SearchChangedMsg{Term: "milk"})
	m = update(m, LogoutMsg{})

	s := m.State()
	assert.False(t, s.LoggedIn())
	assert.Empty(t, s.Search)
	assert.Equal(t, notes.SortTitleAsc, s.Sort)
	assert.Nil(t, repo.LoadUser())
}

func TestSearchAndTagViewFilterList(t *testing.T) {
	m, _, svc := newTestApp(t, true)
	a, _ := svc.Add()
	b, _ := svc.Add()
	title := "Milk run"
	tags := []string{"errands"}
	svc.Update(a.ID, notes.Patch{Title: &title, Tags: &tags})
	other := "Work log"
	svc.Update(b.ID, notes.Patch{Title: &other})
	m = update(m, NotesChangedMsg{})

	m = update(m, SearchChangedMsg{Term: "milk"})
	assert.Equal(t, a.ID, m.list.CurrentID())
	assert.NotContains(t, m.list.View(), "Work log")

	m = update(m, SearchChangedMsg{})
	m = update(m, ViewSelectedMsg{View: notes.ViewTag, Tag: "errands"})
	assert.Equal(t, "errands", m.State().Tag)
	assert.Contains(t, m.list.View(), "#errands")
	assert.NotContains(t, m.list.View(), "Work log")
}

func TestHelpOverlay(t *testing.T) {
	m, _, _ := newTestApp(t, true)
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.Contains(t, m.View(), "Keyboard Shortcuts")
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.NotContains(t, m.View(), "Keyboard Shortcuts")
}
