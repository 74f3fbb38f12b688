package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smartnote/internal/auth"
	"smartnote/internal/notes"
	"smartnote/internal/storage"
)

func TestInitial(t *testing.T) {
	s := Initial(nil, storage.ThemeDark, notes.SortTitleAsc)
	assert.False(t, s.LoggedIn())
	assert.Equal(t, notes.ViewAll, s.View)
	assert.Equal(t, storage.ThemeDark, s.Theme)
	assert.Equal(t, notes.SortTitleAsc, s.Query().Sort)
}

func TestLoginLogout(t *testing.T) {
	s := Initial(nil, storage.ThemeLight, notes.SortDateDesc)
	s = Reduce(s, LoggedIn{User: auth.User{ID: "u1", Username: "ann"}})
	assert.True(t, s.LoggedIn())
	assert.Equal(t, "ann", s.User.Username)

	s = Reduce(s, ViewChanged{View: notes.ViewTrash})
	s = Reduce(s, NoteSelected{ID: "n1"})
	s = Reduce(s, ThemeToggled{})

	s = Reduce(s, LoggedOut{})
	assert.False(t, s.LoggedIn())
	assert.Equal(t, notes.ViewAll, s.View)
	assert.Empty(t, s.SelectedID)
	assert.Equal(t, storage.ThemeDark, s.Theme)
}

func TestViewChangedKeepsTagOnlyInTagMode(t *testing.T) {
	s := Initial(nil, storage.ThemeLight, notes.SortDateDesc)

	s = Reduce(s, ViewChanged{View: notes.ViewTag, Tag: "work"})
	assert.Equal(t, notes.Query{View: notes.ViewTag, Tag: "work", Sort: notes.SortDateDesc}, s.Query())

	s = Reduce(s, ViewChanged{View: notes.ViewFavorites, Tag: "ignored"})
	assert.Empty(t, s.Tag)
}

func TestNoteAddedLeavesTrash(t *testing.T) {
	s := Initial(nil, storage.ThemeLight, notes.SortDateDesc)
	s = Reduce(s, ViewChanged{View: notes.ViewTrash})

	s = Reduce(s, NoteAdded{ID: "n2"})
	assert.Equal(t, "n2", s.SelectedID)
	assert.Equal(t, notes.ViewAll, s.View)

	s = Reduce(s, ViewChanged{View: notes.ViewFavorites})
	s = Reduce(s, NoteAdded{ID: "n3"})
	assert.Equal(t, notes.ViewFavorites, s.View)
}

func TestNoteRemovedClearsOnlyMatchingSelection(t *testing.T) {
	s := Initial(nil, storage.ThemeLight, notes.SortDateDesc)
	s = Reduce(s, NoteSelected{ID: "a"})

	s = Reduce(s, NoteRemoved{ID: "b"})
	assert.Equal(t, "a", s.SelectedID)

	s = Reduce(s, NoteRemoved{ID: "a"})
	assert.Empty(t, s.SelectedID)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	before := Initial(&auth.User{ID: "u"}, storage.ThemeLight, notes.SortDateDesc)
	after := Reduce(before, SearchChanged{Term: "milk"})
	after = Reduce(after, SortChanged{Sort: notes.SortTitleDesc})

	assert.Empty(t, before.Search)
	assert.Equal(t, "milk", after.Search)
	assert.Equal(t, notes.SortTitleDesc, after.Sort)
	assert.Equal(t, notes.SortDateDesc, before.Sort)
}
