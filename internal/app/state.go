// Package app holds the explicit view state of a session and the pure reducer
// that moves it between states.
package app

import (
	"smartnote/internal/auth"
	"smartnote/internal/notes"
	"smartnote/internal/storage"
)

// State is everything the views need that is not the note collection itself
type State struct {
	User       *auth.User
	View       notes.ViewMode
	Tag        string
	SelectedID string
	Search     string
	Sort       notes.SortOption
	Theme      storage.Theme
}

// Initial returns the state a fresh session starts in
func Initial(user *auth.User, theme storage.Theme, sort notes.SortOption) State {
	return State{
		User:  user,
		View:  notes.ViewAll,
		Sort:  sort,
		Theme: theme,
	}
}

func (s State) LoggedIn() bool {
	return s.User != nil
}

// Query builds the filter/sort pipeline input for the current state
func (s State) Query() notes.Query {
	return notes.Query{
		View:   s.View,
		Tag:    s.Tag,
		Search: s.Search,
		Sort:   s.Sort,
	}
}

// Action is anything Reduce understands
type Action interface {
	isAction()
}

type LoggedIn struct{ User auth.User }
type LoggedOut struct{}
type ViewChanged struct {
	View notes.ViewMode
	Tag  string
}
type NoteSelected struct{ ID string }
type NoteAdded struct{ ID string }
type NoteRemoved struct{ ID string }
type SearchChanged struct{ Term string }
type SortChanged struct{ Sort notes.SortOption }
type ThemeToggled struct{}

func (LoggedIn) isAction()      {}
func (LoggedOut) isAction()     {}
func (ViewChanged) isAction()   {}
func (NoteSelected) isAction()  {}
func (NoteAdded) isAction()     {}
func (NoteRemoved) isAction()   {}
func (SearchChanged) isAction() {}
func (SortChanged) isAction()   {}
func (ThemeToggled) isAction()  {}

// Reduce returns the state after applying a. It never mutates s.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case LoggedIn:
		u := a.User
		s.User = &u
	case LoggedOut:
		theme, sort := s.Theme, s.Sort
		s = Initial(nil, theme, sort)
	case ViewChanged:
		s.View = a.View
		s.Tag = ""
		if a.View == notes.ViewTag {
			s.Tag = a.Tag
		}
	case NoteSelected:
		s.SelectedID = a.ID
	case NoteAdded:
		s.SelectedID = a.ID
		if s.View == notes.ViewTrash {
			s.View = notes.ViewAll
			s.Tag = ""
		}
	case NoteRemoved:
		if s.SelectedID == a.ID {
			s.SelectedID = ""
		}
	case SearchChanged:
		s.Search = a.Term
	case SortChanged:
		s.Sort = a.Sort
	case ThemeToggled:
		s.Theme = s.Theme.Toggle()
	}
	return s
}
