package messages

import (
	tea "github.com/charmbracelet/bubbletea"

	"smartnote/internal/auth"
	"smartnote/internal/notes"
)

// Pane is a focusable region of the main screen
type Pane int

const (
	PaneSidebar Pane = iota
	PaneList
	PaneEditor
)

// FocusPaneMsg moves keyboard focus
type FocusPaneMsg struct {
	Pane Pane
}

// LoggedInMsg is sent by the auth screen after a successful sign-in
type LoggedInMsg struct {
	User auth.User
}

// LogoutMsg asks the app to sign out
type LogoutMsg struct{}

// ToggleThemeMsg asks the app to switch and persist the theme
type ToggleThemeMsg struct{}

// ViewSelectedMsg is sent by the sidebar
type ViewSelectedMsg struct {
	View notes.ViewMode
	Tag  string
}

// SelectNoteMsg opens a note in the editor
type SelectNoteMsg struct {
	ID    string
	Focus bool
}

// NewNoteMsg asks the app to create and open an empty note
type NewNoteMsg struct{}

// SearchChangedMsg carries the note list's search term
type SearchChangedMsg struct {
	Term string
}

// SortChangedMsg carries the note list's sort option
type SortChangedMsg struct {
	Sort notes.SortOption
}

// NotesChangedMsg signals the collection changed and derived views are stale
type NotesChangedMsg struct{}

// NoteRemovedMsg signals a note is gone from the collection
type NoteRemovedMsg struct {
	ID string
}

// StatusMsg shows a transient line in the status bar
type StatusMsg struct {
	Text  string
	Error bool
}

func FocusPane(p Pane) tea.Cmd {
	return func() tea.Msg {
		return FocusPaneMsg{Pane: p}
	}
}

func NotesChanged() tea.Msg {
	return NotesChangedMsg{}
}

func Status(text string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text}
	}
}

func StatusError(text string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text, Error: true}
	}
}
