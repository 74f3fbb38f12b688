package tui

import "smartnote/internal/tui/messages"

// Re-export types from messages package for convenience
type Pane = messages.Pane

const (
	PaneSidebar = messages.PaneSidebar
	PaneList    = messages.PaneList
	PaneEditor  = messages.PaneEditor
)

type FocusPaneMsg = messages.FocusPaneMsg
type LoggedInMsg = messages.LoggedInMsg
type LogoutMsg = messages.LogoutMsg
type ToggleThemeMsg = messages.ToggleThemeMsg
type ViewSelectedMsg = messages.ViewSelectedMsg
type SelectNoteMsg = messages.SelectNoteMsg
type NewNoteMsg = messages.NewNoteMsg
type SearchChangedMsg = messages.SearchChangedMsg
type SortChangedMsg = messages.SortChangedMsg
type NotesChangedMsg = messages.NotesChangedMsg
type NoteRemovedMsg = messages.NoteRemovedMsg
type StatusMsg = messages.StatusMsg
