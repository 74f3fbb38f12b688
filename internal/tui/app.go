package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"smartnote/internal/ai"
	"smartnote/internal/app"
	"smartnote/internal/auth"
	"smartnote/internal/config"
	"smartnote/internal/logs"
	"smartnote/internal/notes"
	"smartnote/internal/notes/service"
	"smartnote/internal/storage"
	"smartnote/internal/tui/authview"
	"smartnote/internal/tui/editor"
	"smartnote/internal/tui/messages"
	"smartnote/internal/tui/notelist"
	"smartnote/internal/tui/shared"
	"smartnote/internal/tui/sidebar"
	"smartnote/internal/tui/theme"
)

const (
	sidebarWidth = 26
	listWidth    = 42
)

// Deps are the long-lived services the TUI works against
type Deps struct {
	Config    *config.Config
	Notes     service.NoteService
	Repo      *storage.Repository
	Session   *auth.Session
	Assistant *ai.Assistant
}

// AppModel is the root model that dispatches to child views
type AppModel struct {
	deps  Deps
	state app.State

	authView authview.Model
	sidebar  sidebar.Model
	list     notelist.Model
	editor   editor.Model

	focus     Pane
	showHelp  bool
	status    string
	statusErr bool
	width     int
	height    int
	ready     bool
}

// NewAppModel creates the root application model
func NewAppModel(d Deps) AppModel {
	sort := notes.SortDateDesc
	var delay, aiTimeout time.Duration
	if d.Config != nil {
		if s, err := notes.ParseSortOption(d.Config.DefaultSort); err == nil {
			sort = s
		}
		delay = d.Config.Autosave.Delay
		aiTimeout = d.Config.AI.Timeout
	}

	t := d.Repo.LoadTheme()
	theme.Apply(t)

	m := AppModel{
		deps:     d,
		state:    app.Initial(d.Session.Current(), t, sort),
		authView: authview.New(d.Session),
		sidebar:  sidebar.New(),
		list:     notelist.New(sort),
		editor:   editor.New(d.Notes, d.Assistant, delay, aiTimeout),
		focus:    PaneList,
	}
	m.setFocus(PaneList)
	m.refresh()
	return m
}

// State returns the current view state
func (m AppModel) State() app.State {
	return m.state
}

func (m *AppModel) dispatch(a app.Action) {
	m.state = app.Reduce(m.state, a)
	m.refresh()
}

// refresh recomputes everything derived from the collection and state
func (m *AppModel) refresh() {
	m.list.SetNotes(m.deps.Notes.Query(m.state.Query()), m.state.SelectedID)
	m.list.SetHeading(viewHeading(m.state.View, m.state.Tag))
	m.list.SetSort(m.state.Sort)
	m.sidebar.SetData(m.state.User, notes.CountByView(m.deps.Notes.List()), m.deps.Notes.Tags())
	m.sidebar.SetActive(m.state.View, m.state.Tag)
}

func viewHeading(v notes.ViewMode, tag string) string {
	switch v {
	case notes.ViewFavorites:
		return "Favorites"
	case notes.ViewTrash:
		return "Trash"
	case notes.ViewTag:
		if tag != "" {
			return "#" + tag
		}
	}
	return "All Notes"
}

func (m *AppModel) setFocus(p Pane) tea.Cmd {
	var cmd tea.Cmd
	if m.focus == PaneEditor && p != PaneEditor {
		cmd = m.editor.Flush()
	}
	if p == PaneEditor && m.editor.CurrentID() == "" {
		p = PaneList
	}
	m.focus = p
	m.sidebar.SetFocused(p == PaneSidebar)
	m.list.SetFocused(p == PaneList)
	m.editor.SetFocused(p == PaneEditor)
	return cmd
}

func (m *AppModel) layout() {
	contentHeight := max(1, m.height-2) // status bar
	innerHeight := max(1, contentHeight-2)

	sw := min(sidebarWidth, m.width/4)
	lw := min(listWidth, m.width/3)
	ew := max(10, m.width-sw-lw)

	m.authView.SetSize(m.width, contentHeight)
	m.sidebar.SetSize(max(1, sw-2), innerHeight)
	m.list.SetSize(max(1, lw-2), innerHeight)
	m.editor.SetSize(max(1, ew-2), innerHeight)
}

func (m AppModel) Init() tea.Cmd {
	if !m.state.LoggedIn() {
		return m.authView.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case LoggedInMsg:
		if err := m.deps.Notes.Reload(); err != nil {
			logs.Logger.Warn().Err(err).Msg("reloading notes failed")
		}
		m.dispatch(app.LoggedIn{User: msg.User})
		m.setFocus(PaneList)
		return m, nil

	case LogoutMsg:
		cmd := m.editor.Open("")
		if err := m.deps.Session.Logout(); err != nil {
			logs.Logger.Warn().Err(err).Msg("clearing session failed")
		}
		m.dispatch(app.LoggedOut{})
		m.authView.Reset()
		m.setFocus(PaneList)
		return m, tea.Batch(cmd, m.authView.Init())

	case ToggleThemeMsg:
		m.toggleTheme()
		return m, nil

	case ViewSelectedMsg:
		m.dispatch(app.ViewChanged{View: msg.View, Tag: msg.Tag})
		return m, nil

	case SelectNoteMsg:
		cmd := m.editor.Open(msg.ID)
		m.dispatch(app.NoteSelected{ID: msg.ID})
		if msg.Focus {
			cmd = tea.Batch(cmd, m.setFocus(PaneEditor))
			return m, cmd
		}
		return m, cmd

	case NewNoteMsg:
		cmd := m.newNote()
		return m, cmd

	case SearchChangedMsg:
		m.dispatch(app.SearchChanged{Term: msg.Term})
		return m, nil

	case SortChangedMsg:
		m.dispatch(app.SortChanged{Sort: msg.Sort})
		return m, nil

	case NotesChangedMsg:
		m.refresh()
		return m, nil

	case NoteRemovedMsg:
		m.dispatch(app.NoteRemoved{ID: msg.ID})
		cmd := m.setFocus(PaneList)
		return m, cmd

	case FocusPaneMsg:
		cmd := m.setFocus(msg.Pane)
		return m, cmd

	case StatusMsg:
		m.status = msg.Text
		m.statusErr = msg.Error
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Ticks, AI results, prompt results and blinks belong to the children
	var cmd tea.Cmd
	if !m.state.LoggedIn() {
		m.authView, cmd = m.authView.Update(msg)
		return m, cmd
	}
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		cmd := tea.Sequence(m.editor.Flush(), tea.Quit)
		return m, cmd
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	m.status = ""

	if !m.state.LoggedIn() {
		var cmd tea.Cmd
		m.authView, cmd = m.authView.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+t":
		m.toggleTheme()
		return m, nil
	case "ctrl+n":
		cmd := m.newNote()
		return m, cmd
	}

	if !m.isTyping() {
		switch msg.String() {
		case "q":
			cmd := tea.Sequence(m.editor.Flush(), tea.Quit)
			return m, cmd
		case "?":
			m.showHelp = true
			return m, nil
		case "tab":
			cmd := m.setFocus((m.focus + 1) % 3)
			return m, cmd
		case "shift+tab":
			cmd := m.setFocus((m.focus + 2) % 3)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case PaneSidebar:
		m.sidebar, cmd = m.sidebar.Update(msg)
	case PaneList:
		m.list, cmd = m.list.Update(msg)
	case PaneEditor:
		m.editor, cmd = m.editor.Update(msg)
	}
	return m, cmd
}

// isTyping reports whether plain keys belong to a text field
func (m AppModel) isTyping() bool {
	switch m.focus {
	case PaneSidebar:
		return m.sidebar.IsTyping()
	case PaneList:
		return m.list.IsTyping()
	case PaneEditor:
		return !m.editor.IsTrash() || m.editor.InModal()
	}
	return false
}

func (m *AppModel) newNote() tea.Cmd {
	flush := m.editor.Flush()
	n, err := m.deps.Notes.Add()
	if err != nil {
		logs.Logger.Error().Err(err).Msg("creating note failed")
		return tea.Batch(flush, messages.StatusError("Could not create note"))
	}
	open := m.editor.Open(n.ID)
	m.dispatch(app.NoteAdded{ID: n.ID})
	return tea.Batch(flush, open, m.setFocus(PaneEditor))
}

func (m *AppModel) toggleTheme() {
	m.dispatch(app.ThemeToggled{})
	theme.Apply(m.state.Theme)
	if err := m.deps.Repo.SaveTheme(m.state.Theme); err != nil {
		logs.Logger.Warn().Err(err).Msg("saving theme failed")
	}
	// rebuilds the preview with the new palette
	m.layout()
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return shared.RenderHelpPopup("SmartNote - Keyboard Shortcuts", helpSections(), m.width, m.height)
	}

	var content string
	if !m.state.LoggedIn() {
		content = m.authView.View()
	} else {
		content = lipgloss.JoinHorizontal(lipgloss.Top,
			paneStyle(m.focus == PaneSidebar).Render(m.sidebar.View()),
			paneStyle(m.focus == PaneList).Render(m.list.View()),
			paneStyle(m.focus == PaneEditor).Render(m.editor.View()),
		)
	}

	statusText := helpStyle().Render(m.hints())
	if m.status != "" {
		if m.statusErr {
			statusText = statusErrorStyle().Render(m.status)
		} else {
			statusText = statusOkStyle().Render(m.status)
		}
	}
	statusBar := statusBarStyle().Width(m.width).Render(statusText)

	return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
}

func paneStyle(focused bool) lipgloss.Style {
	if focused {
		return theme.PaneFocused
	}
	return theme.Pane
}

func (m AppModel) hints() string {
	if !m.state.LoggedIn() {
		return "tab: next field | enter: submit | ctrl+r: switch sign in/up | ctrl+c: quit"
	}
	switch m.focus {
	case PaneSidebar:
		return "j/k: navigate | enter: open view | /: filter tags | L: sign out | tab: next pane | ?: help"
	case PaneEditor:
		if m.editor.IsTrash() {
			return "r: restore | D: delete forever | esc: back | ?: help"
		}
		return "tab: next field | esc: back to list | ctrl+n: new note | ctrl+t: theme"
	}
	return "j/k: navigate | enter: open | /: search | s: sort | n: new | tab: next pane | ?: help | q: quit"
}

func helpSections() []shared.HelpSection {
	return []shared.HelpSection{
		{
			Title: "Global",
			Binds: []shared.HelpBind{
				{Key: "tab / shift+tab", Desc: "Next / previous pane"},
				{Key: "ctrl+n", Desc: "New note"},
				{Key: "ctrl+t", Desc: "Toggle light / dark theme"},
				{Key: "?", Desc: "Show this help"},
				{Key: "q", Desc: "Quit"},
				{Key: "ctrl+c", Desc: "Force quit"},
			},
		},
		{
			Title: "Sidebar",
			Binds: []shared.HelpBind{
				{Key: "j / k", Desc: "Navigate views and tags"},
				{Key: "enter", Desc: "Show view"},
				{Key: "/", Desc: "Fuzzy filter tags"},
				{Key: "L", Desc: "Sign out"},
			},
		},
		{
			Title: "Note List",
			Binds: []shared.HelpBind{
				{Key: "j / k", Desc: "Navigate notes"},
				{Key: "enter", Desc: "Open note"},
				{Key: "/", Desc: "Search"},
				{Key: "ctrl+u", Desc: "Clear search"},
				{Key: "s", Desc: "Cycle sort"},
				{Key: "n", Desc: "New note"},
			},
		},
		{
			Title: "Editor",
			Binds: []shared.HelpBind{
				{Key: "tab", Desc: "Title / content / tags"},
				{Key: "enter", Desc: "Add tag (tag field)"},
				{Key: "backspace", Desc: "Remove last tag (empty tag field)"},
				{Key: "alt+b / i / l", Desc: "Bold / italic / list"},
				{Key: "alt+p", Desc: "Toggle preview"},
				{Key: "alt+f", Desc: "Toggle favorite"},
				{Key: "alt+a / x", Desc: "Attach image / remove attachment"},
				{Key: "alt+g", Desc: "AI tags"},
				{Key: "alt+s", Desc: "AI summary (esc dismisses)"},
				{Key: "alt+r", Desc: "AI polish"},
				{Key: "alt+d", Desc: "Move to trash"},
				{Key: "esc", Desc: "Save and back to list"},
			},
		},
		{
			Title: "Trash",
			Binds: []shared.HelpBind{
				{Key: "r", Desc: "Restore note"},
				{Key: "D", Desc: "Delete forever"},
			},
		},
	}
}
