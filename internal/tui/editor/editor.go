// Package editor is the note editing pane: title, markdown body, tags,
// attachments, AI helpers, and the trash-mode actions.
package editor

import (
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"smartnote/internal/ai"
	"smartnote/internal/autosave"
	"smartnote/internal/logs"
	"smartnote/internal/markdown"
	"smartnote/internal/notes"
	"smartnote/internal/notes/service"
	"smartnote/internal/tui/messages"
	"smartnote/internal/tui/shared"
)

type field int

const (
	fieldTitle field = iota
	fieldContent
	fieldTags
	fieldCount
)

const (
	actionAttach          = "attach"
	actionDetach          = "detach"
	actionDeletePermanent = "delete-permanent"
)

// Model edits one note at a time
type Model struct {
	svc       service.NoteService
	assistant *ai.Assistant
	aiTimeout time.Duration
	debouncer *autosave.Debouncer

	note   notes.Note
	loaded bool
	dirty  bool

	title    textinput.Model
	content  textarea.Model
	tagInput textinput.Model
	tags     []string
	focus    field

	preview  bool
	viewport viewport.Model

	busy    bool
	busyOp  aiOp
	summary string

	prompt       *shared.TextInputModel
	promptAction string
	confirm      *shared.ConfirmationModal

	focused bool
	width   int
	height  int
}

// New creates an empty editor. A zero delay uses autosave.DefaultDelay.
func New(svc service.NoteService, assistant *ai.Assistant, delay, aiTimeout time.Duration) Model {
	title := textinput.New()
	title.Placeholder = "Note Title"
	title.Prompt = ""
	title.CharLimit = 256

	content := textarea.New()
	content.Placeholder = "Start typing... (markdown supported)"
	content.ShowLineNumbers = false
	content.CharLimit = 0
	content.MaxHeight = 0
	content.Prompt = ""

	tagInput := textinput.New()
	tagInput.Placeholder = "Add tag..."
	tagInput.Prompt = "+ "
	tagInput.CharLimit = 64

	if aiTimeout <= 0 {
		aiTimeout = 30 * time.Second
	}

	return Model{
		svc:       svc,
		assistant: assistant,
		aiTimeout: aiTimeout,
		debouncer: autosave.New(delay),
		title:     title,
		content:   content,
		tagInput:  tagInput,
		viewport:  viewport.New(0, 0),
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.layout()
}

func (m *Model) SetFocused(f bool) {
	m.focused = f
	m.applyFocus()
}

// CurrentID returns the open note's id, or ""
func (m Model) CurrentID() string {
	if !m.loaded {
		return ""
	}
	return m.note.ID
}

// IsTrash reports whether the open note is in the trash (read-only mode)
func (m Model) IsTrash() bool {
	return m.loaded && m.note.IsDeleted
}

// Busy reports whether an AI request is in flight
func (m Model) Busy() bool {
	return m.busy
}

// Dirty reports whether edits are waiting for autosave
func (m Model) Dirty() bool {
	return m.dirty
}

// InModal reports whether a prompt or confirmation owns the keyboard
func (m Model) InModal() bool {
	return m.prompt != nil || m.confirm != nil
}

// Open flushes pending edits and loads id. An empty id closes the editor.
func (m *Model) Open(id string) tea.Cmd {
	if m.loaded && m.note.ID == id {
		return nil
	}
	cmd := m.Flush()
	m.clear()
	if id == "" {
		return cmd
	}

	n, err := m.svc.Get(id)
	if err != nil {
		logs.Logger.Warn().Err(err).Str("note_id", id).Msg("cannot open note")
		return cmd
	}
	m.load(n)
	return cmd
}

func (m *Model) clear() {
	m.note = notes.Note{}
	m.loaded = false
	m.dirty = false
	m.tags = nil
	m.summary = ""
	m.preview = false
	m.prompt = nil
	m.confirm = nil
	m.focus = fieldTitle
	m.title.SetValue("")
	m.content.SetValue("")
	m.tagInput.SetValue("")
}

func (m *Model) load(n notes.Note) {
	m.note = n
	m.loaded = true
	m.dirty = false
	m.title.SetValue(n.Title)
	m.content.SetValue(n.Content)
	m.tags = append([]string{}, n.Tags...)
	m.tagInput.SetValue("")
	if n.IsDeleted {
		m.preview = false
	}
	m.layout()
	m.applyFocus()
}

// Flush saves pending edits immediately
func (m *Model) Flush() tea.Cmd {
	if !m.loaded || !m.dirty {
		return nil
	}
	m.debouncer.Cancel(m.note.ID)
	return m.save()
}

func (m *Model) save() tea.Cmd {
	if !m.loaded || !m.dirty {
		return nil
	}
	m.dirty = false

	title := m.title.Value()
	content := m.content.Value()
	tags := append([]string{}, m.tags...)
	n, err := m.svc.Update(m.note.ID, notes.Patch{Title: &title, Content: &content, Tags: &tags})
	if err != nil {
		logs.Logger.Error().Err(err).Str("note_id", m.note.ID).Msg("autosave failed")
		return messages.StatusError("Could not save note")
	}
	m.note = n
	return messages.NotesChanged
}

// edited marks the note dirty and restarts the autosave timer
func (m *Model) edited() tea.Cmd {
	m.dirty = true
	return m.debouncer.Schedule(m.note.ID)
}

func (m *Model) applyFocus() {
	m.title.Blur()
	m.content.Blur()
	m.tagInput.Blur()
	if !m.focused || !m.loaded || m.note.IsDeleted || m.preview {
		return
	}
	switch m.focus {
	case fieldTitle:
		m.title.Focus()
	case fieldContent:
		m.content.Focus()
	case fieldTags:
		m.tagInput.Focus()
	}
}

func (m *Model) cycleFocus(delta int) {
	m.focus = field((int(m.focus) + delta + int(fieldCount)) % int(fieldCount))
	m.applyFocus()
}

// AddTag appends a trimmed tag unless blank or already present
func (m *Model) AddTag(raw string) bool {
	tag := strings.TrimSpace(raw)
	if tag == "" || slices.Contains(m.tags, tag) {
		return false
	}
	m.tags = append(m.tags, tag)
	return true
}

// RemoveTag drops tag if present
func (m *Model) RemoveTag(tag string) bool {
	before := len(m.tags)
	m.tags = notes.RemoveTag(m.tags, tag)
	return len(m.tags) != before
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case autosave.FireMsg:
		if m.debouncer.Due(msg) && m.loaded && msg.Key == m.note.ID {
			cmd := m.save()
			return m, cmd
		}
		return m, nil

	case aiResultMsg:
		return m.applyAIResult(msg)

	case shared.TextInputResultMsg:
		return m.handlePromptResult(msg)

	case shared.ConfirmationResultMsg:
		return m.handleConfirmResult(msg)

	case tea.KeyMsg:
		if m.prompt != nil {
			_, cmd := m.prompt.Update(msg)
			return m, cmd
		}
		if m.confirm != nil {
			return m, m.confirm.Update(msg)
		}
		if !m.loaded {
			return m, nil
		}
		if m.note.IsDeleted {
			return m.handleTrashKeys(msg)
		}
		return m.handleKeys(msg)
	}

	if m.prompt != nil {
		_, cmd := m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleTrashKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "r", "alt+r":
		n, err := m.svc.Restore(m.note.ID)
		if err != nil {
			logs.Logger.Error().Err(err).Str("note_id", m.note.ID).Msg("restore failed")
			return m, messages.StatusError("Could not restore note")
		}
		m.load(n)
		return m, tea.Batch(messages.NotesChanged, messages.Status("Note restored"))
	case "D", "alt+d":
		m.confirm = shared.NewConfirmationModal(actionDeletePermanent,
			"Delete this note forever?",
			"\""+m.note.DisplayTitle()+"\" cannot be recovered.",
			min(60, max(30, m.width-4)))
		return m, nil
	case "esc":
		return m, messages.FocusPane(messages.PaneList)
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.summary != "" {
			m.summary = ""
			m.layout()
			return m, nil
		}
		cmd := tea.Batch(m.Flush(), messages.FocusPane(messages.PaneList))
		return m, cmd
	case "tab":
		if !m.preview {
			m.cycleFocus(1)
		}
		return m, nil
	case "shift+tab":
		if !m.preview {
			m.cycleFocus(-1)
		}
		return m, nil
	case "alt+p":
		m.preview = !m.preview
		if m.preview {
			m.refreshPreview()
		}
		m.applyFocus()
		return m, nil
	case "alt+b":
		cmd := m.insertMarkdown(markdown.Bold)
		return m, cmd
	case "alt+i":
		cmd := m.insertMarkdown(markdown.Italic)
		return m, cmd
	case "alt+l":
		cmd := m.insertMarkdown(markdown.List)
		return m, cmd
	case "alt+f":
		return m.toggleFavorite()
	case "alt+a":
		m.prompt = shared.NewTextInput("Image path", "~/Pictures/photo.png", shared.ValidateReadableFile)
		m.prompt.SetWidth(min(70, max(30, m.width)))
		m.promptAction = actionAttach
		return m, m.prompt.Init()
	case "alt+x":
		if len(m.note.Attachments) == 0 {
			return m, messages.Status("No attachments to remove")
		}
		m.prompt = shared.NewTextInput("Remove attachment #", "1", shared.ValidateIndex(len(m.note.Attachments)))
		m.prompt.SetWidth(min(70, max(30, m.width)))
		m.promptAction = actionDetach
		return m, m.prompt.Init()
	case "alt+g":
		return m.startAI(opTags)
	case "alt+s":
		return m.startAI(opSummary)
	case "alt+r":
		return m.startAI(opRewrite)
	case "alt+d":
		return m.softDelete()
	}

	if m.preview {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch m.focus {
	case fieldTitle:
		if msg.String() == "enter" {
			m.cycleFocus(1)
			return m, nil
		}
		before := m.title.Value()
		var cmd tea.Cmd
		m.title, cmd = m.title.Update(msg)
		if m.title.Value() != before {
			cmd = tea.Batch(cmd, m.edited())
		}
		return m, cmd

	case fieldContent:
		before := m.content.Value()
		var cmd tea.Cmd
		m.content, cmd = m.content.Update(msg)
		if m.content.Value() != before {
			cmd = tea.Batch(cmd, m.edited())
		}
		return m, cmd

	case fieldTags:
		switch msg.String() {
		case "enter":
			if m.AddTag(m.tagInput.Value()) {
				m.tagInput.SetValue("")
				cmd := m.edited()
				return m, cmd
			}
			m.tagInput.SetValue("")
			return m, nil
		case "backspace":
			if m.tagInput.Value() == "" && len(m.tags) > 0 {
				m.tags = m.tags[:len(m.tags)-1]
				cmd := m.edited()
				return m, cmd
			}
		}
		var cmd tea.Cmd
		m.tagInput, cmd = m.tagInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// insertMarkdown inserts syntax at the cursor. The textarea has no
// selection, so this is always the empty-selection form.
func (m *Model) insertMarkdown(kind markdown.Syntax) tea.Cmd {
	if m.preview {
		return nil
	}
	m.focus = fieldContent
	m.applyFocus()
	m.content.InsertString(markdown.Snippet(kind))
	return m.edited()
}

func (m Model) toggleFavorite() (Model, tea.Cmd) {
	n, err := m.svc.ToggleFavorite(m.note.ID)
	if err != nil {
		logs.Logger.Error().Err(err).Str("note_id", m.note.ID).Msg("favorite toggle failed")
		return m, messages.StatusError("Could not update favorite")
	}
	m.note.IsFavorite = n.IsFavorite
	return m, messages.NotesChanged
}

func (m Model) softDelete() (Model, tea.Cmd) {
	flush := m.Flush()
	n, err := m.svc.SoftDelete(m.note.ID)
	if err != nil {
		logs.Logger.Error().Err(err).Str("note_id", m.note.ID).Msg("delete failed")
		return m, tea.Batch(flush, messages.StatusError("Could not delete note"))
	}
	m.summary = ""
	m.load(n)
	return m, tea.Batch(flush, messages.NotesChanged, messages.Status("Moved to trash"))
}

func (m Model) handleConfirmResult(msg shared.ConfirmationResultMsg) (Model, tea.Cmd) {
	m.confirm = nil
	if !msg.Confirmed || msg.Action != actionDeletePermanent || !m.loaded {
		return m, nil
	}

	id := m.note.ID
	if err := m.svc.PermanentDelete(id); err != nil {
		logs.Logger.Error().Err(err).Str("note_id", id).Msg("permanent delete failed")
		return m, messages.StatusError("Could not delete note")
	}
	m.debouncer.Cancel(id)
	m.clear()
	return m, tea.Batch(
		func() tea.Msg { return messages.NoteRemovedMsg{ID: id} },
		messages.Status("Note deleted permanently"),
	)
}

func (m Model) handlePromptResult(msg shared.TextInputResultMsg) (Model, tea.Cmd) {
	action := m.promptAction
	m.prompt = nil
	m.promptAction = ""
	if msg.Cancelled || !m.loaded {
		return m, nil
	}

	switch action {
	case actionAttach:
		path := shared.ExpandHome(strings.TrimSpace(msg.Value))
		data, err := os.ReadFile(path)
		if err != nil {
			logs.Logger.Warn().Err(err).Str("path", path).Msg("cannot read attachment")
			return m, messages.StatusError("Could not read " + msg.Value)
		}
		n, err := m.svc.AddAttachment(m.note.ID, notes.NewAttachment(filepath.Base(path), data))
		if err != nil {
			logs.Logger.Error().Err(err).Str("note_id", m.note.ID).Msg("attach failed")
			return m, messages.StatusError("Could not attach file")
		}
		m.note.Attachments = n.Attachments
		m.note.UpdatedAt = n.UpdatedAt
		m.layout()
		return m, tea.Batch(messages.NotesChanged, messages.Status("Attached "+filepath.Base(path)))

	case actionDetach:
		i, _ := strconv.Atoi(strings.TrimSpace(msg.Value))
		if i < 1 || i > len(m.note.Attachments) {
			return m, nil
		}
		att := m.note.Attachments[i-1]
		n, err := m.svc.RemoveAttachment(m.note.ID, att.ID)
		if err != nil {
			logs.Logger.Error().Err(err).Str("note_id", m.note.ID).Msg("detach failed")
			return m, messages.StatusError("Could not remove attachment")
		}
		m.note.Attachments = n.Attachments
		m.note.UpdatedAt = n.UpdatedAt
		m.layout()
		return m, tea.Batch(messages.NotesChanged, messages.Status("Removed "+att.Name))
	}
	return m, nil
}
