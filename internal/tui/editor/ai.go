package editor

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"smartnote/internal/logs"
	"smartnote/internal/notes"
	"smartnote/internal/tui/messages"
)

type aiOp int

const (
	opTags aiOp = iota
	opSummary
	opRewrite
)

func (o aiOp) String() string {
	switch o {
	case opTags:
		return "Generating tags"
	case opSummary:
		return "Summarizing"
	case opRewrite:
		return "Polishing"
	}
	return "Working"
}

// aiResultMsg carries an assistant result back to the editor. ID is the note
// the request was made for, which may no longer be open.
type aiResultMsg struct {
	ID   string
	Op   aiOp
	Tags []string
	Text string
	// Input is the content that was sent
	Input string
}

// startAI runs one assistant call as a command. Only one call may be in
// flight at a time.
func (m Model) startAI(op aiOp) (Model, tea.Cmd) {
	if m.busy {
		return m, messages.Status("AI is busy, please wait")
	}
	if m.assistant == nil {
		return m, messages.StatusError("AI assistant unavailable")
	}

	content := m.content.Value()
	if content == "" {
		return m, nil
	}

	m.busy = true
	m.busyOp = op

	id := m.note.ID
	assistant := m.assistant
	timeout := m.aiTimeout
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		res := aiResultMsg{ID: id, Op: op, Input: content}
		switch op {
		case opTags:
			res.Tags = assistant.SuggestTags(ctx, content)
		case opSummary:
			res.Text = assistant.Summarize(ctx, content)
		case opRewrite:
			res.Text = assistant.Rewrite(ctx, content, "")
		}
		return res
	}
}

// applyAIResult merges a result into the open note, or into the latest
// stored copy when the user has moved on to another note.
func (m Model) applyAIResult(msg aiResultMsg) (Model, tea.Cmd) {
	m.busy = false

	if !m.loaded || msg.ID != m.note.ID {
		cmd := m.applyToStored(msg)
		return m, cmd
	}
	if m.note.IsDeleted {
		return m, nil
	}

	switch msg.Op {
	case opTags:
		added := 0
		for _, t := range msg.Tags {
			if m.AddTag(t) {
				added++
			}
		}
		if added == 0 {
			return m, messages.Status("No new tags suggested")
		}
		cmd := tea.Batch(m.edited(), messages.Status(fmt.Sprintf("Added %d tag(s)", added)))
		return m, cmd

	case opSummary:
		m.summary = msg.Text
		m.layout()
		return m, nil

	case opRewrite:
		if msg.Text == msg.Input {
			return m, messages.Status("Content unchanged")
		}
		m.content.SetValue(msg.Text)
		if m.preview {
			m.refreshPreview()
		}
		cmd := tea.Batch(m.edited(), messages.Status("Content polished"))
		return m, cmd
	}
	return m, nil
}

func (m Model) applyToStored(msg aiResultMsg) tea.Cmd {
	n, err := m.svc.Get(msg.ID)
	if err != nil || n.IsDeleted {
		return nil
	}

	var patch notes.Patch
	switch msg.Op {
	case opTags:
		merged := notes.MergeTags(n.Tags, msg.Tags)
		if len(merged) == len(n.Tags) {
			return nil
		}
		patch.Tags = &merged
	case opRewrite:
		if msg.Text == msg.Input || msg.Text == n.Content {
			return nil
		}
		text := msg.Text
		patch.Content = &text
	default:
		return nil
	}

	if _, err := m.svc.Update(msg.ID, patch); err != nil {
		logs.Logger.Error().Err(err).Str("note_id", msg.ID).Msg("applying AI result failed")
		return nil
	}
	return messages.NotesChanged
}
