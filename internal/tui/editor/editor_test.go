package editor

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartnote/internal/ai"
	"smartnote/internal/autosave"
	"smartnote/internal/notes"
	"smartnote/internal/notes/service"
	"smartnote/internal/storage"
	"smartnote/internal/tui/messages"
	"smartnote/internal/tui/shared"
)

type stubGenerator struct {
	reply string
}

func (g *stubGenerator) Generate(context.Context, ai.Request) (string, error) {
	return g.reply, nil
}

func setup(t *testing.T, reply string) (Model, service.NoteService) {
	t.Helper()
	kv, err := storage.NewFileKV(filepath.Join(t.TempDir(), "store"))
	require.NoError(t, err)
	svc := service.NewNoteService(storage.NewRepository(kv))

	m := New(svc, ai.NewAssistant(&stubGenerator{reply: reply}), time.Millisecond, time.Second)
	m.SetSize(80, 30)
	m.SetFocused(true)
	return m, svc
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func alt(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(runes(string(r)))
	}
	return m
}

// collect runs cmd and flattens batches into their messages
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}
	return out
}

// fire waits out a freshly scheduled tick and delivers it
func fire(m Model, id string) Model {
	m, _ = m.Update(m.debouncer.Schedule(id)())
	return m
}

func TestAutosaveAfterDebounce(t *testing.T) {
	m, svc := setup(t, "")
	n, _ := svc.Add()
	m.Open(n.ID)

	m = typeText(m, "Groceries")
	assert.True(t, m.Dirty())
	stored, _ := svc.Get(n.ID)
	assert.Empty(t, stored.Title)

	// an older tick is ignored
	m, _ = m.Update(autosave.FireMsg{Key: n.ID, Gen: 1})
	assert.True(t, m.Dirty())

	m = fire(m, n.ID)
	assert.False(t, m.Dirty())
	stored, _ = svc.Get(n.ID)
	assert.Equal(t, "Groceries", stored.Title)
}

func TestOpeningAnotherNoteFlushes(t *testing.T) {
	m, svc := setup(t, "")
	a, _ := svc.Add()
	b, _ := svc.Add()

	m.Open(a.ID)
	m = typeText(m, "draft")
	cmd := m.Open(b.ID)
	require.NotNil(t, cmd)

	stored, _ := svc.Get(a.ID)
	assert.Equal(t, "draft", stored.Title)
	assert.Equal(t, b.ID, m.CurrentID())
	assert.False(t, m.debouncer.Pending(a.ID))
}

func TestTagInput(t *testing.T) {
	m, svc := setup(t, "")
	n, _ := svc.Add()
	m.Open(n.ID)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, fieldTags, m.focus)

	m = typeText(m, "  work ")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"work"}, m.tags)

	m = typeText(m, "work")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"work"}, m.tags)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"work"}, m.tags)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Empty(t, m.tags)

	m.AddTag("home")
	assert.True(t, m.RemoveTag("home"))
	assert.False(t, m.RemoveTag("home"))
}

func TestMarkdownInsert(t *testing.T) {
	m, svc := setup(t, "")
	n, _ := svc.Add()
	m.Open(n.ID)

	m, _ = m.Update(alt('b'))
	assert.Equal(t, "****", m.content.Value())
	assert.Equal(t, fieldContent, m.focus)

	m, _ = m.Update(alt('l'))
	assert.Equal(t, "****\n- ", m.content.Value())
	assert.True(t, m.Dirty())
}

func TestFavoriteSavesImmediately(t *testing.T) {
	m, svc := setup(t, "")
	n, _ := svc.Add()
	m.Open(n.ID)

	m, _ = m.Update(alt('f'))
	stored, _ := svc.Get(n.ID)
	assert.True(t, stored.IsFavorite)
	assert.True(t, m.note.IsFavorite)
}

func TestTwoPhaseDelete(t *testing.T) {
	m, svc := setup(t, "")
	n, _ := svc.Add()
	m.Open(n.ID)
	m = typeText(m, "unsaved")

	m, _ = m.Update(alt('d'))
	assert.True(t, m.IsTrash())
	assert.Equal(t, n.ID, m.CurrentID())
	stored, _ := svc.Get(n.ID)
	assert.True(t, stored.IsDeleted)
	assert.Equal(t, "unsaved", stored.Title)

	// typing in trash mode edits nothing
	m = typeText(m, "x")
	assert.False(t, m.Dirty())

	m, _ = m.Update(runes("D"))
	require.True(t, m.InModal())
	m, cmd := m.Update(shared.ConfirmationResultMsg{Action: actionDeletePermanent, Confirmed: true})
	assert.Equal(t, "", m.CurrentID())
	assert.Contains(t, collect(cmd), messages.NoteRemovedMsg{ID: n.ID})

	_, err := svc.Get(n.ID)
	assert.ErrorIs(t, err, notes.ErrNotFound)
}

func TestRestoreFromTrash(t *testing.T) {
	m, svc := setup(t, "")
	n, _ := svc.Add()
	svc.SoftDelete(n.ID)
	m.Open(n.ID)
	require.True(t, m.IsTrash())

	m, _ = m.Update(runes("r"))
	assert.False(t, m.IsTrash())
	stored, _ := svc.Get(n.ID)
	assert.False(t, stored.IsDeleted)
}

func TestAITagsMergeOnlyNew(t *testing.T) {
	m, svc := setup(t, `["work", "Planning"]`)
	n, _ := svc.Add()
	content := "quarterly planning meeting notes"
	tags := []string{"work"}
	svc.Update(n.ID, notes.Patch{Content: &content, Tags: &tags})
	m.Open(n.ID)

	m, cmd := m.Update(alt('g'))
	require.NotNil(t, cmd)
	assert.True(t, m.Busy())

	// a second request while busy does not start another call
	_, again := m.Update(alt('s'))
	assert.IsType(t, messages.StatusMsg{}, again())

	m, _ = m.Update(cmd())
	assert.False(t, m.Busy())
	assert.Equal(t, []string{"work", "planning"}, m.tags)
	assert.True(t, m.Dirty())
}

func TestAISummaryAndDismiss(t *testing.T) {
	m, svc := setup(t, "A short summary.")
	n, _ := svc.Add()
	content := "long text"
	svc.Update(n.ID, notes.Patch{Content: &content})
	m.Open(n.ID)

	m, cmd := m.Update(alt('s'))
	m, _ = m.Update(cmd())
	assert.Equal(t, "A short summary.", m.summary)
	assert.Contains(t, m.View(), "A short summary.")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.summary)
}

func TestStaleAIResultAppliesToStoredNote(t *testing.T) {
	m, svc := setup(t, "Polished text.")
	a, _ := svc.Add()
	b, _ := svc.Add()
	content := "rough text"
	svc.Update(a.ID, notes.Patch{Content: &content})

	m.Open(a.ID)
	m, cmd := m.Update(alt('r'))
	require.NotNil(t, cmd)
	result := cmd()

	m.Open(b.ID)
	m, _ = m.Update(result)

	stored, _ := svc.Get(a.ID)
	assert.Equal(t, "Polished text.", stored.Content)
	assert.Empty(t, m.content.Value())
}

func TestAIActionsSkipEmptyNote(t *testing.T) {
	m, svc := setup(t, "Text the model made up.")
	n, _ := svc.Add()
	m.Open(n.ID)

	for _, k := range []rune{'g', 's', 'r'} {
		var cmd tea.Cmd
		m, cmd = m.Update(alt(k))
		assert.Nil(t, cmd)
		assert.False(t, m.Busy())
	}
	assert.Empty(t, m.content.Value())
	stored, _ := svc.Get(n.ID)
	assert.Empty(t, stored.Content)
}

func TestAIResultDroppedAfterSoftDelete(t *testing.T) {
	m, svc := setup(t, "Polished text.")
	n, _ := svc.Add()
	content := "rough text"
	svc.Update(n.ID, notes.Patch{Content: &content})
	m.Open(n.ID)

	m, cmd := m.Update(alt('r'))
	require.NotNil(t, cmd)
	result := cmd()

	m, _ = m.Update(alt('d'))
	require.True(t, m.IsTrash())
	m, _ = m.Update(result)

	assert.False(t, m.Busy())
	assert.False(t, m.Dirty())
	assert.Equal(t, "rough text", m.content.Value())
	stored, _ := svc.Get(n.ID)
	assert.Equal(t, "rough text", stored.Content)
	assert.True(t, stored.IsDeleted)
}

func TestAttachFromPath(t *testing.T) {
	m, svc := setup(t, "")
	n, _ := svc.Add()
	m.Open(n.ID)

	path := filepath.Join(t.TempDir(), "pixel.png")
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	require.NoError(t, os.WriteFile(path, png, 0o644))

	m, _ = m.Update(alt('a'))
	require.True(t, m.InModal())
	m, _ = m.Update(shared.TextInputResultMsg{Value: path})
	assert.False(t, m.InModal())

	stored, _ := svc.Get(n.ID)
	require.Len(t, stored.Attachments, 1)
	assert.Equal(t, notes.AttachmentImage, stored.Attachments[0].Type)
	assert.Equal(t, "pixel.png", stored.Attachments[0].Name)

	m, _ = m.Update(alt('x'))
	m, _ = m.Update(shared.TextInputResultMsg{Value: "1"})
	stored, _ = svc.Get(n.ID)
	assert.Empty(t, stored.Attachments)
}

func TestPreviewRendersMarkdown(t *testing.T) {
	m, svc := setup(t, "")
	n, _ := svc.Add()
	content := "# Heading\n\n- item"
	svc.Update(n.ID, notes.Patch{Content: &content})
	m.Open(n.ID)

	m, _ = m.Update(alt('p'))
	out := m.View()
	assert.Contains(t, out, "Heading")
	assert.Contains(t, out, "•")
}
