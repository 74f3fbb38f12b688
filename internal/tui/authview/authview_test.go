package authview

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartnote/internal/auth"
	"smartnote/internal/tui/messages"
)

type memStore struct {
	u *auth.User
}

func (s *memStore) LoadUser() *auth.User { return s.u }
func (s *memStore) SaveUser(u *auth.User) error {
	s.u = u
	return nil
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func key(m Model, k tea.KeyType) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: k})
}

func TestLoginFlow(t *testing.T) {
	store := &memStore{}
	m := New(auth.NewSession(store))

	m = typeText(m, "bob@example.com")
	m, _ = key(m, tea.KeyEnter) // next field
	m = typeText(m, "hunter22")
	m, cmd := key(m, tea.KeyEnter)

	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.LoggedInMsg)
	require.True(t, ok)
	assert.Equal(t, "bob", msg.User.Username)
	require.NotNil(t, store.u)
	assert.Empty(t, m.Error())
}

func TestShortPasswordShowsInlineError(t *testing.T) {
	store := &memStore{}
	m := New(auth.NewSession(store))

	m = typeText(m, "bob@example.com")
	m, _ = key(m, tea.KeyTab)
	m = typeText(m, "12345")
	m, cmd := key(m, tea.KeyEnter)

	assert.Nil(t, cmd)
	assert.Equal(t, auth.MsgShortPassword, m.Error())
	assert.Nil(t, store.u)
}

func TestRegisterRequiresUsername(t *testing.T) {
	store := &memStore{}
	m := New(auth.NewSession(store))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})

	m = typeText(m, "ann@example.com")
	m, _ = key(m, tea.KeyTab)
	m = typeText(m, "secret1")
	m, _ = key(m, tea.KeyTab)
	m, cmd := key(m, tea.KeyEnter)

	assert.Nil(t, cmd)
	assert.Equal(t, auth.MsgMissingFields, m.Error())

	m = typeText(m, "Ann")
	_, cmd = key(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.Equal(t, "Ann", cmd().(messages.LoggedInMsg).User.Username)
}
