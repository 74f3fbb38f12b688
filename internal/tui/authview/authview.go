// Package authview is the sign-in / sign-up screen shown while signed out.
package authview

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"smartnote/internal/auth"
	"smartnote/internal/logs"
	"smartnote/internal/tui/messages"
	"smartnote/internal/tui/shared"
	"smartnote/internal/tui/theme"
)

const (
	fieldEmail = iota
	fieldPassword
	fieldUsername
)

// Model collects credentials and signs in through the session
type Model struct {
	session  *auth.Session
	inputs   []textinput.Model
	focus    int
	register bool
	err      string
	width    int
	height   int
}

func New(session *auth.Session) Model {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Prompt = ""

	password := textinput.New()
	password.Placeholder = "at least 6 characters"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.Prompt = ""

	username := textinput.New()
	username.Placeholder = "your name"
	username.CharLimit = 64
	username.Prompt = ""

	m := Model{
		session: session,
		inputs:  []textinput.Model{email, password, username},
	}
	m.inputs[fieldEmail].Focus()
	return m
}

func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	for i := range m.inputs {
		m.inputs[i].Width = min(40, max(10, w-20))
	}
}

// Reset clears the form, used after logout
func (m *Model) Reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focus = fieldEmail
	m.err = ""
	m.inputs[fieldEmail].Focus()
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) fieldCount() int {
	if m.register {
		return 3
	}
	return 2
}

func (m *Model) setFocus(i int) tea.Cmd {
	n := m.fieldCount()
	m.focus = (i%n + n) % n
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == m.focus {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return cmd
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			cmd := m.setFocus(m.focus + 1)
			return m, cmd
		case "shift+tab", "up":
			cmd := m.setFocus(m.focus - 1)
			return m, cmd
		case "ctrl+r":
			m.register = !m.register
			m.err = ""
			cmd := m.setFocus(m.focus)
			return m, cmd
		case "enter":
			if m.focus < m.fieldCount()-1 {
				cmd := m.setFocus(m.focus + 1)
				return m, cmd
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	creds := auth.Credentials{
		Email:    m.inputs[fieldEmail].Value(),
		Password: m.inputs[fieldPassword].Value(),
		Register: m.register,
	}
	if m.register {
		creds.Username = m.inputs[fieldUsername].Value()
	}

	u, err := m.session.SignIn(creds)
	if err != nil {
		var verr *auth.ValidationError
		if errors.As(err, &verr) {
			m.err = verr.Msg
		} else {
			logs.Logger.Error().Err(err).Msg("sign-in failed")
			m.err = "Could not save your session."
		}
		return m, nil
	}

	m.err = ""
	return m, func() tea.Msg { return messages.LoggedInMsg{User: u} }
}

// Error returns the inline message currently shown
func (m Model) Error() string {
	return m.err
}

func (m Model) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Width(10)

	var b strings.Builder
	b.WriteString(theme.Title.Render("SmartNote"))
	b.WriteString("\n")
	if m.register {
		b.WriteString(theme.Muted.Render("Create an account"))
	} else {
		b.WriteString(theme.Muted.Render("Welcome back"))
	}
	b.WriteString("\n\n")

	labels := []string{"Email", "Password", "Username"}
	for i := 0; i < m.fieldCount(); i++ {
		label := labels[i]
		if i == m.focus {
			label = theme.Cursor.Render("> ") + label
		} else {
			label = "  " + label
		}
		b.WriteString(labelStyle.Render(label) + " " + m.inputs[i].View() + "\n")
	}

	if m.err != "" {
		b.WriteString("\n" + theme.Error.Render(m.err) + "\n")
	}

	box := theme.ModalBox.Render(strings.TrimRight(b.String(), "\n"))

	hint := "[ctrl+r] new here? sign up"
	if m.register {
		hint = "[ctrl+r] have an account? sign in"
	}
	return shared.CenterInPane(box, theme.HelpHint.Render(hint), m.width, m.height)
}
