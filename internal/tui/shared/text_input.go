package shared

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"smartnote/internal/tui/theme"
)

// TextInputModel wraps bubbles/textinput with validation
type TextInputModel struct {
	Input       textinput.Model
	Prompt      string
	Validator   func(string) error
	Placeholder string
	Error       string
	Width       int
}

// TextInputResultMsg is sent when input is confirmed or cancelled
type TextInputResultMsg struct {
	Value     string
	Cancelled bool
}

// NewTextInput creates a new text input component
func NewTextInput(prompt string, placeholder string, validator func(string) error) *TextInputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 1024
	return &TextInputModel{
		Input:       ti,
		Prompt:      prompt,
		Placeholder: placeholder,
		Validator:   validator,
	}
}

// Init implements tea.Model
func (m *TextInputModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m *TextInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			// Validate before accepting
			if m.Validator != nil {
				if err := m.Validator(m.Input.Value()); err != nil {
					m.Error = err.Error()
					return m, nil
				}
			}
			value := m.Input.Value()
			return m, func() tea.Msg {
				return TextInputResultMsg{Value: value}
			}

		case "esc":
			return m, func() tea.Msg {
				return TextInputResultMsg{Cancelled: true}
			}
		}
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)

	// Clear error when user types
	m.Error = ""

	return m, cmd
}

// View implements tea.Model
func (m *TextInputModel) View() string {
	var content string

	content += lipgloss.NewStyle().Foreground(theme.Secondary).Render(m.Prompt+": ") + m.Input.View() + "\n"

	if m.Error != "" {
		content += theme.Error.Render("Error: "+m.Error) + "\n"
	}

	content += theme.HelpHint.Render("[enter] confirm  [esc] cancel")

	box := lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(theme.Primary).Padding(0, 1)
	return box.Width(m.Width).Render(content)
}

// Value returns the current input value
func (m *TextInputModel) Value() string {
	return m.Input.Value()
}

// SetValue sets the input value
func (m *TextInputModel) SetValue(v string) {
	m.Input.SetValue(v)
}

// SetWidth sets both the outer box and inner input widths
func (m *TextInputModel) SetWidth(w int) {
	// Account for border (2) and padding (2)
	m.Width = w - 4
	// Inner input accounts for prompt text
	m.Input.Width = m.Width - lipgloss.Width(m.Prompt+": ")
}

// Focus focuses the input
func (m *TextInputModel) Focus() tea.Cmd {
	return m.Input.Focus()
}

// ValidateReadableFile checks that s names a regular file
func ValidateReadableFile(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("path required")
	}
	info, err := os.Stat(ExpandHome(s))
	if err != nil {
		return fmt.Errorf("cannot read %s", s)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", s)
	}
	return nil
}

// ValidateIndex returns a validator accepting 1..n
func ValidateIndex(n int) func(string) error {
	return func(s string) error {
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || i < 1 || i > n {
			return fmt.Errorf("enter a number from 1 to %d", n)
		}
		return nil
	}
}

// ExpandHome replaces a leading ~/ with the home directory
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return home + path[1:]
		}
	}
	return path
}
