package theme

import (
	"github.com/charmbracelet/lipgloss"

	"smartnote/internal/storage"
)

// Palette is one complete set of colors
type Palette struct {
	Text          lipgloss.Color
	TextMuted     lipgloss.Color
	TextBright    lipgloss.Color
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Accent        lipgloss.Color
	Success       lipgloss.Color
	Warning       lipgloss.Color
	Danger        lipgloss.Color
	Surface       lipgloss.Color
	Border        lipgloss.Color
	BorderFocused lipgloss.Color
}

// ---------------------------------------------------------------------------
// Palettes: ANSI 0-15 plus a few 256-color greys
// ---------------------------------------------------------------------------

var Dark = Palette{
	Text:          lipgloss.Color("7"),
	TextMuted:     lipgloss.Color("8"),
	TextBright:    lipgloss.Color("15"),
	Primary:       lipgloss.Color("4"),   // blue
	Secondary:     lipgloss.Color("6"),   // cyan
	Accent:        lipgloss.Color("5"),   // magenta
	Success:       lipgloss.Color("2"),   // green
	Warning:       lipgloss.Color("3"),   // yellow
	Danger:        lipgloss.Color("1"),   // red
	Surface:       lipgloss.Color("236"), // dark bg
	Border:        lipgloss.Color("8"),
	BorderFocused: lipgloss.Color("4"),
}

var Light = Palette{
	Text:          lipgloss.Color("238"),
	TextMuted:     lipgloss.Color("245"),
	TextBright:    lipgloss.Color("232"),
	Primary:       lipgloss.Color("25"),
	Secondary:     lipgloss.Color("30"),
	Accent:        lipgloss.Color("90"),
	Success:       lipgloss.Color("28"),
	Warning:       lipgloss.Color("136"),
	Danger:        lipgloss.Color("124"),
	Surface:       lipgloss.Color("254"), // light bg
	Border:        lipgloss.Color("250"),
	BorderFocused: lipgloss.Color("25"),
}

var current = storage.ThemeDark

var (
	Text, TextMuted, TextBright         lipgloss.Color
	Primary, Secondary, Accent          lipgloss.Color
	Success, Warning, Danger            lipgloss.Color
	Surface, Border, BorderFocused      lipgloss.Color
	Title, Subtitle, Muted, Bold        lipgloss.Style
	Error, Warn, Ok                     lipgloss.Style
	Cursor, Selected, SelectedBg        lipgloss.Style
	Tag, Favorite, Date                 lipgloss.Style
	ModalBox, ModalTitle, ModalHelp     lipgloss.Style
	StatusBar, HelpHint                 lipgloss.Style
	NavActive, NavInactive              lipgloss.Style
	Pane, PaneFocused                   lipgloss.Style
	MarkdownHeading, MarkdownCode       lipgloss.Style
	MarkdownQuote, MarkdownLink         lipgloss.Style
	SummaryBox                          lipgloss.Style
)

func init() {
	Apply(storage.ThemeDark)
}

// Current returns the theme last passed to Apply
func Current() storage.Theme {
	return current
}

// Apply rebuilds every style from the palette for t. Views read the package
// variables at render time, so the change shows on the next frame.
func Apply(t storage.Theme) {
	current = t
	p := Dark
	if t == storage.ThemeLight {
		p = Light
	}

	Text, TextMuted, TextBright = p.Text, p.TextMuted, p.TextBright
	Primary, Secondary, Accent = p.Primary, p.Secondary, p.Accent
	Success, Warning, Danger = p.Success, p.Warning, p.Danger
	Surface, Border, BorderFocused = p.Surface, p.Border, p.BorderFocused

	// -----------------------------------------------------------------------
	// Semantic text styles
	// -----------------------------------------------------------------------

	Title = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Subtitle = lipgloss.NewStyle().Bold(true).Foreground(Secondary)
	Muted = lipgloss.NewStyle().Foreground(TextMuted)
	Bold = lipgloss.NewStyle().Bold(true)

	Error = lipgloss.NewStyle().Bold(true).Foreground(Danger)
	Warn = lipgloss.NewStyle().Bold(true).Foreground(Warning)
	Ok = lipgloss.NewStyle().Bold(true).Foreground(Success)

	Cursor = lipgloss.NewStyle().Bold(true).Foreground(Success)
	Selected = lipgloss.NewStyle().Bold(true).Foreground(Warning)
	SelectedBg = lipgloss.NewStyle().Foreground(TextBright).Background(Surface)

	Tag = lipgloss.NewStyle().Foreground(Accent)
	Favorite = lipgloss.NewStyle().Foreground(Warning)
	Date = lipgloss.NewStyle().Foreground(TextMuted)

	// -----------------------------------------------------------------------
	// Reusable component helpers
	// -----------------------------------------------------------------------

	ModalBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(1, 2)
	ModalTitle = lipgloss.NewStyle().Bold(true).Foreground(Warning)
	ModalHelp = lipgloss.NewStyle().Foreground(TextMuted)

	StatusBar = lipgloss.NewStyle().
		Foreground(TextMuted).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Border)
	HelpHint = lipgloss.NewStyle().Foreground(TextMuted)

	NavActive = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	NavInactive = lipgloss.NewStyle().Foreground(Text)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Border)
	PaneFocused = Pane.BorderForeground(BorderFocused)

	MarkdownHeading = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	MarkdownCode = lipgloss.NewStyle().Foreground(Secondary)
	MarkdownQuote = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)
	MarkdownLink = lipgloss.NewStyle().Foreground(Primary).Underline(true)

	SummaryBox = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(Accent).
		PaddingLeft(1)
}
