// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/chunkctl/internal/core/domain"
)

// Theme is the colour palette of the chunk browser.
type Theme struct {
	// Accent marks titles and the highlighted chunk.
	Accent lipgloss.Color

	// Text is the colour of chunk content and labels.
	Text lipgloss.Color

	// Dim is for placeholders, hints and previews.
	Dim lipgloss.Color

	// InFlight colours browses and saves that have not answered yet.
	InFlight lipgloss.Color

	// Saved, Caution and Failed colour edit and browse outcomes.
	Saved   lipgloss.Color
	Caution lipgloss.Color
	Failed  lipgloss.Color

	// Frame outlines the editor fields.
	Frame lipgloss.Color

	// Bar is the status bar background.
	Bar lipgloss.Color
}

// DefaultTheme returns the palette used when none is configured.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:   lipgloss.Color("#7C3AED"),
		Text:     lipgloss.Color("#CDD6F4"),
		Dim:      lipgloss.Color("#6C7086"),
		InFlight: lipgloss.Color("#06B6D4"),
		Saved:    lipgloss.Color("#A6E3A1"),
		Caution:  lipgloss.Color("#F9E2AF"),
		Failed:   lipgloss.Color("#F38BA8"),
		Frame:    lipgloss.Color("#45475A"),
		Bar:      lipgloss.Color("#181825"),
	}
}

// Styles are the rendered forms of a Theme.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style

	// Pending, Success, Warning and Error follow the result area and the
	// editor status line.
	Pending lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	// InputField frames the point id field and the content area.
	InputField lipgloss.Style

	StatusBar lipgloss.Style
	Help      lipgloss.Style
}

// NewStyles builds styles from theme; nil selects DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title:  lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		Normal: lipgloss.NewStyle().Foreground(theme.Text),
		Muted:  lipgloss.NewStyle().Foreground(theme.Dim),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Text).
			Background(theme.Accent),

		Pending: lipgloss.NewStyle().Italic(true).Foreground(theme.InFlight),
		Success: lipgloss.NewStyle().Foreground(theme.Saved),
		Warning: lipgloss.NewStyle().Foreground(theme.Caution),
		Error:   lipgloss.NewStyle().Foreground(theme.Failed),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Frame).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Dim).
			Background(theme.Bar).
			Padding(0, 1),

		Help: lipgloss.NewStyle().Foreground(theme.Dim),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Status returns the style for an editor status of the given kind.
func (s *Styles) Status(kind domain.StatusKind) lipgloss.Style {
	switch kind {
	case domain.StatusPending:
		return s.Pending
	case domain.StatusSuccess:
		return s.Success
	case domain.StatusError:
		return s.Error
	default:
		return s.Muted
	}
}

// Phase returns the style for the message of a result area phase.
func (s *Styles) Phase(phase domain.ResultPhase) lipgloss.Style {
	switch phase {
	case domain.ResultsLoading:
		return s.Pending
	case domain.ResultsFailed:
		return s.Error
	default:
		return s.Muted
	}
}
