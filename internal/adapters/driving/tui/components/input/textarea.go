package input

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/chunkctl/internal/adapters/driving/tui/styles"
)

// Area wraps a bubbles textarea for multi-line chunk content.
type Area struct {
	textarea textarea.Model
	styles   *styles.Styles
	label    string
}

// NewArea creates a multi-line input labelled label.
func NewArea(s *styles.Styles, label, placeholder string) *Area {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(60)
	ta.SetHeight(8)

	return &Area{
		textarea: ta,
		styles:   s,
		label:    label,
	}
}

// Init initialises the area.
func (a *Area) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles input messages.
func (a *Area) Update(msg tea.Msg) (*Area, tea.Cmd) {
	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	return a, cmd
}

// View renders the area under its label.
func (a *Area) View() string {
	return a.styles.Title.Render(a.label+":") + "\n" + a.styles.InputField.Render(a.textarea.View())
}

// Value returns the current content.
func (a *Area) Value() string {
	return a.textarea.Value()
}

// SetValue replaces the content.
func (a *Area) SetValue(value string) {
	a.textarea.SetValue(value)
}

// Focus sets focus on the area.
func (a *Area) Focus() tea.Cmd {
	return a.textarea.Focus()
}

// Blur removes focus from the area.
func (a *Area) Blur() {
	a.textarea.Blur()
}

// Focused returns whether the area is focused.
func (a *Area) Focused() bool {
	return a.textarea.Focused()
}

// SetDimensions sizes the area, leaving room for the border and label.
func (a *Area) SetDimensions(width, height int) {
	w := width - 4
	if w < 20 {
		w = 20
	}
	h := height
	if h < 3 {
		h = 3
	}
	a.textarea.SetWidth(w)
	a.textarea.SetHeight(h)
}

// Reset clears the content.
func (a *Area) Reset() {
	a.textarea.Reset()
}
