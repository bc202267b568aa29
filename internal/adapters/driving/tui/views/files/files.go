// Package files provides the document selection view for the TUI.
package files

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/chunkctl/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/chunkctl/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/chunkctl/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/chunkctl/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chunkctl/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chunkctl/internal/core/domain"
	"github.com/custodia-labs/chunkctl/internal/core/ports/driving"
	"github.com/custodia-labs/chunkctl/internal/textsafe"
)

// View lists the known documents with a leading placeholder option.
// Choosing an option sets the filename field and browses it.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar
	nameField *input.Field

	directory driving.FilenameDirectory
	browser   driving.ChunkBrowser
	ctx       context.Context

	options      []string
	count        int
	selected     int
	scrollOffset int
	loading      bool
	typing       bool

	// notice is a blocking notification; keys only dismiss it.
	notice string

	width  int
	height int
}

// NewView creates a new files view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	directory driving.FilenameDirectory,
	browser driving.ChunkBrowser,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetHints(km.FilesHelp())

	return &View{
		styles:    s,
		keymap:    km,
		statusbar: bar,
		nameField: input.NewField(s, "Filename", "type a document name"),
		directory: directory,
		browser:   browser,
		ctx:       context.Background(),
		options:   []string{domain.SelectPlaceholder},
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the directory.
func (v *View) Init() tea.Cmd {
	return v.load()
}

// load returns a command that fetches the directory.
func (v *View) load() tea.Cmd {
	v.loading = true
	v.statusbar.SetState(status.StateLoading)
	v.statusbar.SetMessage("Loading files...")

	directory := v.directory
	ctx := v.ctx
	return func() tea.Msg {
		if directory == nil {
			return messages.FilenamesLoaded{Err: domain.ErrNotImplemented}
		}
		dir, err := directory.ListFilenames(ctx)
		return messages.FilenamesLoaded{Directory: dir, Err: err}
	}
}

// Update handles messages for the files view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.FilenamesLoaded:
		v.handleLoaded(msg)
		return v, nil

	case tea.KeyMsg:
		if v.notice != "" {
			return v.handleNoticeKey(msg)
		}
		if v.typing {
			return v.handleTypingKey(msg)
		}
		return v.handleKeyMsg(msg)
	}

	if v.typing {
		var cmd tea.Cmd
		v.nameField, cmd = v.nameField.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleLoaded applies a directory fetch, keeping the selected name when
// it is still listed.
func (v *View) handleLoaded(msg messages.FilenamesLoaded) {
	v.loading = false
	if msg.Err != nil {
		v.notice = domain.DirectoryFailureMessage(msg.Err)
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(v.notice)
		return
	}

	current := v.SelectedOption()
	v.options = msg.Directory.Options()
	v.count = msg.Directory.Len()
	v.selected = 0
	for i, name := range v.options {
		if i > 0 && name == current {
			v.selected = i
			break
		}
	}
	v.adjustScroll()
	v.statusbar.Clear()
	v.statusbar.SetCount(v.count, "files")
}

func (v *View) handleNoticeKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		v.notice = ""
	case "q":
		return v, func() tea.Msg { return messages.Quit{} }
	}
	return v, nil
}

func (v *View) handleTypingKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v.typing = false
		v.nameField.Blur()
		return v, v.choose(v.nameField.Value())
	case "esc":
		v.typing = false
		v.nameField.Blur()
		return v, nil
	}
	var cmd tea.Cmd
	v.nameField, cmd = v.nameField.Update(msg)
	return v, cmd
}

// handleKeyMsg handles key presses in list mode.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	km := v.keymap
	key := msg.String()
	switch {
	case keymap.Matches(key, km.Up):
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case keymap.Matches(key, km.Down):
		if v.selected < len(v.options)-1 {
			v.selected++
			v.adjustScroll()
		}
	case keymap.Matches(key, km.Select):
		return v, v.choose(v.SelectedName())
	case keymap.Matches(key, km.TypeName):
		v.typing = true
		v.nameField.SetValue(v.SelectedName())
		return v, v.nameField.Focus()
	case keymap.Matches(key, km.Reload):
		return v, v.load()
	case keymap.Matches(key, km.Help):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }
	case keymap.Matches(key, km.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	}
	return v, nil
}

// choose sets the filename field and asks the app to browse it.
func (v *View) choose(name string) tea.Cmd {
	if v.browser != nil {
		v.browser.SetFileName(name)
	}
	return func() tea.Msg {
		return messages.FileSelected{FileName: name}
	}
}

// adjustScroll keeps the selected option visible.
func (v *View) adjustScroll() {
	visible := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visible {
		v.scrollOffset = v.selected - visible + 1
	}
}

// visibleItemCount returns the number of options that can be displayed.
func (v *View) visibleItemCount() int {
	// Reserve lines for title, field, status bar and padding
	available := v.height - 8
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the files view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Files (%d)", v.count)))
	b.WriteString("\n\n")

	if v.notice != "" {
		b.WriteString(v.styles.Error.Render(textsafe.Inert(v.notice)))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[enter] dismiss  [q] quit"))
		b.WriteString("\n\n")
		b.WriteString(v.statusbar.View())
		return b.String()
	}

	if v.typing {
		b.WriteString(v.nameField.View())
		b.WriteString("\n\n")
	}

	visible := v.visibleItemCount()
	for i := v.scrollOffset; i < len(v.options) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.renderOption(i))
		b.WriteString("\n")
	}

	if len(v.options) > visible {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visible, len(v.options)),
			len(v.options))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.statusbar.View())
	return b.String()
}

func (v *View) renderOption(index int) string {
	name := textsafe.Line(v.options[index])
	if index == v.selected {
		return v.styles.Selected.Render("> " + name)
	}
	if index == 0 {
		return v.styles.Muted.Render("  " + name)
	}
	return v.styles.Normal.Render("  " + name)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.nameField.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.adjustScroll()
}

// Options returns the displayed options, placeholder first.
func (v *View) Options() []string {
	return v.options
}

// SelectedIndex returns the index of the selected option.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedOption returns the selected option text.
func (v *View) SelectedOption() string {
	if v.selected < 0 || v.selected >= len(v.options) {
		return ""
	}
	return v.options[v.selected]
}

// SelectedName returns the selected document name, or "" for the placeholder.
func (v *View) SelectedName() string {
	if v.selected == 0 {
		return ""
	}
	return v.SelectedOption()
}

// Notice returns the blocking notification, if any.
func (v *View) Notice() string {
	return v.notice
}

// Loading reports whether a directory fetch is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Typing reports whether the filename field has focus.
func (v *View) Typing() bool {
	return v.typing
}
