// Package chunks provides the chunk result view for the TUI.
package chunks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/chunkctl/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/chunkctl/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/chunkctl/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/chunkctl/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chunkctl/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chunkctl/internal/core/domain"
	"github.com/custodia-labs/chunkctl/internal/core/ports/driving"
	"github.com/custodia-labs/chunkctl/internal/textsafe"
)

// View shows the result area: loading, empty and error messages or the
// chunks of the browsed document.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar
	list      *list.ChunkList
	spinner   spinner.Model

	browser driving.ChunkBrowser
	ctx     context.Context

	area domain.ResultArea

	width  int
	height int
}

// NewView creates a new chunks view.
func NewView(s *styles.Styles, km *keymap.KeyMap, browser driving.ChunkBrowser) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetHints(km.ChunksHelp())

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = s.Pending

	return &View{
		styles:    s,
		keymap:    km,
		statusbar: bar,
		list:      list.NewChunkList(s),
		spinner:   sp,
		browser:   browser,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Browse puts the result area into the loading state and returns a
// command that fetches the chunks of fileName. An empty name only prompts
// for a filename and leaves the displayed chunks as they are.
func (v *View) Browse(fileName string) tea.Cmd {
	if fileName == "" {
		v.syncStatus()
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(domain.MsgProvideFileName)
		return nil
	}

	v.area = domain.ResultArea{Phase: domain.ResultsLoading, FileName: fileName, Message: domain.MsgSearching}
	v.list.SetChunks(nil)
	v.syncStatus()

	browser := v.browser
	ctx := v.ctx
	fetch := func() tea.Msg {
		if browser == nil {
			return messages.BrowseCompleted{Err: domain.ErrNotImplemented}
		}
		result, err := browser.Browse(ctx, fileName)
		return messages.BrowseCompleted{Result: result, Err: err}
	}
	return tea.Batch(v.spinner.Tick, fetch)
}

// Update handles messages for the chunks view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.BrowseCompleted:
		v.apply(msg.Result, msg.Err)
		return v, nil

	case messages.RefreshCompleted:
		v.apply(msg.Result, msg.Err)
		return v, nil

	case spinner.TickMsg:
		if v.area.Phase != domain.ResultsLoading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// apply shows a browse outcome. Stale outcomes are ignored.
func (v *View) apply(result domain.BrowseResult, err error) {
	if errors.Is(err, domain.ErrStaleResponse) {
		return
	}

	if err != nil {
		area := result.Area
		if area.Phase != domain.ResultsFailed {
			area = domain.ResultArea{
				Phase:    domain.ResultsFailed,
				FileName: v.area.FileName,
				Message:  domain.BrowseFailureMessage(err),
			}
		}
		v.area = area
		v.list.SetChunks(nil)
		v.syncStatus()
		return
	}

	previous := v.list.Selected()
	v.area = result.Area
	v.list.SetChunks(result.Chunks)
	v.list.SetSelected(previous)
	v.syncStatus()
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	km := v.keymap
	key := msg.String()
	switch {
	case keymap.Matches(key, km.Up), keymap.Matches(key, km.Down):
		v.list, _ = v.list.Update(msg)
	case keymap.Matches(key, km.Edit):
		chunk := v.list.SelectedChunk()
		if chunk == nil {
			return v, nil
		}
		selected := *chunk
		return v, func() tea.Msg { return messages.EditRequested{Chunk: selected} }
	case keymap.Matches(key, km.NewEdit):
		return v, func() tea.Msg { return messages.EditRequested{} }
	case keymap.Matches(key, km.Reload):
		if v.area.FileName == "" {
			return v, nil
		}
		return v, v.Browse(v.area.FileName)
	case keymap.Matches(key, km.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewFiles} }
	case keymap.Matches(key, km.Help):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }
	case keymap.Matches(key, km.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	}
	return v, nil
}

// syncStatus mirrors the result area into the status bar.
func (v *View) syncStatus() {
	v.statusbar.Clear()
	switch v.area.Phase {
	case domain.ResultsLoading:
		v.statusbar.SetState(status.StateLoading)
		v.statusbar.SetMessage(v.area.Message)
	case domain.ResultsFailed:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(v.area.Message)
	case domain.ResultsLoaded:
		v.statusbar.SetCount(v.list.Count(), "chunks")
	case domain.ResultsIdle, domain.ResultsEmpty:
	}
}

// View renders the chunks view.
func (v *View) View() string {
	var b strings.Builder

	title := "Chunks"
	if v.area.FileName != "" {
		title = fmt.Sprintf("Chunks - %s", textsafe.Line(v.area.FileName))
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	switch v.area.Phase {
	case domain.ResultsIdle:
		b.WriteString(v.styles.Muted.Render("Select a file to browse its chunks."))
	case domain.ResultsLoading:
		b.WriteString(v.spinner.View() + " " + v.styles.Phase(v.area.Phase).Render(v.area.Message))
	case domain.ResultsEmpty, domain.ResultsFailed:
		b.WriteString(v.styles.Phase(v.area.Phase).Render(textsafe.Inert(v.area.Message)))
	case domain.ResultsLoaded:
		b.WriteString(v.list.View())
		if hint := v.area.MoreHint(); hint != "" {
			b.WriteString("\n")
			b.WriteString(v.styles.Warning.Render(hint))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.statusbar.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	listHeight := height - 6
	if listHeight < 1 {
		listHeight = 1
	}
	v.list.SetDimensions(width, listHeight)
	v.statusbar.SetWidth(width)
}

// Area returns the current result area.
func (v *View) Area() domain.ResultArea {
	return v.area
}

// Chunks returns the displayed chunks.
func (v *View) Chunks() []domain.Chunk {
	return v.list.Chunks()
}

// SelectedChunk returns the highlighted chunk, or nil if none.
func (v *View) SelectedChunk() *domain.Chunk {
	return v.list.SelectedChunk()
}
