package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/chunkctl/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/chunkctl/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chunkctl/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chunkctl/internal/adapters/driving/tui/views/chunks"
	"github.com/custodia-labs/chunkctl/internal/adapters/driving/tui/views/editor"
	"github.com/custodia-labs/chunkctl/internal/adapters/driving/tui/views/files"
	"github.com/custodia-labs/chunkctl/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// filesView is the selection surface.
	filesView *files.View

	// chunksView is the result area.
	chunksView *chunks.View

	// editorView is the edit form.
	editorView *editor.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// previousView is restored when leaving help.
	previousView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		filesView:   files.NewView(s, km, ports.Directory, ports.Browser),
		chunksView:  chunks.NewView(s, km, ports.Browser),
		editorView:  editor.NewView(s, km, ports.Editor, ports.Observer),
		currentView: messages.ViewFiles,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.filesView.WithContext(ctx)
	a.chunksView.WithContext(ctx)
	a.editorView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It loads the directory and starts listening for refreshes.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("chunkctl"),
		a.filesView.Init(),
		a.waitForRefresh(),
	)
}

// waitForRefresh returns a command that delivers the next delayed refresh.
// It is re-issued after every refresh.
func (a *App) waitForRefresh() tea.Cmd {
	if a.ports.Observer == nil {
		return nil
	}
	events := a.ports.Observer.Refreshes()
	ctx := a.ctx
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			return messages.RefreshCompleted{Result: ev.Result, Err: ev.Err}
		}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.handleKeyMsg(msg)

	case messages.FilenamesLoaded:
		if msg.Err != nil {
			a.err = msg.Err
		}
		a.filesView, cmd = a.filesView.Update(msg)
		return a, cmd

	case messages.FileSelected:
		a.currentView = messages.ViewChunks
		return a, a.chunksView.Browse(msg.FileName)

	case messages.BrowseCompleted:
		if msg.Err != nil {
			a.err = msg.Err
		}
		a.chunksView, cmd = a.chunksView.Update(msg)
		return a, cmd

	case messages.RefreshCompleted:
		a.chunksView, cmd = a.chunksView.Update(msg)
		return a, tea.Batch(cmd, a.waitForRefresh())

	case messages.EditRequested:
		a.currentView = messages.ViewEditor
		if msg.Chunk.ID == "" {
			return a, a.editorView.Clear()
		}
		return a, a.editorView.Load(msg.Chunk)

	case messages.OverwriteCompleted:
		if msg.Err != nil {
			a.err = msg.Err
		}
		a.editorView, cmd = a.editorView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		if msg.View == messages.ViewHelp {
			a.previousView = a.currentView
		}
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (spinner ticks, cursor blinks) to the active view
	switch a.currentView {
	case messages.ViewFiles:
		a.filesView, cmd = a.filesView.Update(msg)
	case messages.ViewChunks:
		a.chunksView, cmd = a.chunksView.Update(msg)
	case messages.ViewEditor:
		a.editorView, cmd = a.editorView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// handleKeyMsg forwards key messages to the active view.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewFiles:
		a.filesView, cmd = a.filesView.Update(msg)
	case messages.ViewChunks:
		a.chunksView, cmd = a.chunksView.Update(msg)
	case messages.ViewEditor:
		a.editorView, cmd = a.editorView.Update(msg)
	case messages.ViewHelp:
		// Any of esc, ? or q leaves help
		switch msg.String() {
		case "esc", "?", "q":
			a.currentView = a.previousView
		}
	}
	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewFiles:
		return a.filesView.View()
	case messages.ViewChunks:
		return a.chunksView.View()
	case messages.ViewEditor:
		return a.editorView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.filesView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Files:
  j/k, ↑/↓    Navigate documents
  enter       Browse selected document
  /           Type a filename
  r           Reload the list
  q           Quit

Chunks:
  j/k, ↑/↓    Navigate chunks
  enter, e    Edit selected chunk
  n           Edit a chunk by id
  r           Browse again
  esc         Back to files

Editor:
  tab         Switch between id and content
  ctrl+a      Toggle overwrite/append
  ctrl+s      Save
  esc         Back to chunks

Anywhere:
  ctrl+c      Quit

[esc] back`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Files returns the files view.
func (a *App) Files() *files.View {
	return a.filesView
}

// Chunks returns the chunks view.
func (a *App) Chunks() *chunks.View {
	return a.chunksView
}

// Editor returns the editor view.
func (a *App) Editor() *editor.View {
	return a.editorView
}

// ResultArea returns what the result area currently shows.
func (a *App) ResultArea() domain.ResultArea {
	return a.chunksView.Area()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.filesView.SetDimensions(width, height)
	a.chunksView.SetDimensions(width, height)
	a.editorView.SetDimensions(width, height)
}
