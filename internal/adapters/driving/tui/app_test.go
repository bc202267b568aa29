package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chunkctl/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/chunkctl/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chunkctl/internal/core/domain"
	"github.com/custodia-labs/chunkctl/internal/core/services"
)

func newTestSession(delay time.Duration) *services.Session {
	store := memory.NewChunkStore()
	store.Put(
		domain.Chunk{ID: "p1", Content: "alpha", FileName: "a.txt"},
		domain.Chunk{ID: "p2", Content: "beta", FileName: "a.txt"},
		domain.Chunk{ID: "p3", Content: "gamma", FileName: "b.txt"},
	)
	return services.NewSession(store, delay)
}

func newTestApp(t *testing.T, delay time.Duration) (*App, *services.Session) {
	t.Helper()
	session := newTestSession(delay)
	t.Cleanup(session.Close)
	app, err := NewApp(NewPorts(session))
	require.NoError(t, err)
	app.SetDimensions(100, 40)
	return app, session
}

// findMsg runs cmd, expanding batches, and returns the first message of type T.
// Only use it on commands known not to block.
func findMsg[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	var zero T
	if cmd == nil {
		t.Fatalf("expected a command producing %T", zero)
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if found, ok := c().(T); ok {
				return found
			}
		}
		t.Fatalf("no %T in batch", zero)
	}
	found, ok := msg.(T)
	if !ok {
		t.Fatalf("expected %T, got %T", zero, msg)
	}
	return found
}

func TestNewApp_InvalidPorts(t *testing.T) {
	_, err := NewApp(&Ports{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingDirectory)
}

func TestNewApp_StartsOnFiles(t *testing.T) {
	app, _ := newTestApp(t, time.Hour)
	assert.Equal(t, messages.ViewFiles, app.CurrentView())
	assert.Equal(t, domain.ResultsIdle, app.ResultArea().Phase)
}

func TestApp_WindowSize(t *testing.T) {
	session := newTestSession(time.Hour)
	defer session.Close()
	app, err := NewApp(NewPorts(session))
	require.NoError(t, err)

	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())

	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.True(t, app.Ready())
	assert.NotEqual(t, "Initialising...", app.View())
}

func TestApp_WithContext(t *testing.T) {
	app, _ := newTestApp(t, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.Same(t, app, app.WithContext(ctx))
}

func TestApp_FilenamesLoaded(t *testing.T) {
	app, _ := newTestApp(t, time.Hour)

	msg := findMsg[messages.FilenamesLoaded](t, app.Files().Init())
	require.NoError(t, msg.Err)
	app.Update(msg)

	assert.Equal(t, []string{domain.SelectPlaceholder, "a.txt", "b.txt"}, app.Files().Options())
	assert.False(t, app.Files().Loading())
}

func TestApp_FilenamesLoaded_Error(t *testing.T) {
	app, _ := newTestApp(t, time.Hour)

	app.Update(messages.FilenamesLoaded{Err: domain.ErrBackendUnreachable})

	assert.Equal(t, domain.MsgCannotConnect, app.Files().Notice())
	assert.ErrorIs(t, app.Err(), domain.ErrBackendUnreachable)
}

func TestApp_FileSelected_BrowsesChunks(t *testing.T) {
	app, session := newTestApp(t, time.Hour)

	_, cmd := app.Update(messages.FileSelected{FileName: "a.txt"})
	assert.Equal(t, messages.ViewChunks, app.CurrentView())
	assert.Equal(t, domain.ResultsLoading, app.ResultArea().Phase)
	assert.Equal(t, domain.MsgSearching, app.ResultArea().Message)

	done := findMsg[messages.BrowseCompleted](t, cmd)
	require.NoError(t, done.Err)
	app.Update(done)

	assert.Equal(t, domain.ResultsLoaded, app.ResultArea().Phase)
	require.Len(t, app.Chunks().Chunks(), 2)
	assert.Equal(t, "a.txt", session.State().SelectedFile)
	assert.Contains(t, app.View(), "alpha")
}

func TestApp_FileSelected_Placeholder(t *testing.T) {
	app, _ := newTestApp(t, time.Hour)
	_, cmd := app.Update(messages.FileSelected{FileName: "a.txt"})
	app.Update(findMsg[messages.BrowseCompleted](t, cmd))

	_, cmd = app.Update(messages.FileSelected{FileName: ""})

	assert.Nil(t, cmd)
	assert.Equal(t, messages.ViewChunks, app.CurrentView())
	assert.Equal(t, domain.ResultsLoaded, app.ResultArea().Phase)
	assert.Len(t, app.Chunks().Chunks(), 2)
	assert.Contains(t, app.View(), domain.MsgProvideFileName)
}

func TestApp_FilesToChunksByKey(t *testing.T) {
	app, _ := newTestApp(t, time.Hour)
	app.Update(findMsg[messages.FilenamesLoaded](t, app.Files().Init()))

	app.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	selected := findMsg[messages.FileSelected](t, cmd)
	assert.Equal(t, "a.txt", selected.FileName)
}

func TestApp_EditRequested_LoadsEditor(t *testing.T) {
	app, session := newTestApp(t, time.Hour)
	_, cmd := app.Update(messages.FileSelected{FileName: "a.txt"})
	app.Update(findMsg[messages.BrowseCompleted](t, cmd))

	app.Update(messages.EditRequested{Chunk: app.Chunks().Chunks()[1]})

	assert.Equal(t, messages.ViewEditor, app.CurrentView())
	assert.Equal(t, "p2", app.Editor().ID())
	assert.Equal(t, "beta", app.Editor().Content())
	st := session.State()
	assert.Equal(t, domain.PointID("p2"), st.EditingID)
	assert.Equal(t, "a.txt", st.EditingFile)
}

func TestApp_EditRequested_Blank(t *testing.T) {
	app, _ := newTestApp(t, time.Hour)

	app.Update(messages.EditRequested{})

	assert.Equal(t, messages.ViewEditor, app.CurrentView())
	assert.Empty(t, app.Editor().ID())
	assert.Empty(t, app.Editor().Content())
}

func TestApp_OverwriteCompleted(t *testing.T) {
	app, _ := newTestApp(t, time.Hour)
	app.Update(messages.EditRequested{})

	app.Update(messages.OverwriteCompleted{
		Status: domain.Status{Kind: domain.StatusSuccess, Message: domain.MsgUpdated},
	})

	assert.Equal(t, domain.MsgUpdated, app.Editor().Status().Message)
}

func TestApp_HelpReturnsToPreviousView(t *testing.T) {
	app, _ := newTestApp(t, time.Hour)
	app.Update(messages.ViewChanged{View: messages.ViewChunks})

	app.Update(messages.ViewChanged{View: messages.ViewHelp})
	assert.Equal(t, messages.ViewHelp, app.CurrentView())
	assert.Contains(t, app.View(), "Help")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewChunks, app.CurrentView())
}

func TestApp_Quit(t *testing.T) {
	app, _ := newTestApp(t, time.Hour)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = app.Update(messages.Quit{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_RefreshAfterEdit(t *testing.T) {
	app, session := newTestApp(t, 10*time.Millisecond)
	_, cmd := app.Update(messages.FileSelected{FileName: "a.txt"})
	app.Update(findMsg[messages.BrowseCompleted](t, cmd))

	app.Update(messages.EditRequested{Chunk: app.Chunks().Chunks()[0]})
	session.SetEditContent("alpha v2")
	st, err := session.SubmitOverwrite(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, st.Kind)

	refresh, ok := app.waitForRefresh()().(messages.RefreshCompleted)
	require.True(t, ok)
	require.NoError(t, refresh.Err)

	_, next := app.Update(refresh)
	assert.NotNil(t, next)
	require.Len(t, app.Chunks().Chunks(), 2)
	assert.Equal(t, "alpha v2", app.Chunks().Chunks()[0].Content)
}

func TestApp_WaitForRefresh_CancelledContext(t *testing.T) {
	app, _ := newTestApp(t, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	app.WithContext(ctx)
	cancel()

	assert.Nil(t, app.waitForRefresh()())
}

func TestApp_WaitForRefresh_NoObserver(t *testing.T) {
	session := newTestSession(time.Hour)
	defer session.Close()
	app, err := NewApp(&Ports{Directory: session, Browser: session, Editor: session})
	require.NoError(t, err)

	assert.Nil(t, app.waitForRefresh())
}
