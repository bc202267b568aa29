package chunks

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chunkctl/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chunkctl/internal/core/domain"
)

type mockBrowser struct {
	result domain.BrowseResult
	err    error
	calls  []string
}

func (m *mockBrowser) SetFileName(string) {}

func (m *mockBrowser) Browse(_ context.Context, fileName string) (domain.BrowseResult, error) {
	m.calls = append(m.calls, fileName)
	return m.result, m.err
}

func loadedResult() domain.BrowseResult {
	return domain.BrowseResult{
		FileName: "a.txt",
		Chunks: []domain.Chunk{
			{ID: "p1", Content: "alpha", Origin: "a.txt"},
			{ID: "p2", Content: "beta", Origin: "a.txt"},
		},
		Area: domain.ResultArea{Phase: domain.ResultsLoaded, FileName: "a.txt"},
	}
}

// browseCompleted runs the fetch half of a Browse batch.
func browseCompleted(t *testing.T, cmd tea.Cmd) messages.BrowseCompleted {
	t.Helper()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		if c == nil {
			continue
		}
		if msg, ok := c().(messages.BrowseCompleted); ok {
			return msg
		}
	}
	t.Fatal("no BrowseCompleted in batch")
	return messages.BrowseCompleted{}
}

func TestNewView_Idle(t *testing.T) {
	v := NewView(nil, nil, nil)
	assert.Equal(t, domain.ResultsIdle, v.Area().Phase)
	assert.Contains(t, v.View(), "Select a file")
}

func TestBrowse_LoadingThenLoaded(t *testing.T) {
	browser := &mockBrowser{result: loadedResult()}
	v := NewView(nil, nil, browser)

	cmd := v.Browse("a.txt")
	assert.Equal(t, domain.ResultsLoading, v.Area().Phase)
	assert.Contains(t, v.View(), domain.MsgSearching)

	v.Update(browseCompleted(t, cmd))
	assert.Equal(t, []string{"a.txt"}, browser.calls)
	assert.Equal(t, domain.ResultsLoaded, v.Area().Phase)
	assert.Len(t, v.Chunks(), 2)
	assert.Contains(t, v.View(), "alpha")
}

func TestBrowse_NilBrowser(t *testing.T) {
	v := NewView(nil, nil, nil)
	msg := browseCompleted(t, v.Browse("a.txt"))
	assert.ErrorIs(t, msg.Err, domain.ErrNotImplemented)
}

func TestApply_Empty(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.Update(messages.BrowseCompleted{Result: domain.BrowseResult{
		FileName: "a.txt",
		Area:     domain.ResultArea{Phase: domain.ResultsEmpty, FileName: "a.txt", Message: domain.MsgNoChunks},
	}})
	assert.Contains(t, v.View(), domain.MsgNoChunks)
}

func TestApply_FailureUsesResultArea(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.Browse("a.txt")

	v.Update(messages.BrowseCompleted{
		Result: domain.BrowseResult{Area: domain.ResultArea{
			Phase: domain.ResultsFailed, FileName: "a.txt", Message: domain.MsgNetworkError,
		}},
		Err: domain.ErrBackendUnreachable,
	})
	assert.Equal(t, domain.ResultsFailed, v.Area().Phase)
	assert.Equal(t, domain.MsgNetworkError, v.Area().Message)
	assert.Empty(t, v.Chunks())
}

func TestApply_FailureWithoutArea(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.Browse("a.txt")

	v.Update(messages.BrowseCompleted{Err: domain.ErrEmptyFileName})
	assert.Equal(t, domain.ResultsFailed, v.Area().Phase)
	assert.Equal(t, domain.MsgProvideFileName, v.Area().Message)
}

func TestBrowse_EmptyNameKeepsChunks(t *testing.T) {
	browser := &mockBrowser{}
	v := NewView(nil, nil, browser)
	v.Update(messages.BrowseCompleted{Result: loadedResult()})

	cmd := v.Browse("")

	assert.Nil(t, cmd)
	assert.Empty(t, browser.calls)
	assert.Equal(t, domain.ResultsLoaded, v.Area().Phase)
	assert.Equal(t, "a.txt", v.Area().FileName)
	assert.Len(t, v.Chunks(), 2)
	assert.Equal(t, domain.MsgProvideFileName, v.statusbar.Message())
	assert.Contains(t, v.View(), "alpha")
}

func TestBrowse_ClearsFilenamePrompt(t *testing.T) {
	v := NewView(nil, nil, &mockBrowser{result: loadedResult()})
	v.Browse("")

	v.Browse("a.txt")

	assert.Equal(t, domain.MsgSearching, v.statusbar.Message())
}

func TestApply_StaleIgnored(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.Update(messages.BrowseCompleted{Result: loadedResult()})

	v.Update(messages.BrowseCompleted{Err: domain.ErrStaleResponse})
	assert.Equal(t, domain.ResultsLoaded, v.Area().Phase)
	assert.Len(t, v.Chunks(), 2)
}

func TestApply_RefreshKeepsSelection(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.Update(messages.BrowseCompleted{Result: loadedResult()})
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, domain.PointID("p2"), v.SelectedChunk().ID)

	refreshed := loadedResult()
	refreshed.Chunks[1].Content = "beta v2"
	v.Update(messages.RefreshCompleted{Result: refreshed})

	assert.Equal(t, domain.PointID("p2"), v.SelectedChunk().ID)
	assert.Equal(t, "beta v2", v.SelectedChunk().Content)
}

func TestMoreHint(t *testing.T) {
	v := NewView(nil, nil, nil)
	result := loadedResult()
	result.Area.HasMore = true
	v.Update(messages.BrowseCompleted{Result: result})

	assert.Contains(t, v.View(), result.Area.MoreHint())
}

func TestKeys_Edit(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.Update(messages.BrowseCompleted{Result: loadedResult()})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.EditRequested)
	require.True(t, ok)
	assert.Equal(t, domain.PointID("p1"), msg.Chunk.ID)
}

func TestKeys_EditWithoutChunks(t *testing.T) {
	v := NewView(nil, nil, nil)
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestKeys_NewEdit(t *testing.T) {
	v := NewView(nil, nil, nil)
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.EditRequested{}, cmd())
}

func TestKeys_Reload(t *testing.T) {
	browser := &mockBrowser{result: loadedResult()}
	v := NewView(nil, nil, browser)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Nil(t, cmd, "nothing to reload before a browse")

	v.Update(messages.BrowseCompleted{Result: loadedResult()})
	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	browseCompleted(t, cmd)
	assert.Equal(t, []string{"a.txt"}, browser.calls)
}

func TestKeys_Back(t *testing.T) {
	v := NewView(nil, nil, nil)
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewFiles}, cmd())
}

func TestView_ErrorIsInert(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.Update(messages.BrowseCompleted{
		Result: domain.BrowseResult{Area: domain.ResultArea{
			Phase: domain.ResultsFailed, Message: "Error: \x1b[2Jboom",
		}},
		Err: &domain.APIError{StatusCode: 500, Detail: "\x1b[2Jboom"},
	})
	assert.NotContains(t, v.View(), "\x1b[2J")
}
