package driving

import "github.com/custodia-labs/chunkctl/internal/core/domain"

// RefreshEvent is the outcome of a delayed refresh after a successful edit.
type RefreshEvent struct {
	Result domain.BrowseResult
	Err    error
}

// SessionObserver exposes session state to renderers.
type SessionObserver interface {
	// State returns a copy of the current session state.
	State() domain.State

	// Refreshes delivers the outcome of each delayed refresh.
	// Events are dropped when the buffer is full.
	Refreshes() <-chan RefreshEvent
}

// Session is the full client session: every operator-facing operation.
type Session interface {
	FilenameDirectory
	ChunkBrowser
	ChunkEditor
	SessionObserver
}
