// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/chunkctl/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewFiles is the filename selection view.
	ViewFiles ViewType = iota
	// ViewChunks is the chunk result view.
	ViewChunks
	// ViewEditor is the chunk edit form.
	ViewEditor
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewFiles:
		return "files"
	case ViewChunks:
		return "chunks"
	case ViewEditor:
		return "editor"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// FilenamesLoaded carries the document directory from the backend.
type FilenamesLoaded struct {
	Directory domain.Directory
	Err       error
}

// FileSelected is sent when the operator chooses a document to browse.
type FileSelected struct {
	FileName string
}

// BrowseStarted is sent when a browse has been issued.
type BrowseStarted struct {
	FileName string
}

// BrowseCompleted carries the outcome of an operator browse.
type BrowseCompleted struct {
	Result domain.BrowseResult
	Err    error
}

// RefreshCompleted carries the outcome of a delayed refresh after an edit.
type RefreshCompleted struct {
	Result domain.BrowseResult
	Err    error
}

// EditRequested is sent when the operator picks a chunk to edit.
type EditRequested struct {
	Chunk domain.Chunk
}

// OverwriteCompleted carries the outcome of an edit submission.
type OverwriteCompleted struct {
	Status domain.Status
	Err    error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
