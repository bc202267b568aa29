// Package tui provides an interactive terminal user interface for chunkctl.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/chunkctl/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Directory lists document names for the files view.
	Directory driving.FilenameDirectory

	// Browser fetches chunks for the chunks view.
	Browser driving.ChunkBrowser

	// Editor backs the edit form.
	Editor driving.ChunkEditor

	// Observer delivers delayed refreshes. Optional.
	Observer driving.SessionObserver
}

// NewPorts creates a Ports aggregate served entirely by one session.
func NewPorts(session driving.Session) *Ports {
	return &Ports{
		Directory: session,
		Browser:   session,
		Editor:    session,
		Observer:  session,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Directory == nil {
		return ErrMissingDirectory
	}
	if p.Browser == nil {
		return ErrMissingBrowser
	}
	if p.Editor == nil {
		return ErrMissingEditor
	}
	return nil
}
