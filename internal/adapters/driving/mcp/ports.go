package mcp

import (
	"github.com/custodia-labs/chunkctl/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Directory lists document names.
	Directory driving.FilenameDirectory

	// Browser fetches the chunks of a document.
	Browser driving.ChunkBrowser

	// Editor submits chunk edits. When nil the overwrite_chunk tool is not offered.
	Editor driving.ChunkEditor

	// Observer delivers refreshes scheduled by edits. Optional.
	Observer driving.SessionObserver
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Directory == nil {
		return ErrMissingDirectory
	}
	if p.Browser == nil {
		return ErrMissingBrowser
	}
	return nil
}
