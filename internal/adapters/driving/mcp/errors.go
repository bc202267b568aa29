// Package mcp provides an MCP (Model Context Protocol) server adapter for chunkctl.
// It lets AI assistants list documents, read their chunks and edit them.
package mcp

import "errors"

var (
	// ErrMissingDirectory is returned when the filename directory is not provided.
	ErrMissingDirectory = errors.New("mcp: filename directory is required")

	// ErrMissingBrowser is returned when the chunk browser is not provided.
	ErrMissingBrowser = errors.New("mcp: chunk browser is required")
)

// toolError carries the operator-facing message of a failed call.
type toolError struct {
	msg string
	err error
}

func (e *toolError) Error() string { return e.msg }

func (e *toolError) Unwrap() error { return e.err }
