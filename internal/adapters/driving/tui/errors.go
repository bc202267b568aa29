package tui

import "errors"

// ErrMissingDirectory is returned when the filename directory is not provided.
var ErrMissingDirectory = errors.New("tui: filename directory is required")

// ErrMissingBrowser is returned when the chunk browser is not provided.
var ErrMissingBrowser = errors.New("tui: chunk browser is required")

// ErrMissingEditor is returned when the chunk editor is not provided.
var ErrMissingEditor = errors.New("tui: chunk editor is required")
