package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates a required dependency was not configured.
	ErrNotImplemented = errors.New("not implemented")

	// ErrEmptyFileName is returned when a browse is requested without a document name.
	ErrEmptyFileName = fmt.Errorf("%w: please provide a filename", ErrInvalidInput)

	// ErrEditIncomplete is returned when an edit is submitted without a point id or content.
	ErrEditIncomplete = fmt.Errorf("%w: point id and content are required", ErrInvalidInput)

	// ErrUnknownAction indicates an edit action other than overwrite or append.
	ErrUnknownAction = fmt.Errorf("%w: unknown edit action", ErrInvalidInput)

	// ErrStaleResponse indicates a response arrived after a newer request was issued
	// and was discarded without touching state.
	ErrStaleResponse = errors.New("stale response discarded")

	// ErrBackendUnreachable indicates the request never produced an HTTP response.
	ErrBackendUnreachable = errors.New("backend unreachable")
)

// APIError is a non-2xx response from the backend.
// Detail carries the backend's "detail" field verbatim when it was a string.
type APIError struct {
	StatusCode int
	Detail     string
}

// Error implements error.
func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Detail)
}

// TransportError wraps a failure to send a request or read its response.
type TransportError struct {
	// Op names the request, e.g. "POST /scroll".
	Op  string
	Err error
}

// Error implements error.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports TransportError as ErrBackendUnreachable.
func (e *TransportError) Is(target error) bool {
	return target == ErrBackendUnreachable
}

// DetailOf returns the backend detail carried by err, if any.
func DetailOf(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail, true
	}
	return "", false
}
