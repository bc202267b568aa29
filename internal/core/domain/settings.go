package domain

import (
	"fmt"
	"net/url"
	"time"
)

// Default settings values.
const (
	DefaultBackendURL   = "http://localhost:8000"
	DefaultRefreshDelay = 1500 * time.Millisecond
)

// BackendSettings configures the connection to the chunk store backend.
type BackendSettings struct {
	// URL is the backend origin, e.g. http://localhost:8000.
	URL string

	// Timeout bounds each request. Zero waits indefinitely.
	Timeout time.Duration

	// RateLimit caps requests per second. Zero disables throttling.
	RateLimit float64
}

// EditorSettings configures the chunk editor.
type EditorSettings struct {
	// RefreshDelay is the wait between a successful edit and the browse refresh.
	RefreshDelay time.Duration

	// DefaultAction is the action preselected in the edit form.
	DefaultAction EditAction
}

// HistorySettings configures the local edit journal.
type HistorySettings struct {
	Enabled bool
}

// Settings is the complete application configuration.
type Settings struct {
	Backend BackendSettings
	Editor  EditorSettings
	History HistorySettings
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Backend: BackendSettings{
			URL: DefaultBackendURL,
		},
		Editor: EditorSettings{
			RefreshDelay:  DefaultRefreshDelay,
			DefaultAction: ActionOverwrite,
		},
		History: HistorySettings{
			Enabled: true,
		},
	}
}

// Validate checks that the settings can be used to build a client.
func (s Settings) Validate() error {
	u, err := url.Parse(s.Backend.URL)
	if err != nil {
		return fmt.Errorf("%w: backend url: %v", ErrInvalidInput, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: backend url must be http or https, got %q", ErrInvalidInput, s.Backend.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: backend url has no host", ErrInvalidInput)
	}
	if s.Backend.Timeout < 0 {
		return fmt.Errorf("%w: backend timeout must not be negative", ErrInvalidInput)
	}
	if s.Backend.RateLimit < 0 {
		return fmt.Errorf("%w: backend rate limit must not be negative", ErrInvalidInput)
	}
	if s.Editor.RefreshDelay < 0 {
		return fmt.Errorf("%w: refresh delay must not be negative", ErrInvalidInput)
	}
	if !s.Editor.DefaultAction.IsValid() {
		return ErrUnknownAction
	}
	return nil
}
