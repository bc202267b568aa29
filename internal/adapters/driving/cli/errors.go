package cli

import "errors"

var (
	errSessionNotConfigured  = errors.New("session not configured")
	errHistoryNotConfigured  = errors.New("history service not configured")
	errSettingsNotConfigured = errors.New("settings service not configured")
	errSnapshotNotConfigured = errors.New("snapshot service not configured")
)

// operatorError is a failure whose message is the text an operator would
// see in the TUI. The cause stays reachable through errors.Is/As.
type operatorError struct {
	msg string
	err error
}

func (e *operatorError) Error() string {
	return e.msg
}

func (e *operatorError) Unwrap() error {
	return e.err
}
