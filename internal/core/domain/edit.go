package domain

import "strings"

// EditAction selects how new content is applied to a chunk.
type EditAction string

const (
	// ActionOverwrite replaces the chunk content.
	ActionOverwrite EditAction = "overwrite"
	// ActionAppend appends the new content to the existing content on a new line.
	ActionAppend EditAction = "append"
)

// IsValid returns true if the action is known.
func (a EditAction) IsValid() bool {
	return a == ActionOverwrite || a == ActionAppend
}

// String returns the wire form of the action.
func (a EditAction) String() string {
	return string(a)
}

// ParseEditAction parses a case-insensitive action name.
// An empty string yields ActionOverwrite.
func ParseEditAction(s string) (EditAction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ActionOverwrite):
		return ActionOverwrite, nil
	case string(ActionAppend):
		return ActionAppend, nil
	default:
		return "", ErrUnknownAction
	}
}

// EditRequest is a single content change submitted for a chunk.
type EditRequest struct {
	PointID    PointID
	FileName   string
	NewContent string
	Action     EditAction
}

// Validate checks the invariants enforced before a request is sent.
func (r EditRequest) Validate() error {
	if r.PointID == "" || r.NewContent == "" {
		return ErrEditIncomplete
	}
	if !r.Action.IsValid() {
		return ErrUnknownAction
	}
	return nil
}

// UpsertResult is the backend's success payload for an edit.
// Both fields are optional.
type UpsertResult struct {
	Status  string
	Message string
}
