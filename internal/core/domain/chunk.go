package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EmptyContentPlaceholder is displayed in place of a chunk with no content.
const EmptyContentPlaceholder = "[Empty]"

// PointID is the unique identifier of a chunk in the backend store.
// Stores emit it either as a string (UUID) or as an unsigned integer;
// both are held in their textual form.
type PointID string

// String returns the textual form of the id.
func (p PointID) String() string {
	return string(p)
}

// UnmarshalJSON accepts a JSON string, a JSON number, or null.
func (p *PointID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*p = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("point id: %w", err)
		}
		*p = PointID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("point id: %w", err)
	}
	*p = PointID(n.String())
	return nil
}

// Chunk is a unit of document content stored by the backend.
type Chunk struct {
	// ID is the chunk's point id.
	ID PointID

	// Content is the chunk text. It may be empty.
	Content string

	// FileName is the document name reported by the backend, if any.
	FileName string

	// Origin is the document name of the browse that fetched this chunk.
	Origin string
}

// Label returns the identifier label shown next to the chunk.
func (c Chunk) Label() string {
	return "ID: " + string(c.ID)
}

// DisplayContent returns the content, or EmptyContentPlaceholder when empty.
func (c Chunk) DisplayContent() string {
	if c.Content == "" {
		return EmptyContentPlaceholder
	}
	return c.Content
}

// ScrollPage is the backend's answer to a chunk scroll.
type ScrollPage struct {
	Chunks []Chunk

	// HasMore is set when the backend reported a further page offset.
	// The client does not follow it.
	HasMore bool
}
