package driving

import (
	"context"

	"github.com/custodia-labs/chunkctl/internal/core/domain"
)

// ChunkEditor captures and submits an edit to one chunk.
type ChunkEditor interface {
	// PrepareEdit fills the edit form from a displayed chunk.
	PrepareEdit(id domain.PointID, content string)

	// SetEditID updates the point id field.
	SetEditID(id domain.PointID)

	// SetEditContent updates the content field.
	SetEditContent(content string)

	// SetEditAction selects overwrite or append.
	SetEditAction(action domain.EditAction)

	// SubmitOverwrite validates the form and posts it to the store.
	// On success a refresh of the filename field is scheduled; its outcome
	// arrives on SessionObserver.Refreshes. The returned status is the one
	// shown in the status line.
	SubmitOverwrite(ctx context.Context) (domain.Status, error)
}
