package driving

import (
	"context"

	"github.com/custodia-labs/chunkctl/internal/core/domain"
)

// ChunkBrowser fetches and exposes the chunks of one document.
type ChunkBrowser interface {
	// SetFileName updates the filename field without browsing.
	SetFileName(name string)

	// Browse fetches the chunks of fileName and updates the result area.
	// Returns domain.ErrEmptyFileName without a network call for an empty name,
	// and domain.ErrStaleResponse when a newer browse superseded this one.
	// On a backend failure the returned result still describes the failure.
	Browse(ctx context.Context, fileName string) (domain.BrowseResult, error)
}
