package driven

import (
	"context"

	"github.com/custodia-labs/chunkctl/internal/core/domain"
)

// ChunkStore is the remote content store that owns documents and chunks.
// Backed by the HTTP backend in production.
//
// Implementations return *domain.APIError for non-2xx responses and
// *domain.TransportError when no response was received.
type ChunkStore interface {
	// ListFilenames returns every document name known to the store, unsorted.
	ListFilenames(ctx context.Context) ([]string, error)

	// Scroll returns the chunks belonging to fileName in store order.
	Scroll(ctx context.Context, fileName string) (domain.ScrollPage, error)

	// Upsert overwrites or appends to the content of a single chunk.
	Upsert(ctx context.Context, req domain.EditRequest) (domain.UpsertResult, error)
}
