package driving

import (
	"context"

	"github.com/custodia-labs/chunkctl/internal/core/domain"
)

// SnapshotService copies every document's chunks at a point in time.
type SnapshotService interface {
	// Take fetches all documents with at most concurrency scrolls in flight.
	// Documents appear in directory order regardless of completion order.
	Take(ctx context.Context, concurrency int) (*domain.Snapshot, error)
}
