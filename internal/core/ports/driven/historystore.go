package driven

import (
	"context"

	"github.com/custodia-labs/chunkctl/internal/core/domain"
)

// HistoryStore persists the local journal of submitted edits.
type HistoryStore interface {
	// Append records an edit. An empty record ID is assigned by the store.
	Append(ctx context.Context, rec domain.EditRecord) error

	// List returns up to limit records, newest first. A limit <= 0 returns all records.
	List(ctx context.Context, limit int) ([]domain.EditRecord, error)

	// Close releases resources held by the store.
	Close() error
}
