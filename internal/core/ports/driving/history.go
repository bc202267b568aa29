package driving

import (
	"context"

	"github.com/custodia-labs/chunkctl/internal/core/domain"
)

// HistoryService reads the local edit journal.
type HistoryService interface {
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.EditRecord, error)
}
