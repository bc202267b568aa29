package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/chunkctl/internal/core/domain"
	"github.com/custodia-labs/chunkctl/internal/core/ports/driven"
	"github.com/custodia-labs/chunkctl/internal/core/ports/driving"
	"github.com/custodia-labs/chunkctl/internal/logger"
)

// Ensure SnapshotService implements the interface.
var _ driving.SnapshotService = (*SnapshotService)(nil)

// DefaultSnapshotConcurrency bounds in-flight scrolls when none is given.
const DefaultSnapshotConcurrency = 4

// SnapshotService copies every document's chunks.
// It reads the store directly and never touches a Session's state.
type SnapshotService struct {
	store driven.ChunkStore
	now   func() time.Time
}

// NewSnapshotService creates a new snapshot service.
func NewSnapshotService(store driven.ChunkStore) *SnapshotService {
	return &SnapshotService{store: store, now: time.Now}
}

// Take fetches every document with at most concurrency scrolls in flight.
// The first failure cancels the remaining scrolls.
func (s *SnapshotService) Take(ctx context.Context, concurrency int) (*domain.Snapshot, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if concurrency <= 0 {
		concurrency = DefaultSnapshotConcurrency
	}

	logger.Section("Snapshot")
	names, err := s.store.ListFilenames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list filenames: %w", err)
	}
	dir := domain.NewDirectory(names)
	logger.Debug("Snapshotting %d documents, concurrency %d", dir.Len(), concurrency)

	docs := make([]domain.DocumentSnapshot, dir.Len())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, name := range dir.Names {
		g.Go(func() error {
			page, err := s.store.Scroll(gctx, name)
			if err != nil {
				return fmt.Errorf("scroll %q: %w", name, err)
			}
			for j := range page.Chunks {
				page.Chunks[j].Origin = name
			}
			docs[i] = domain.DocumentSnapshot{FileName: name, Chunks: page.Chunks, HasMore: page.HasMore}
			logger.Debug("Fetched %d chunks for %q", len(page.Chunks), name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.Snapshot{TakenAt: s.now(), Documents: docs}, nil
}
