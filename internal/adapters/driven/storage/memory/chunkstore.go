package memory

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/custodia-labs/chunkctl/internal/core/domain"
	"github.com/custodia-labs/chunkctl/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ScrollLimit is the page size of a single Scroll, matching the backend.
const ScrollLimit = 50

// ChunkStore is an in-memory implementation of driven.ChunkStore that
// follows the backend's rules for missing points and filename mismatches.
type ChunkStore struct {
	mu     sync.RWMutex
	order  []domain.PointID
	chunks map[domain.PointID]domain.Chunk
}

// NewChunkStore creates a new in-memory chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[domain.PointID]domain.Chunk),
	}
}

// Put stores or replaces a chunk. Chunks scroll in first-put order.
func (s *ChunkStore) Put(chunks ...domain.Chunk) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range chunks {
		if _, ok := s.chunks[c.ID]; !ok {
			s.order = append(s.order, c.ID)
		}
		s.chunks[c.ID] = c
	}
}

// Chunk returns a stored chunk by id.
func (s *ChunkStore) Chunk(id domain.PointID) (domain.Chunk, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.chunks[id]
	return c, ok
}

// ListFilenames returns the distinct document names in first-seen order.
func (s *ChunkStore) ListFilenames(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, id := range s.order {
		name := s.chunks[id].FileName
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}

// Scroll returns up to ScrollLimit chunks of fileName.
func (s *ChunkStore) Scroll(ctx context.Context, fileName string) (domain.ScrollPage, error) {
	if err := ctx.Err(); err != nil {
		return domain.ScrollPage{}, &domain.TransportError{Op: "scroll", Err: err}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	page := domain.ScrollPage{Chunks: make([]domain.Chunk, 0)}
	for _, id := range s.order {
		c := s.chunks[id]
		if c.FileName != fileName {
			continue
		}
		if len(page.Chunks) == ScrollLimit {
			page.HasMore = true
			break
		}
		page.Chunks = append(page.Chunks, c)
	}
	return page, nil
}

// Upsert overwrites or appends to a chunk's content.
func (s *ChunkStore) Upsert(ctx context.Context, req domain.EditRequest) (domain.UpsertResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.UpsertResult{}, &domain.TransportError{Op: "upsert", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.chunks[req.PointID]
	if !ok {
		return domain.UpsertResult{}, &domain.APIError{
			StatusCode: http.StatusNotFound,
			Detail:     fmt.Sprintf("Point ID %s not found.", req.PointID),
		}
	}
	if c.FileName != req.FileName {
		return domain.UpsertResult{}, &domain.APIError{
			StatusCode: http.StatusBadRequest,
			Detail:     fmt.Sprintf("Safety Mismatch: Point ID %s belongs to '%s'.", req.PointID, c.FileName),
		}
	}

	if req.Action == domain.ActionAppend {
		c.Content = c.Content + "\n" + req.NewContent
	} else {
		c.Content = req.NewContent
	}
	s.chunks[req.PointID] = c

	return domain.UpsertResult{Status: "success", Message: fmt.Sprintf("Updated %s", req.PointID)}, nil
}
