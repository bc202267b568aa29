package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/chunkctl/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/chunkctl/internal/core/domain"
	"github.com/custodia-labs/chunkctl/internal/core/services"
)

// mockDirectory is a mock implementation of driving.FilenameDirectory.
type mockDirectory struct {
	dir domain.Directory
	err error
}

func (m *mockDirectory) ListFilenames(_ context.Context) (domain.Directory, error) {
	return m.dir, m.err
}

// mockBrowser is a mock implementation of driving.ChunkBrowser.
type mockBrowser struct {
	result   domain.BrowseResult
	err      error
	fileName string
}

func (m *mockBrowser) SetFileName(name string) {
	m.fileName = name
}

func (m *mockBrowser) Browse(_ context.Context, fileName string) (domain.BrowseResult, error) {
	m.fileName = fileName
	return m.result, m.err
}

// newSessionPorts wires ports to a session over an in-memory store.
func newSessionPorts() (*Ports, *memory.ChunkStore, *services.Session) {
	store := memory.NewChunkStore()
	store.Put(
		domain.Chunk{ID: "p1", Content: "alpha", FileName: "a.txt"},
		domain.Chunk{ID: "p2", Content: "beta", FileName: "a.txt"},
		domain.Chunk{ID: "7", Content: "gamma", FileName: "b.txt"},
	)
	session := services.NewSession(store, time.Hour)
	return &Ports{
		Directory: session,
		Browser:   session,
		Editor:    session,
		Observer:  session,
	}, store, session
}
