package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/chunkctl/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/chunkctl/internal/core/domain"
	"github.com/custodia-labs/chunkctl/internal/core/services"
)

// MockChunkStore implements driven.ChunkStore with overridable functions.
type MockChunkStore struct {
	ListFilenamesFunc func(ctx context.Context) ([]string, error)
	ScrollFunc        func(ctx context.Context, fileName string) (domain.ScrollPage, error)
	UpsertFunc        func(ctx context.Context, req domain.EditRequest) (domain.UpsertResult, error)
}

func (m *MockChunkStore) ListFilenames(ctx context.Context) ([]string, error) {
	if m.ListFilenamesFunc != nil {
		return m.ListFilenamesFunc(ctx)
	}
	return nil, nil
}

func (m *MockChunkStore) Scroll(ctx context.Context, fileName string) (domain.ScrollPage, error) {
	if m.ScrollFunc != nil {
		return m.ScrollFunc(ctx, fileName)
	}
	return domain.ScrollPage{}, nil
}

func (m *MockChunkStore) Upsert(ctx context.Context, req domain.EditRequest) (domain.UpsertResult, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, req)
	}
	return domain.UpsertResult{}, nil
}

// testEnv holds the services installed by setupTestServices.
type testEnv struct {
	store   *memory.ChunkStore
	session *services.Session
	history *memory.HistoryStore
}

// setupTestServices installs services over seeded in-memory stores.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewChunkStore()
	store.Put(
		domain.Chunk{ID: "p1", Content: "alpha", FileName: "a.txt"},
		domain.Chunk{ID: "p2", Content: "beta", FileName: "a.txt"},
		domain.Chunk{ID: "7", Content: "gamma", FileName: "b.txt"},
	)
	return setupServicesWithStore(t, store)
}

func setupServicesWithStore(t *testing.T, store *memory.ChunkStore) *testEnv {
	t.Helper()
	session := services.NewSession(store, 10*time.Millisecond)
	history := memory.NewHistoryStore()
	session.SetHistoryStore(history)

	SetServices(&Services{
		Session:  session,
		History:  services.NewHistoryService(history),
		Settings: services.NewSettingsService(memory.NewConfigStore()),
		Snapshot: services.NewSnapshotService(store),
	})
	t.Cleanup(func() {
		session.Close()
		SetServices(nil)
	})
	return &testEnv{store: store, session: session, history: history}
}

// setupFailingSession installs a session over store with no other services.
func setupFailingSession(t *testing.T, store *MockChunkStore) {
	t.Helper()
	session := services.NewSession(store, time.Hour)
	SetServices(&Services{Session: session})
	t.Cleanup(func() {
		session.Close()
		SetServices(nil)
	})
}

// execute runs the root command with args and stdin, returning stdout and
// stderr. Flags are reset to their defaults first.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	return executeContext(t, context.Background(), stdin, args...)
}

// executeContext is execute with the command context set to ctx.
func executeContext(t *testing.T, ctx context.Context, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
