package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chunkctl/internal/core/domain"
)

func TestServer_handleListFilenames(t *testing.T) {
	ctx := context.Background()

	t.Run("returns sorted names", func(t *testing.T) {
		ports, _, session := newSessionPorts()
		defer session.Close()
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleListFilenames(ctx, nil, ListFilenamesInput{})

		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt", "b.txt"}, output.Filenames)
		assert.Equal(t, 2, output.Count)
	})

	t.Run("backend error carries detail", func(t *testing.T) {
		dir := &mockDirectory{err: &domain.APIError{StatusCode: 500, Detail: "boom"}}
		server, err := NewServer(&Ports{Directory: dir, Browser: &mockBrowser{}})
		require.NoError(t, err)

		_, _, err = server.handleListFilenames(ctx, nil, ListFilenamesInput{})

		require.Error(t, err)
		assert.Equal(t, "Error fetching filenames: boom", err.Error())
	})
}

func TestServer_handleScrollChunks(t *testing.T) {
	ctx := context.Background()

	t.Run("returns chunks of the document", func(t *testing.T) {
		ports, _, session := newSessionPorts()
		defer session.Close()
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleScrollChunks(ctx, nil, ScrollChunksInput{FileName: "a.txt"})

		require.NoError(t, err)
		assert.Equal(t, "a.txt", output.FileName)
		require.Len(t, output.Chunks, 2)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, "p1", output.Chunks[0].PointID)
		assert.Equal(t, "alpha", output.Chunks[0].Content)
		assert.False(t, output.HasMore)
	})

	t.Run("empty filename is rejected", func(t *testing.T) {
		ports, _, session := newSessionPorts()
		defer session.Close()
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleScrollChunks(ctx, nil, ScrollChunksInput{})

		require.Error(t, err)
		assert.Equal(t, domain.MsgProvideFileName, err.Error())
		assert.ErrorIs(t, err, domain.ErrEmptyFileName)
	})

	t.Run("transport failure", func(t *testing.T) {
		browser := &mockBrowser{err: &domain.TransportError{Op: "scroll", Err: errors.New("refused")}}
		server, err := NewServer(&Ports{Directory: &mockDirectory{}, Browser: browser})
		require.NoError(t, err)

		_, _, err = server.handleScrollChunks(ctx, nil, ScrollChunksInput{FileName: "a.txt"})

		require.Error(t, err)
		assert.Equal(t, domain.MsgNetworkError, err.Error())
		assert.ErrorIs(t, err, domain.ErrBackendUnreachable)
		assert.Equal(t, "a.txt", browser.fileName)
	})
}

func TestServer_handleOverwriteChunk(t *testing.T) {
	ctx := context.Background()

	t.Run("overwrites the chunk", func(t *testing.T) {
		ports, store, session := newSessionPorts()
		defer session.Close()
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := OverwriteChunkInput{PointID: "p1", FileName: "a.txt", NewContent: "updated"}
		_, output, err := server.handleOverwriteChunk(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, domain.MsgUpdated, output.Message)
		assert.Equal(t, "overwrite", output.Action)
		chunk, ok := store.Chunk("p1")
		require.True(t, ok)
		assert.Equal(t, "updated", chunk.Content)
	})

	t.Run("appends to the chunk", func(t *testing.T) {
		ports, store, session := newSessionPorts()
		defer session.Close()
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := OverwriteChunkInput{PointID: "7", FileName: "b.txt", NewContent: "more", Action: "append"}
		_, output, err := server.handleOverwriteChunk(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "append", output.Action)
		chunk, ok := store.Chunk("7")
		require.True(t, ok)
		assert.Equal(t, "gamma\nmore", chunk.Content)
	})

	t.Run("sets the filename field for the refresh", func(t *testing.T) {
		ports, _, session := newSessionPorts()
		defer session.Close()
		server, err := NewServer(ports)
		require.NoError(t, err)
		session.SetFileName("a.txt")

		input := OverwriteChunkInput{PointID: "7", FileName: "b.txt", NewContent: "delta"}
		_, _, err = server.handleOverwriteChunk(ctx, nil, input)

		require.NoError(t, err)
		state := session.State()
		assert.Equal(t, "b.txt", state.SelectedFile)
		assert.Equal(t, domain.PointID("7"), state.EditingID)
	})

	t.Run("uses the given filename after a browse", func(t *testing.T) {
		ports, store, session := newSessionPorts()
		defer session.Close()
		server, err := NewServer(ports)
		require.NoError(t, err)
		_, _, err = server.handleScrollChunks(ctx, nil, ScrollChunksInput{FileName: "a.txt"})
		require.NoError(t, err)
		session.PrepareEdit("p1", "alpha")

		input := OverwriteChunkInput{PointID: "p1", FileName: "b.txt", NewContent: "hijack"}
		_, _, err = server.handleOverwriteChunk(ctx, nil, input)

		require.Error(t, err)
		assert.Equal(t, "Error: Safety Mismatch: Point ID p1 belongs to 'a.txt'.", err.Error())
		chunk, _ := store.Chunk("p1")
		assert.Equal(t, "alpha", chunk.Content)
	})

	t.Run("missing content", func(t *testing.T) {
		ports, _, session := newSessionPorts()
		defer session.Close()
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleOverwriteChunk(ctx, nil, OverwriteChunkInput{PointID: "p1", FileName: "a.txt"})

		require.Error(t, err)
		assert.Equal(t, domain.MsgEditIncomplete, err.Error())
	})

	t.Run("unknown action", func(t *testing.T) {
		ports, _, session := newSessionPorts()
		defer session.Close()
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := OverwriteChunkInput{PointID: "p1", FileName: "a.txt", NewContent: "x", Action: "delete"}
		_, _, err = server.handleOverwriteChunk(ctx, nil, input)

		assert.ErrorIs(t, err, domain.ErrUnknownAction)
	})
}
