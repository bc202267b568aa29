package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/chunkctl/internal/core/domain"
)

// ListFilenamesInput is the input schema for the list_filenames tool.
type ListFilenamesInput struct{}

// ListFilenamesOutput is the output schema for the list_filenames tool.
type ListFilenamesOutput struct {
	Filenames []string `json:"filenames"`
	Count     int      `json:"count"`
}

// ScrollChunksInput is the input schema for the scroll_chunks tool.
type ScrollChunksInput struct {
	FileName string `json:"file_name" jsonschema:"name of the source document whose chunks to fetch"`
}

// ScrollChunksOutput is the output schema for the scroll_chunks tool.
type ScrollChunksOutput struct {
	FileName string        `json:"file_name"`
	Chunks   []ChunkOutput `json:"chunks"`
	Count    int           `json:"count"`
	HasMore  bool          `json:"has_more"`
}

// ChunkOutput represents a single chunk.
type ChunkOutput struct {
	PointID  string `json:"point_id"`
	Content  string `json:"content"`
	FileName string `json:"file_name,omitempty"`
}

// OverwriteChunkInput is the input schema for the overwrite_chunk tool.
type OverwriteChunkInput struct {
	PointID    string `json:"point_id" jsonschema:"id of the chunk to edit"`
	FileName   string `json:"file_name" jsonschema:"document the chunk belongs to"`
	NewContent string `json:"new_content" jsonschema:"replacement text, or text to append"`
	Action     string `json:"action,omitempty" jsonschema:"overwrite (default) or append"`
}

// OverwriteChunkOutput is the output schema for the overwrite_chunk tool.
type OverwriteChunkOutput struct {
	PointID  string `json:"point_id"`
	FileName string `json:"file_name"`
	Action   string `json:"action"`
	Message  string `json:"message"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_filenames",
		Description: "List the names of all documents that have chunks, sorted",
	}, s.handleListFilenames)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "scroll_chunks",
		Description: "Fetch the chunks of one document",
	}, s.handleScrollChunks)

	if s.ports.Editor != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "overwrite_chunk",
			Description: "Replace or append to the text of one chunk",
		}, s.handleOverwriteChunk)
	}
}

// handleListFilenames handles the list_filenames tool invocation.
func (s *Server) handleListFilenames(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListFilenamesInput,
) (*mcp.CallToolResult, ListFilenamesOutput, error) {
	dir, err := s.ports.Directory.ListFilenames(ctx)
	if err != nil {
		return nil, ListFilenamesOutput{}, &toolError{msg: domain.DirectoryFailureMessage(err), err: err}
	}

	return nil, ListFilenamesOutput{
		Filenames: dir.Names,
		Count:     dir.Len(),
	}, nil
}

// handleScrollChunks handles the scroll_chunks tool invocation.
func (s *Server) handleScrollChunks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ScrollChunksInput,
) (*mcp.CallToolResult, ScrollChunksOutput, error) {
	result, err := s.ports.Browser.Browse(ctx, input.FileName)
	if err != nil {
		return nil, ScrollChunksOutput{}, &toolError{msg: domain.BrowseFailureMessage(err), err: err}
	}

	output := ScrollChunksOutput{
		FileName: result.FileName,
		Chunks:   make([]ChunkOutput, len(result.Chunks)),
		Count:    len(result.Chunks),
		HasMore:  result.Area.HasMore,
	}
	for i, c := range result.Chunks {
		output.Chunks[i] = ChunkOutput{
			PointID:  c.ID.String(),
			Content:  c.Content,
			FileName: c.FileName,
		}
	}

	return nil, output, nil
}

// handleOverwriteChunk handles the overwrite_chunk tool invocation.
func (s *Server) handleOverwriteChunk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OverwriteChunkInput,
) (*mcp.CallToolResult, OverwriteChunkOutput, error) {
	action, err := domain.ParseEditAction(input.Action)
	if err != nil {
		return nil, OverwriteChunkOutput{}, err
	}

	s.editMu.Lock()
	defer s.editMu.Unlock()

	s.ports.Browser.SetFileName(input.FileName)
	editor := s.ports.Editor
	editor.SetEditID(domain.PointID(input.PointID))
	editor.SetEditContent(input.NewContent)
	editor.SetEditAction(action)

	status, err := editor.SubmitOverwrite(ctx)
	if err != nil {
		msg := status.Message
		if msg == "" {
			msg = err.Error()
		}
		return nil, OverwriteChunkOutput{}, &toolError{msg: msg, err: err}
	}

	return nil, OverwriteChunkOutput{
		PointID:  input.PointID,
		FileName: input.FileName,
		Action:   action.String(),
		Message:  status.Message,
	}, nil
}
