package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for chunkctl resources.
	uriScheme = "chunkctl://"

	filesURI = uriScheme + "files"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         filesURI,
		Name:        "files",
		Description: "Sorted names of all documents that have chunks",
		MIMEType:    "application/json",
	}, s.handleFilesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: filesURI + "/{fileName}/chunks",
		Name:        "file-chunks",
		Description: "Chunks of a specific document",
		MIMEType:    "application/json",
	}, s.handleChunksResource)
}

// handleFilesResource returns the sorted document names.
func (s *Server) handleFilesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	dir, err := s.ports.Directory.ListFilenames(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing filenames: %w", err)
	}

	names := dir.Names
	if names == nil {
		names = []string{}
	}
	return jsonResource(req.Params.URI, names)
}

// handleChunksResource returns the chunks of the document named in the URI.
func (s *Server) handleChunksResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	fileName := extractFileName(req.Params.URI)
	if fileName == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	result, err := s.ports.Browser.Browse(ctx, fileName)
	if err != nil {
		return nil, fmt.Errorf("browsing %q: %w", fileName, err)
	}

	chunks := make([]ChunkOutput, len(result.Chunks))
	for i, c := range result.Chunks {
		chunks[i] = ChunkOutput{PointID: c.ID.String(), Content: c.Content, FileName: c.FileName}
	}
	return jsonResource(req.Params.URI, chunks)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractFileName extracts the document name from a URI like
// chunkctl://files/{fileName}/chunks. The name may be percent-encoded.
func extractFileName(uri string) string {
	const prefix = filesURI + "/"
	const suffix = "/chunks"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	rest := strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(rest, suffix) {
		return ""
	}

	name, err := url.PathUnescape(strings.TrimSuffix(rest, suffix))
	if err != nil {
		return ""
	}
	return name
}
