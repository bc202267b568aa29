package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/custodia-labs/chunkctl/internal/core/domain"
	"github.com/custodia-labs/chunkctl/internal/core/ports/driven"
	"github.com/custodia-labs/chunkctl/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.ChunkStore = (*Client)(nil)

// API paths.
const (
	pathFilenames = "/get_all_filenames"
	pathScroll    = "/scroll"
	pathUpsert    = "/upsert"
)

// filenamesResponse is the /get_all_filenames response format.
type filenamesResponse struct {
	Filenames []string `json:"filenames"`

	// TotalCount is optional; nil when the backend omits it.
	TotalCount *int `json:"total_count"`
}

// scrollResponse is the /scroll response format.
type scrollResponse struct {
	Results        []scrollResult  `json:"results"`
	NextPageOffset json.RawMessage `json:"next_page_offset"`
}

type scrollResult struct {
	ID       domain.PointID `json:"id"`
	Content  *string        `json:"content"`
	Filename *string        `json:"filename"`
}

// upsertRequest is the /upsert request format.
type upsertRequest struct {
	PointID    string `json:"point_id"`
	FileName   string `json:"file_name"`
	NewContent string `json:"new_content"`
	Action     string `json:"action"`
}

// upsertResponse is the /upsert response format.
type upsertResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ListFilenames returns every document name known to the backend.
func (c *Client) ListFilenames(ctx context.Context) ([]string, error) {
	data, err := c.do(ctx, http.MethodGet, pathFilenames, nil, nil)
	if err != nil {
		return nil, err
	}

	var resp filenamesResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode filenames: %w", err)
	}
	if resp.TotalCount != nil && *resp.TotalCount != len(resp.Filenames) {
		logger.Warn("Backend reported %d filenames but returned %d", *resp.TotalCount, len(resp.Filenames))
	}
	if resp.Filenames == nil {
		return []string{}, nil
	}
	return resp.Filenames, nil
}

// Scroll returns the chunks of fileName. The name travels as a query
// parameter on a POST with no body.
func (c *Client) Scroll(ctx context.Context, fileName string) (domain.ScrollPage, error) {
	query := url.Values{"file_name": []string{fileName}}
	data, err := c.do(ctx, http.MethodPost, pathScroll, query, nil)
	if err != nil {
		return domain.ScrollPage{}, err
	}

	var resp scrollResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return domain.ScrollPage{}, fmt.Errorf("decode scroll: %w", err)
	}

	page := domain.ScrollPage{
		Chunks:  make([]domain.Chunk, 0, len(resp.Results)),
		HasMore: len(resp.NextPageOffset) > 0 && string(resp.NextPageOffset) != "null",
	}
	for _, r := range resp.Results {
		chunk := domain.Chunk{ID: r.ID}
		if r.Content != nil {
			chunk.Content = *r.Content
		}
		if r.Filename != nil {
			chunk.FileName = *r.Filename
		}
		page.Chunks = append(page.Chunks, chunk)
	}
	return page, nil
}

// Upsert posts an edit. A 2xx body that isn't the usual envelope is ignored.
func (c *Client) Upsert(ctx context.Context, req domain.EditRequest) (domain.UpsertResult, error) {
	action := req.Action
	if action == "" {
		action = domain.ActionOverwrite
	}
	payload := upsertRequest{
		PointID:    req.PointID.String(),
		FileName:   req.FileName,
		NewContent: req.NewContent,
		Action:     action.String(),
	}

	data, err := c.do(ctx, http.MethodPost, pathUpsert, nil, payload)
	if err != nil {
		return domain.UpsertResult{}, err
	}

	var resp upsertResponse
	_ = json.Unmarshal(data, &resp)
	return domain.UpsertResult{Status: resp.Status, Message: resp.Message}, nil
}
