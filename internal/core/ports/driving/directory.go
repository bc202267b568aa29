package driving

import (
	"context"

	"github.com/custodia-labs/chunkctl/internal/core/domain"
)

// FilenameDirectory lists the documents an operator can browse.
type FilenameDirectory interface {
	// ListFilenames fetches the document names, sorted ascending.
	// Use Directory.Options for the selection list with its placeholder.
	ListFilenames(ctx context.Context) (domain.Directory, error)
}
