// Package domain defines the core entities of chunkctl.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Chunk: A unit of document content addressed by a PointID
//   - Directory: The sorted set of document names known to the backend
//   - EditRequest: A single overwrite or append submitted for a chunk
//   - State: The explicit client session state and its pure transitions
//   - EditRecord: A journal entry for a submitted edit
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
