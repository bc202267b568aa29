// Package backend provides the HTTP ChunkStore for the chunk backend.
//
// The backend exposes three endpoints:
//
//	GET  /get_all_filenames
//	POST /scroll?file_name=<name>
//	POST /upsert
//
// Non-2xx responses carry a JSON body with a "detail" field and are
// returned as *domain.APIError. Requests that never produce a response
// are returned as *domain.TransportError.
package backend
