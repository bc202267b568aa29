package domain

import "time"

// DocumentSnapshot holds the chunks fetched for one document.
type DocumentSnapshot struct {
	FileName string
	Chunks   []Chunk
	HasMore  bool
}

// Snapshot is a point-in-time copy of every document's chunks.
type Snapshot struct {
	TakenAt   time.Time
	Documents []DocumentSnapshot
}

// ChunkCount returns the total number of chunks across documents.
func (s *Snapshot) ChunkCount() int {
	n := 0
	for i := range s.Documents {
		n += len(s.Documents[i].Chunks)
	}
	return n
}
