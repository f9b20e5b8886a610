package terrain

import (
	"fmt"
	"sync"
)

// ChunkIndex is the authoritative record of which chunks currently exist.
// It owns only the coordinate-to-handle mapping; the underlying render
// and physics resources belong to the collaborators and are torn down by
// the streamer, never by the index.
type ChunkIndex struct {
	mu     sync.RWMutex
	chunks map[ChunkCoord]ChunkHandle
}

// IndexEntry is one (coordinate, handle) pair from a snapshot.
type IndexEntry struct {
	Coord  ChunkCoord
	Handle ChunkHandle
}

// NewChunkIndex creates an empty chunk index.
func NewChunkIndex() *ChunkIndex {
	return &ChunkIndex{
		chunks: make(map[ChunkCoord]ChunkHandle),
	}
}

// Contains reports whether a chunk is registered for the coordinate.
func (ix *ChunkIndex) Contains(coord ChunkCoord) bool {
	ix.mu.RLock()
	_, ok := ix.chunks[coord]
	ix.mu.RUnlock()
	return ok
}

// Insert registers a newly spawned chunk. A duplicate coordinate is a
// caller bug (spawning is supposed to be guarded by Contains) and is
// reported as an error rather than overwriting the live handle.
func (ix *ChunkIndex) Insert(coord ChunkCoord, handle ChunkHandle) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if _, ok := ix.chunks[coord]; ok {
		return fmt.Errorf("chunk (%d,%d) already registered", coord.X, coord.Z)
	}
	ix.chunks[coord] = handle
	return nil
}

// Remove unregisters a chunk and returns its handle. The caller is
// responsible for destroying the handle's resources exactly once.
func (ix *ChunkIndex) Remove(coord ChunkCoord) (ChunkHandle, bool) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	handle, ok := ix.chunks[coord]
	if ok {
		delete(ix.chunks, coord)
	}
	return handle, ok
}

// Len returns the number of registered chunks.
func (ix *ChunkIndex) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.chunks)
}

// Snapshot returns a copy of all entries, safe to iterate while the
// index is being mutated.
func (ix *ChunkIndex) Snapshot() []IndexEntry {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	entries := make([]IndexEntry, 0, len(ix.chunks))
	for coord, handle := range ix.chunks {
		entries = append(entries, IndexEntry{Coord: coord, Handle: handle})
	}
	return entries
}
