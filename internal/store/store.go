// ABOUTME: Durable vector store mapping chunk identity to vector, text, metadata
// ABOUTME: RWMutex snapshot reads, atomic per-document replace, flush per mutation
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gugugu/docrag/internal/models"
)

// ErrStoreIO wraps persistence read/write failures. A mutation that fails
// to persist is rolled back in memory and surfaces this error.
var ErrStoreIO = errors.New("store I/O error")

// Store holds all document records and chunks, keyed for O(1) lookup by
// chunk identity and document identity. Readers always observe a document
// either fully replaced or not at all: writers hold the write lock for the
// whole replace, readers copy under the read lock.
type Store struct {
	dir string

	mu     sync.RWMutex
	chunks map[string]models.Chunk          // by chunk ID
	docs   map[string]models.DocumentRecord // by document ID
	hashes map[string]hashEntry             // content hash → vector, refcounted
}

// hashEntry caches a vector per chunk content hash so identical chunk text
// is never re-embedded
type hashEntry struct {
	vector []float64
	refs   int
}

// Open creates the storage directory if needed and loads any persisted
// state from disk
func Open(dir string) (*Store, error) {
	s := &Store{
		dir:    dir,
		chunks: make(map[string]models.Chunk),
		docs:   make(map[string]models.DocumentRecord),
		hashes: make(map[string]hashEntry),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Upsert atomically replaces all chunks belonging to the record's document
// and returns the new chunk count. Old chunks are gone before new chunks
// are visible; no reader can observe a mix.
func (s *Store) Upsert(rec models.DocumentRecord, chunks []models.Chunk) (int, error) {
	for i, c := range chunks {
		if c.DocumentID != rec.DocumentID {
			return 0, fmt.Errorf("chunk %d belongs to %q, not %q", i, c.DocumentID, rec.DocumentID)
		}
		if c.Index != i {
			return 0, fmt.Errorf("chunk indices must be contiguous from 0, got %d at position %d", c.Index, i)
		}
	}
	rec.ChunkCount = len(chunks)

	s.mu.Lock()
	defer s.mu.Unlock()

	rollback := s.snapshotLocked()

	s.removeDocumentLocked(rec.DocumentID)
	for _, c := range chunks {
		s.chunks[c.ID()] = c
		s.retainHashLocked(c)
	}
	s.docs[rec.DocumentID] = rec

	if err := s.persistLocked(); err != nil {
		s.restoreLocked(rollback)
		return 0, fmt.Errorf("%w: persisting upsert of %s: %v", ErrStoreIO, rec.DocumentID, err)
	}
	return len(chunks), nil
}

// Delete removes a document and all of its chunks. Deleting an unknown
// document is a no-op, not an error; the bool reports whether anything
// was removed.
func (s *Store) Delete(documentID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[documentID]; !ok {
		return false, nil
	}

	rollback := s.snapshotLocked()
	s.removeDocumentLocked(documentID)

	if err := s.persistLocked(); err != nil {
		s.restoreLocked(rollback)
		return false, fmt.Errorf("%w: persisting delete of %s: %v", ErrStoreIO, documentID, err)
	}
	return true, nil
}

// Document returns the record for a document identity, if present
func (s *Store) Document(documentID string) (models.DocumentRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.docs[documentID]
	return rec, ok
}

// Documents returns all document records, ordered by document identity
func (s *Store) Documents() []models.DocumentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.DocumentRecord, 0, len(s.docs))
	for _, rec := range s.docs {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DocumentID < out[j].DocumentID
	})
	return out
}

// Chunks returns a consistent snapshot of stored chunks, ordered by
// document identity then chunk index. An empty scope enumerates the whole
// store; otherwise only the named document's chunks are returned.
func (s *Store) Chunks(scope string) []models.Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Chunk
	for _, c := range s.chunks {
		if scope != "" && c.DocumentID != scope {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DocumentID != out[j].DocumentID {
			return out[i].DocumentID < out[j].DocumentID
		}
		return out[i].Index < out[j].Index
	})
	return out
}

// VectorByContentHash returns the cached embedding for chunk text with the
// given content hash, if any live chunk shares it
func (s *Store) VectorByContentHash(hash string) ([]float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.hashes[hash]
	if !ok {
		return nil, false
	}
	vec := make([]float64, len(entry.vector))
	copy(vec, entry.vector)
	return vec, true
}

// Stats reports document and chunk counts plus the on-disk footprint
func (s *Store) Stats() models.StoreStats {
	s.mu.RLock()
	docCount := len(s.docs)
	chunkCount := len(s.chunks)
	s.mu.RUnlock()

	stats := models.StoreStats{
		DocumentCount:    docCount,
		ChunkCount:       chunkCount,
		StorageSizeBytes: s.diskSize(),
	}
	if docCount > 0 {
		stats.AvgChunksPerDoc = float64(chunkCount) / float64(docCount)
	}
	stats.StorageSizeMB = float64(stats.StorageSizeBytes) / (1024 * 1024)
	return stats
}

// Persist flushes current state to disk, for orderly shutdown
func (s *Store) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persistLocked(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreIO, err)
	}
	return nil
}

// removeDocumentLocked drops a document record and its chunks. Caller
// holds the write lock.
func (s *Store) removeDocumentLocked(documentID string) {
	rec, ok := s.docs[documentID]
	if !ok {
		return
	}
	for _, id := range rec.ChunkIDs() {
		if c, ok := s.chunks[id]; ok {
			s.releaseHashLocked(c)
			delete(s.chunks, id)
		}
	}
	delete(s.docs, documentID)
}

func (s *Store) retainHashLocked(c models.Chunk) {
	if c.ContentHash == "" || len(c.Vector) == 0 {
		return
	}
	entry, ok := s.hashes[c.ContentHash]
	if !ok {
		entry = hashEntry{vector: c.Vector}
	}
	entry.refs++
	s.hashes[c.ContentHash] = entry
}

func (s *Store) releaseHashLocked(c models.Chunk) {
	if c.ContentHash == "" {
		return
	}
	entry, ok := s.hashes[c.ContentHash]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(s.hashes, c.ContentHash)
		return
	}
	s.hashes[c.ContentHash] = entry
}

// memSnapshot captures map state for rollback on persist failure
type memSnapshot struct {
	chunks map[string]models.Chunk
	docs   map[string]models.DocumentRecord
	hashes map[string]hashEntry
}

func (s *Store) snapshotLocked() memSnapshot {
	snap := memSnapshot{
		chunks: make(map[string]models.Chunk, len(s.chunks)),
		docs:   make(map[string]models.DocumentRecord, len(s.docs)),
		hashes: make(map[string]hashEntry, len(s.hashes)),
	}
	for k, v := range s.chunks {
		snap.chunks[k] = v
	}
	for k, v := range s.docs {
		snap.docs[k] = v
	}
	for k, v := range s.hashes {
		snap.hashes[k] = v
	}
	return snap
}

func (s *Store) restoreLocked(snap memSnapshot) {
	s.chunks = snap.chunks
	s.docs = snap.docs
	s.hashes = snap.hashes
}
