// ABOUTME: On-disk representation of the vector store
// ABOUTME: Vectors as gob fixed-width arrays, records as JSON, rename-atomic
package store

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gugugu/docrag/internal/models"
)

const (
	embeddingsFile = "embeddings.gob"
	chunksFile     = "chunks.json"
	documentsFile  = "documents.json"
)

// persistLocked writes the full store state to disk. Caller holds the
// write lock. Each file is written to a temp path and renamed into place
// so a crash never leaves a half-written file.
func (s *Store) persistLocked() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating storage dir: %w", err)
	}

	vectors := make(map[string][]float64, len(s.chunks))
	for id, c := range s.chunks {
		vectors[id] = c.Vector
	}
	if err := writeGob(filepath.Join(s.dir, embeddingsFile), vectors); err != nil {
		return fmt.Errorf("writing embeddings: %w", err)
	}

	if err := writeJSON(filepath.Join(s.dir, chunksFile), s.chunks); err != nil {
		return fmt.Errorf("writing chunks: %w", err)
	}

	if err := writeJSON(filepath.Join(s.dir, documentsFile), s.docs); err != nil {
		return fmt.Errorf("writing documents: %w", err)
	}

	return nil
}

// load reads persisted state if present. A missing file means an empty
// store, not an error.
func (s *Store) load() error {
	docs := make(map[string]models.DocumentRecord)
	if err := readJSON(filepath.Join(s.dir, documentsFile), &docs); err != nil {
		return fmt.Errorf("%w: reading documents: %v", ErrStoreIO, err)
	}

	chunks := make(map[string]models.Chunk)
	if err := readJSON(filepath.Join(s.dir, chunksFile), &chunks); err != nil {
		return fmt.Errorf("%w: reading chunks: %v", ErrStoreIO, err)
	}

	vectors := make(map[string][]float64)
	if err := readGob(filepath.Join(s.dir, embeddingsFile), &vectors); err != nil {
		return fmt.Errorf("%w: reading embeddings: %v", ErrStoreIO, err)
	}

	s.docs = docs
	s.chunks = make(map[string]models.Chunk, len(chunks))
	s.hashes = make(map[string]hashEntry)
	for id, c := range chunks {
		c.Vector = vectors[id]
		s.chunks[id] = c
		s.retainHashLocked(c)
	}
	return nil
}

// diskSize sums the sizes of the persisted files
func (s *Store) diskSize() int64 {
	var total int64
	for _, name := range []string{embeddingsFile, chunksFile, documentsFile} {
		if info, err := os.Stat(filepath.Join(s.dir, name)); err == nil {
			total += info.Size()
		}
	}
	return total
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func writeGob(path string, v interface{}) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(v); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func readGob(path string, v interface{}) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewDecoder(f).Decode(v)
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
