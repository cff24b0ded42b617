// ABOUTME: Document manager orchestrating chunking, embedding, and storage
// ABOUTME: Handles change detection, short-name resolution, batch isolation
package rag

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gugugu/docrag/internal/chunker"
	"github.com/gugugu/docrag/internal/models"
	"github.com/gugugu/docrag/internal/store"
)

// Embedder converts texts into embedding vectors, order preserved
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}

// Manager drives the document write path: resolve, hash, chunk, embed,
// upsert. It also exposes listing, statistics, and deletion.
type Manager struct {
	store       *store.Store
	chunker     *chunker.Chunker
	embedder    Embedder
	documentDir string
}

// NewManager creates a Manager over the given store, chunker, and embedder.
// documentDir is the root under which short document names resolve.
func NewManager(st *store.Store, ch *chunker.Chunker, embedder Embedder, documentDir string) *Manager {
	return &Manager{
		store:       st,
		chunker:     ch,
		embedder:    embedder,
		documentDir: documentDir,
	}
}

// Process ingests content under the given document identity. When the
// content hash matches the stored record and force is false, the call is
// an idempotent no-op reported by Processed=false. Otherwise the prior
// chunk set is atomically replaced.
func (m *Manager) Process(ctx context.Context, documentID string, content []byte, format models.DocumentFormat, force bool) (*models.ProcessResult, error) {
	hash := hashBytes(content)

	if rec, ok := m.store.Document(documentID); ok && !force && rec.ContentHash == hash {
		return &models.ProcessResult{
			DocumentID: documentID,
			ChunkCount: rec.ChunkCount,
			Processed:  false,
		}, nil
	}

	text := string(content)
	if format == models.FormatMarkdown {
		text = FlattenMarkdown(text)
	}

	candidates := m.chunker.Split(text)
	chunks := make([]models.Chunk, len(candidates))
	for i, cand := range candidates {
		chunks[i] = models.Chunk{
			DocumentID:  documentID,
			Index:       i,
			Content:     cand.Content,
			StartOffset: cand.Start,
			EndOffset:   cand.End,
			ContentHash: hashBytes([]byte(cand.Content)),
		}
	}

	if err := m.embedChunks(ctx, chunks); err != nil {
		return nil, fmt.Errorf("embedding %s: %w", documentID, err)
	}

	rec := models.DocumentRecord{
		DocumentID:  documentID,
		ContentHash: hash,
		Format:      format,
		ProcessedAt: time.Now().UTC(),
	}
	count, err := m.store.Upsert(rec, chunks)
	if err != nil {
		return nil, err
	}

	return &models.ProcessResult{
		DocumentID: documentID,
		ChunkCount: count,
		Processed:  true,
	}, nil
}

// embedChunks fills in vectors, requesting each distinct chunk content at
// most once: vectors already stored for the same content hash are reused,
// and duplicate texts within the batch share one request slot.
func (m *Manager) embedChunks(ctx context.Context, chunks []models.Chunk) error {
	var (
		missing     []string
		missingHash []string
		byHash      = make(map[string][]float64)
	)

	for _, c := range chunks {
		if _, seen := byHash[c.ContentHash]; seen {
			continue
		}
		if vec, ok := m.store.VectorByContentHash(c.ContentHash); ok {
			byHash[c.ContentHash] = vec
			continue
		}
		byHash[c.ContentHash] = nil
		missing = append(missing, c.Content)
		missingHash = append(missingHash, c.ContentHash)
	}

	if len(missing) > 0 {
		vectors, err := m.embedder.EmbedBatch(ctx, missing)
		if err != nil {
			return err
		}
		if len(vectors) != len(missing) {
			return fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(missing))
		}
		for i, vec := range vectors {
			byHash[missingHash[i]] = vec
		}
	}

	for i := range chunks {
		chunks[i].Vector = byHash[chunks[i].ContentHash]
	}
	return nil
}

// ProcessFile resolves a path or short name, reads the file, and processes
// it under its canonical absolute path
func (m *Manager) ProcessFile(ctx context.Context, pathOrName string, force bool) (*models.ProcessResult, error) {
	resolved, err := m.Resolve(pathOrName)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrInvalidDocument, resolved, err)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8 text", ErrInvalidDocument, resolved)
	}

	return m.Process(ctx, resolved, content, formatForPath(resolved), force)
}

// ProcessBatch applies ProcessFile to each input independently. A failure
// on one input never aborts the rest; each item reports its own outcome.
func (m *Manager) ProcessBatch(ctx context.Context, inputs []string, force bool) []models.BatchItemResult {
	results := make([]models.BatchItemResult, 0, len(inputs))
	for _, input := range inputs {
		res, err := m.ProcessFile(ctx, input, force)
		if err != nil {
			results = append(results, models.BatchItemResult{
				Input: input,
				Error: err.Error(),
			})
			continue
		}
		results = append(results, models.BatchItemResult{
			Input:      input,
			DocumentID: res.DocumentID,
			ChunkCount: res.ChunkCount,
			Processed:  res.Processed,
		})
	}
	return results
}

// Resolve turns a path or short name into a canonical absolute path.
// A value containing a path separator, or naming an existing file, is
// treated as a path. A bare name is searched for under the document root;
// zero matches fail with ErrDocumentNotFound, more than one with
// ErrAmbiguousDocument.
func (m *Manager) Resolve(pathOrName string) (string, error) {
	if strings.ContainsRune(pathOrName, os.PathSeparator) || fileExists(pathOrName) {
		abs, err := filepath.Abs(pathOrName)
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", pathOrName, err)
		}
		if !fileExists(abs) {
			return "", fmt.Errorf("%w: %s", ErrDocumentNotFound, pathOrName)
		}
		return abs, nil
	}

	var matches []string
	walkErr := filepath.WalkDir(m.documentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if !d.IsDir() && d.Name() == pathOrName {
			matches = append(matches, path)
		}
		return nil
	})
	if walkErr != nil {
		return "", fmt.Errorf("searching document root %s: %w", m.documentDir, walkErr)
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s (under %s)", ErrDocumentNotFound, pathOrName, m.documentDir)
	case 1:
		abs, err := filepath.Abs(matches[0])
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", matches[0], err)
		}
		return abs, nil
	default:
		return "", fmt.Errorf("%w: %s matches %d files under %s", ErrAmbiguousDocument, pathOrName, len(matches), m.documentDir)
	}
}

// List returns all document records with file-liveness info, ordered by
// document identity
func (m *Manager) List() []models.DocumentInfo {
	records := m.store.Documents()
	infos := make([]models.DocumentInfo, len(records))
	for i, rec := range records {
		infos[i] = models.DocumentInfo{
			DocumentRecord: rec,
			FileName:       filepath.Base(rec.DocumentID),
			Exists:         fileExists(rec.DocumentID),
		}
	}
	return infos
}

// Delete removes a document and its chunks. The input may be a stored
// document identity, a unique stored file name, or a resolvable path.
// Unknown documents are a successful no-op: the bool reports whether
// anything was removed.
func (m *Manager) Delete(pathOrName string) (bool, error) {
	docID, err := m.resolveStored(pathOrName)
	if err != nil {
		return false, err
	}
	if docID == "" {
		return false, nil
	}
	return m.store.Delete(docID)
}

// resolveStored maps input onto a stored document identity, preferring the
// store over the filesystem so documents whose source file is gone can
// still be deleted
func (m *Manager) resolveStored(pathOrName string) (string, error) {
	var matches []string
	for _, rec := range m.store.Documents() {
		if rec.DocumentID == pathOrName || filepath.Base(rec.DocumentID) == pathOrName {
			matches = append(matches, rec.DocumentID)
		}
	}
	switch {
	case len(matches) == 1:
		return matches[0], nil
	case len(matches) > 1:
		return "", fmt.Errorf("%w: %s matches %d stored documents", ErrAmbiguousDocument, pathOrName, len(matches))
	}

	if abs, err := filepath.Abs(pathOrName); err == nil {
		if _, ok := m.store.Document(abs); ok {
			return abs, nil
		}
	}
	return "", nil
}

// Stats reports store statistics
func (m *Manager) Stats() models.StoreStats {
	return m.store.Stats()
}

func formatForPath(path string) models.DocumentFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return models.FormatMarkdown
	default:
		return models.FormatText
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func hashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
