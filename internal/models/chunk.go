// ABOUTME: Chunk represents one embedded fragment of a processed document
// ABOUTME: Chunk identity is (document ID, index), rendered as "docID#index"
package models

import "fmt"

// Chunk is a contiguous span of a document together with its embedding
type Chunk struct {
	DocumentID  string    `json:"document_id"`
	Index       int       `json:"chunk_index"`
	Content     string    `json:"content"`
	StartOffset int       `json:"start_offset"` // rune offset into the flattened source
	EndOffset   int       `json:"end_offset"`
	ContentHash string    `json:"content_hash"` // sha-256 of Content, embedding dedup key
	Vector      []float64 `json:"-"`            // persisted separately in fixed-width form
}

// ID returns the canonical chunk identity string
func (c Chunk) ID() string {
	return ChunkID(c.DocumentID, c.Index)
}

// ChunkID builds the canonical "docID#index" identity for a chunk
func ChunkID(documentID string, index int) string {
	return fmt.Sprintf("%s#%d", documentID, index)
}
