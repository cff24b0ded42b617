// ABOUTME: DocumentRecord tracks a processed source file and its chunk set
// ABOUTME: Content hash drives change detection and idempotent reprocessing
package models

import "time"

// DocumentFormat identifies how the raw source is flattened before chunking
type DocumentFormat string

const (
	FormatMarkdown DocumentFormat = "markdown"
	FormatText     DocumentFormat = "text"
)

// DocumentRecord is the per-document bookkeeping entry in the vector store.
// Chunk indices are always the contiguous range [0, ChunkCount).
type DocumentRecord struct {
	DocumentID  string         `json:"document_id"` // canonical absolute path
	ContentHash string         `json:"content_hash"`
	Format      DocumentFormat `json:"format"`
	ChunkCount  int            `json:"chunk_count"`
	ProcessedAt time.Time      `json:"processed_at"`
}

// ChunkIDs returns the identities of all live chunks for this document
func (d DocumentRecord) ChunkIDs() []string {
	ids := make([]string, d.ChunkCount)
	for i := range ids {
		ids[i] = ChunkID(d.DocumentID, i)
	}
	return ids
}

// DocumentInfo is a listing entry: the record plus source-file liveness
type DocumentInfo struct {
	DocumentRecord
	FileName string `json:"file_name"`
	Exists   bool   `json:"exists"`
}
