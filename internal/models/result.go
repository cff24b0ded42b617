// ABOUTME: Typed results for search, ranking, processing, and chat operations
// ABOUTME: Replaces ad hoc maps with explicit per-operation records
package models

// SearchResult is one retrieved chunk with its cosine similarity score
type SearchResult struct {
	DocumentID string  `json:"document_id"`
	ChunkIndex int     `json:"chunk_index"`
	Content    string  `json:"content"`
	Score      float64 `json:"score"`
}

// RankedResult is a hybrid-ranked chunk: composite plus both component scores
type RankedResult struct {
	SearchResult
	CompositeScore float64 `json:"composite_score"`
	SemanticScore  float64 `json:"semantic_score"`
	KeywordScore   float64 `json:"keyword_score"`
}

// ProcessResult reports the outcome of processing a single document.
// Processed is false when the content hash was unchanged and the call
// was an idempotent no-op.
type ProcessResult struct {
	DocumentID string `json:"document_id"`
	ChunkCount int    `json:"chunk_count"`
	Processed  bool   `json:"processed"`
}

// BatchItemResult is the per-input outcome of a batch processing call.
// A failed item carries Error and leaves the rest of the batch untouched.
type BatchItemResult struct {
	Input      string `json:"input"`
	DocumentID string `json:"document_id,omitempty"`
	ChunkCount int    `json:"chunk_count"`
	Processed  bool   `json:"processed"`
	Error      string `json:"error,omitempty"`
}

// StoreStats summarizes the vector store contents and on-disk footprint
type StoreStats struct {
	DocumentCount    int     `json:"document_count"`
	ChunkCount       int     `json:"chunk_count"`
	AvgChunksPerDoc  float64 `json:"avg_chunks_per_doc"`
	StorageSizeBytes int64   `json:"storage_size_bytes"`
	StorageSizeMB    float64 `json:"storage_size_mb"`
}

// Citation points a grounded answer back at a stored chunk
type Citation struct {
	DocumentID string  `json:"document_id"`
	ChunkIndex int     `json:"chunk_index"`
	Score      float64 `json:"score"`
}

// TokenUsage mirrors the completion service's token accounting
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResponse is a complete grounded answer with source citations.
// SourcesFound is false when no chunk cleared the similarity bar and the
// model answered from general knowledge; Sources is empty in that case.
type ChatResponse struct {
	Response     string      `json:"response"`
	Model        string      `json:"model"`
	Usage        *TokenUsage `json:"usage,omitempty"`
	Sources      []Citation  `json:"sources"`
	SourcesFound bool        `json:"sources_found"`
}
