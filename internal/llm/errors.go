// ABOUTME: Sentinel errors for the external embedding and completion services
// ABOUTME: Callers match with errors.Is to decide retry or surface policy
package llm

import "errors"

var (
	// ErrEmbeddingService wraps transport or API failures of the embedding call
	ErrEmbeddingService = errors.New("embedding service error")

	// ErrCompletionService wraps failures of the completion call, including
	// mid-stream failures
	ErrCompletionService = errors.New("completion service error")
)
