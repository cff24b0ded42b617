// ABOUTME: Linear-scan cosine similarity search over the vector store
// ABOUTME: Deterministic ordering, min-score filter, optional document scope
package search

import (
	"fmt"
	"math"
	"sort"

	"github.com/gugugu/docrag/internal/models"
)

// Source provides the candidate chunks for ranking. The store implements
// it; an approximate index could be dropped in behind the same interface.
type Source interface {
	Chunks(scope string) []models.Chunk
}

// Engine ranks stored chunks against a query vector by cosine similarity.
// The scan is linear: expected corpora are thousands of chunks, not
// millions.
type Engine struct {
	source Source
}

// NewEngine creates an Engine over the given candidate source
func NewEngine(source Source) *Engine {
	return &Engine{source: source}
}

// Search returns up to topK chunks with cosine similarity >= minScore,
// ordered by descending score. Ties break by ascending document identity
// then chunk index so results are deterministic. A non-empty scope
// restricts candidates to that document before ranking.
func (e *Engine) Search(queryVector []float64, topK int, minScore float64, scope string) ([]models.SearchResult, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("top_k must be positive, got %d", topK)
	}
	if len(queryVector) == 0 {
		return nil, fmt.Errorf("query vector is empty")
	}

	var results []models.SearchResult
	for _, c := range e.source.Chunks(scope) {
		score := Cosine(queryVector, c.Vector)
		if score < minScore {
			continue
		}
		results = append(results, models.SearchResult{
			DocumentID: c.DocumentID,
			ChunkIndex: c.Index,
			Content:    c.Content,
			Score:      score,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].DocumentID != results[j].DocumentID {
			return results[i].DocumentID < results[j].DocumentID
		}
		return results[i].ChunkIndex < results[j].ChunkIndex
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Cosine returns the cosine similarity of a and b: dot(a,b)/(|a|*|b|).
// Mismatched lengths or a zero-norm vector yield 0, never NaN.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
