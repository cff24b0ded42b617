// ABOUTME: Hybrid ranking combining semantic similarity and keyword overlap
// ABOUTME: Fixed 0.7/0.3 weighting over semantically pre-filtered candidates
package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/gugugu/docrag/internal/models"
)

// Weighting between the semantic and keyword components. Fixed in v1;
// isolated here so tuning never touches the Engine.
const (
	semanticWeight = 0.7
	keywordWeight  = 0.3
)

// HybridRanker re-scores semantically retrieved candidates with lexical
// keyword overlap
type HybridRanker struct{}

// NewHybridRanker creates a HybridRanker
func NewHybridRanker() *HybridRanker {
	return &HybridRanker{}
}

// Rank re-scores candidates by composite = 0.7*semantic + 0.3*keyword and
// returns the top topK, ordered by descending composite score. Ties break
// on higher semantic score, then ascending document identity and chunk
// index. Candidates must already have passed the semantic min-score
// filter; re-ranking never resurrects a filtered chunk.
func (r *HybridRanker) Rank(queryText string, candidates []models.SearchResult, topK int) []models.RankedResult {
	queryTokens := Tokenize(queryText)

	ranked := make([]models.RankedResult, 0, len(candidates))
	for _, c := range candidates {
		kw := keywordScore(queryTokens, c.Content)
		ranked = append(ranked, models.RankedResult{
			SearchResult:   c,
			SemanticScore:  c.Score,
			KeywordScore:   kw,
			CompositeScore: semanticWeight*c.Score + keywordWeight*kw,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].CompositeScore != ranked[j].CompositeScore {
			return ranked[i].CompositeScore > ranked[j].CompositeScore
		}
		if ranked[i].SemanticScore != ranked[j].SemanticScore {
			return ranked[i].SemanticScore > ranked[j].SemanticScore
		}
		if ranked[i].DocumentID != ranked[j].DocumentID {
			return ranked[i].DocumentID < ranked[j].DocumentID
		}
		return ranked[i].ChunkIndex < ranked[j].ChunkIndex
	})

	if topK > 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}

// keywordScore is the fraction of distinct query tokens present in the
// chunk text, 0 when the query has no tokens
func keywordScore(queryTokens []string, content string) float64 {
	if len(queryTokens) == 0 {
		return 0.0
	}

	contentTokens := make(map[string]struct{})
	for _, tok := range Tokenize(content) {
		contentTokens[tok] = struct{}{}
	}

	seen := make(map[string]struct{}, len(queryTokens))
	matched := 0
	for _, tok := range queryTokens {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		if _, ok := contentTokens[tok]; ok {
			matched++
		}
	}

	return float64(matched) / float64(len(seen))
}

// Tokenize lowercases text and splits it on any non-letter, non-digit rune
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
