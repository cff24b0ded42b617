// ABOUTME: Splits document text into overlapping chunks for embedding
// ABOUTME: Prefers paragraph/sentence boundaries, hard-cuts oversized runs
package chunker

import (
	"strings"
	"unicode"
)

// Candidate is a chunk of text plus its rune span within the source
type Candidate struct {
	Content string
	Start   int // inclusive rune offset
	End     int // exclusive rune offset
}

// Chunker splits text into size-bounded, overlapping candidates.
// Splitting is deterministic: identical input and parameters always
// produce identical boundaries.
type Chunker struct {
	chunkSize int
	overlap   int
}

// New creates a Chunker, clamping out-of-range parameters
func New(chunkSize, overlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 4
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}
}

// Split chunks text into candidates of at most chunkSize runes, with
// consecutive candidates overlapping by roughly the configured overlap.
// An empty document yields no candidates; a document no longer than the
// chunk size yields exactly one.
func (c *Chunker) Split(text string) []Candidate {
	runes := []rune(text)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	if len(runes) <= c.chunkSize {
		if cand, ok := trimmed(runes, 0, len(runes)); ok {
			return []Candidate{cand}
		}
		return nil
	}

	// Boundary search is confined to the final quarter of the window so a
	// boundary near the start never produces a tiny chunk.
	lookback := c.chunkSize / 4
	if lookback < 1 {
		lookback = 1
	}

	var chunks []Candidate
	start := 0
	for start < len(runes) {
		end := start + c.chunkSize
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = c.adjustToBoundary(runes, start, end, lookback)
		}

		if cand, ok := trimmed(runes, start, end); ok {
			chunks = append(chunks, cand)
		}

		if end >= len(runes) {
			break
		}
		next := end - c.overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}

// adjustToBoundary moves the cut point back onto a paragraph break or
// sentence end inside [end-lookback, end), keeping the hard cut otherwise
func (c *Chunker) adjustToBoundary(runes []rune, start, end, lookback int) int {
	limit := end - lookback
	if limit < start+1 {
		limit = start + 1
	}

	// Paragraph break: cut before the blank line
	for i := end - 2; i >= limit; i-- {
		if runes[i] == '\n' && runes[i+1] == '\n' {
			return i
		}
	}

	// Sentence end: cut after the terminator
	for i := end - 1; i >= limit; i-- {
		if isSentenceEnd(runes[i]) {
			return i + 1
		}
	}

	return end
}

func isSentenceEnd(r rune) bool {
	switch r {
	case '.', '!', '?', '。', '！', '？':
		return true
	}
	return false
}

// trimmed returns the candidate for runes[start:end] with surrounding
// whitespace stripped and the span adjusted to the kept text
func trimmed(runes []rune, start, end int) (Candidate, bool) {
	for start < end && unicode.IsSpace(runes[start]) {
		start++
	}
	for end > start && unicode.IsSpace(runes[end-1]) {
		end--
	}
	if start >= end {
		return Candidate{}, false
	}
	return Candidate{
		Content: string(runes[start:end]),
		Start:   start,
		End:     end,
	}, true
}
