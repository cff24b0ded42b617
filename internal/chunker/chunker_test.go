// ABOUTME: Tests for deterministic overlapping text chunking
// ABOUTME: Validates boundary preference, overlap, and edge cases
package chunker

import (
	"strings"
	"testing"
)

func TestSplit_EmptyInput(t *testing.T) {
	c := New(100, 20)

	for _, text := range []string{"", "   ", "\n\n\t  \n"} {
		if got := c.Split(text); got != nil {
			t.Errorf("Split(%q): expected nil, got %d candidates", text, len(got))
		}
	}
}

func TestSplit_ShortInputSingleChunk(t *testing.T) {
	c := New(100, 20)
	text := "A short document that fits in one chunk."

	got := c.Split(text)
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0].Content != text {
		t.Errorf("expected content %q, got %q", text, got[0].Content)
	}
	if got[0].Start != 0 || got[0].End != len([]rune(text)) {
		t.Errorf("expected span [0,%d), got [%d,%d)", len([]rune(text)), got[0].Start, got[0].End)
	}
}

func TestSplit_ExactChunkSizeSingleChunk(t *testing.T) {
	c := New(10, 2)
	text := "abcdefghij" // exactly 10 runes

	got := c.Split(text)
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate for input equal to chunk size, got %d", len(got))
	}
}

func TestSplit_Deterministic(t *testing.T) {
	c := New(50, 10)
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 20)

	first := c.Split(text)
	for i := 0; i < 5; i++ {
		again := c.Split(text)
		if len(again) != len(first) {
			t.Fatalf("run %d: expected %d candidates, got %d", i, len(first), len(again))
		}
		for j := range first {
			if again[j] != first[j] {
				t.Errorf("run %d: candidate %d differs: %+v vs %+v", i, j, again[j], first[j])
			}
		}
	}
}

func TestSplit_RespectsChunkSize(t *testing.T) {
	c := New(80, 20)
	text := strings.Repeat("Sentences end here. More words follow after that. ", 30)

	got := c.Split(text)
	if len(got) < 2 {
		t.Fatalf("expected multiple candidates, got %d", len(got))
	}
	for i, cand := range got {
		if n := len([]rune(cand.Content)); n > 80 {
			t.Errorf("candidate %d: %d runes exceeds chunk size 80", i, n)
		}
	}
}

func TestSplit_PrefersSentenceBoundary(t *testing.T) {
	// The window is 40 runes; a sentence ends inside the final-quarter
	// lookback, so the cut should land right after the period.
	c := New(40, 0)
	text := "Alpha beta gamma delta epsilon zeta. More text continues well past the window here."

	got := c.Split(text)
	if len(got) < 2 {
		t.Fatalf("expected multiple candidates, got %d", len(got))
	}
	if !strings.HasSuffix(got[0].Content, ".") {
		t.Errorf("expected first chunk to end at sentence boundary, got %q", got[0].Content)
	}
}

func TestSplit_PrefersParagraphBoundary(t *testing.T) {
	para1 := strings.Repeat("a", 35)
	para2 := strings.Repeat("b", 60)
	text := para1 + "\n\n" + para2

	c := New(40, 0)
	got := c.Split(text)
	if len(got) < 2 {
		t.Fatalf("expected multiple candidates, got %d", len(got))
	}
	if got[0].Content != para1 {
		t.Errorf("expected first chunk to be the first paragraph, got %q", got[0].Content)
	}
}

func TestSplit_OverlapBetweenChunks(t *testing.T) {
	// No boundary characters, so cuts are hard and overlap is exact.
	c := New(20, 5)
	text := strings.Repeat("x", 100)

	got := c.Split(text)
	if len(got) < 2 {
		t.Fatalf("expected multiple candidates, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		overlap := got[i-1].End - got[i].Start
		if overlap != 5 {
			t.Errorf("candidates %d/%d: expected overlap 5, got %d", i-1, i, overlap)
		}
	}
}

func TestSplit_CoversFullDocument(t *testing.T) {
	c := New(30, 8)
	text := strings.Repeat("All work and no play makes Jack a dull boy. ", 10)
	runes := []rune(text)

	got := c.Split(text)
	if len(got) == 0 {
		t.Fatal("expected candidates")
	}
	if got[0].Start != 0 {
		t.Errorf("expected first chunk to start at 0, got %d", got[0].Start)
	}
	last := got[len(got)-1]
	// Trailing whitespace is trimmed, so the last span must reach the
	// final non-space rune.
	end := len(runes)
	for end > 0 && (runes[end-1] == ' ' || runes[end-1] == '\n') {
		end--
	}
	if last.End != end {
		t.Errorf("expected last chunk to end at %d, got %d", end, last.End)
	}
	// Spans must progress monotonically with no gaps beyond the overlap.
	for i := 1; i < len(got); i++ {
		if got[i].Start > got[i-1].End {
			t.Errorf("gap between candidates %d and %d: [%d,%d) then [%d,%d)",
				i-1, i, got[i-1].Start, got[i-1].End, got[i].Start, got[i].End)
		}
	}
}

func TestSplit_SpansMatchContent(t *testing.T) {
	c := New(25, 5)
	text := "First sentence here. Second sentence follows. Third one closes it out."
	runes := []rune(text)

	for i, cand := range c.Split(text) {
		if string(runes[cand.Start:cand.End]) != cand.Content {
			t.Errorf("candidate %d: span [%d,%d) does not match content %q",
				i, cand.Start, cand.End, cand.Content)
		}
	}
}

func TestSplit_UnicodeRuneCounting(t *testing.T) {
	c := New(10, 2)
	text := strings.Repeat("日本語テキスト。", 5) // 8 runes per repeat

	got := c.Split(text)
	if len(got) < 2 {
		t.Fatalf("expected multiple candidates, got %d", len(got))
	}
	for i, cand := range got {
		if n := len([]rune(cand.Content)); n > 10 {
			t.Errorf("candidate %d: %d runes exceeds chunk size 10", i, n)
		}
	}
}

func TestNew_ClampsParameters(t *testing.T) {
	tests := []struct {
		name         string
		size, overlap int
		wantSize     int
		wantOverlap  int
	}{
		{"defaults on zero size", 0, 10, 1000, 10},
		{"negative overlap to zero", 100, -5, 100, 0},
		{"overlap >= size reduced", 100, 100, 100, 25},
		{"overlap above size reduced", 100, 150, 100, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.size, tt.overlap)
			if c.chunkSize != tt.wantSize {
				t.Errorf("chunkSize: expected %d, got %d", tt.wantSize, c.chunkSize)
			}
			if c.overlap != tt.wantOverlap {
				t.Errorf("overlap: expected %d, got %d", tt.wantOverlap, c.overlap)
			}
		})
	}
}

func TestSplit_NoBoundariesHardCut(t *testing.T) {
	c := New(10, 0)
	text := strings.Repeat("z", 35)

	got := c.Split(text)
	if len(got) != 4 {
		t.Fatalf("expected 4 candidates (10+10+10+5), got %d", len(got))
	}
	wantLens := []int{10, 10, 10, 5}
	for i, cand := range got {
		if len(cand.Content) != wantLens[i] {
			t.Errorf("candidate %d: expected %d runes, got %d", i, wantLens[i], len(cand.Content))
		}
	}
}
