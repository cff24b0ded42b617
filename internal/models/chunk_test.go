// ABOUTME: Tests for chunk and document identity derivation
// ABOUTME: Chunk IDs are "docID#index"; records derive contiguous ID ranges
package models

import "testing"

func TestChunkID(t *testing.T) {
	if got := ChunkID("/docs/a.md", 3); got != "/docs/a.md#3" {
		t.Errorf("expected /docs/a.md#3, got %s", got)
	}

	c := Chunk{DocumentID: "/docs/a.md", Index: 0}
	if got := c.ID(); got != "/docs/a.md#0" {
		t.Errorf("expected /docs/a.md#0, got %s", got)
	}
}

func TestDocumentRecord_ChunkIDs(t *testing.T) {
	rec := DocumentRecord{DocumentID: "/docs/a.md", ChunkCount: 3}

	got := rec.ChunkIDs()
	want := []string{"/docs/a.md#0", "/docs/a.md#1", "/docs/a.md#2"}
	if len(got) != len(want) {
		t.Fatalf("expected %d IDs, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("position %d: expected %s, got %s", i, w, got[i])
		}
	}

	if ids := (DocumentRecord{DocumentID: "/d"}).ChunkIDs(); len(ids) != 0 {
		t.Errorf("expected no IDs for empty record, got %d", len(ids))
	}
}
