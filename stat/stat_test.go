package stat

import (
	"testing"

	"github.com/revelaction/goldspan/corpus"
	"github.com/revelaction/goldspan/reader"
)

func newStatDocument(t *testing.T) *corpus.Document {
	t.Helper()
	d := corpus.NewDocument("d1", "A, B.", "C D")
	if err := d.Segment([]int{0, 6}); err != nil {
		t.Fatalf("segment: %v", err)
	}
	for _, s := range d.Sentences {
		s.Tokens = reader.Tokenize(s.Text)
	}
	e1, ok := d.TagEntity(6, 7, "chemical", "C", "TRIVIAL", "system")
	if !ok {
		t.Fatal("tag entity failed")
	}
	e2, ok := d.TagEntity(8, 9, "chemical", "D", "FORMULA", "goldstd")
	if !ok {
		t.Fatal("tag entity failed")
	}
	d.AddPair(e1, e2)
	return d
}

func TestAggregate(t *testing.T) {
	h := NewHandler()
	h.Aggregate(newStatDocument(t))

	stats := h.Get()
	if stats.NumDocuments != 1 {
		t.Fatalf("expected 1 document, got %d", stats.NumDocuments)
	}
	if stats.NumSentences != 2 {
		t.Fatalf("expected 2 sentences, got %d", stats.NumSentences)
	}
	// "A, B." → 2 tokens, "C D" → 2 tokens
	if stats.NumTokens != 4 {
		t.Fatalf("expected 4 tokens, got %d", stats.NumTokens)
	}
	if stats.NumPairs != 1 {
		t.Fatalf("expected 1 pair, got %d", stats.NumPairs)
	}
	if stats.Entities["system"] != 1 || stats.Entities["goldstd"] != 1 {
		t.Fatalf("unexpected per-source entity counts %v", stats.Entities)
	}
	// first sentence has no entities, the second has two
	if stats.EntitiesPerSentenceDis[0] != 1 || stats.EntitiesPerSentenceDis[2] != 1 {
		t.Fatalf("unexpected distribution %v", stats.EntitiesPerSentenceDis)
	}
}

func TestAggregateAccumulates(t *testing.T) {
	h := NewHandler()
	h.Aggregate(newStatDocument(t))
	h.Aggregate(newStatDocument(t))

	stats := h.Get()
	if stats.NumDocuments != 2 || stats.NumSentences != 4 || stats.NumPairs != 2 {
		t.Fatalf("counts must accumulate: %+v", stats)
	}
	if stats.Entities["system"] != 2 {
		t.Fatalf("entity counts must accumulate, got %v", stats.Entities)
	}
}

func TestSourcesSorted(t *testing.T) {
	h := NewHandler()
	h.Aggregate(newStatDocument(t))

	sources := h.Get().Sources()
	if len(sources) != 2 || sources[0] != "goldstd" || sources[1] != "system" {
		t.Fatalf("expected sorted sources, got %v", sources)
	}
}
