package filesystem

import (
	"testing"

	"github.com/revelaction/goldspan/corpus"
)

// newSnapshotCorpus builds a corpus with entities of two sources, a
// recognized pair and a per-entity score.
func newSnapshotCorpus(t *testing.T) *corpus.Corpus {
	t.Helper()
	d := corpus.NewDocument("d1", "A, B.", "C D")
	if err := d.Segment([]int{0, 6}); err != nil {
		t.Fatalf("segment: %v", err)
	}
	e1, ok := d.TagEntity(6, 7, "chemical", "C", "TRIVIAL", "system")
	if !ok {
		t.Fatal("tag entity failed")
	}
	e1.Recognize("system", 1)
	e1.SetScore("chebi", 0.8)
	e2, ok := d.TagEntity(8, 9, "chemical", "D", "FORMULA", "goldstd")
	if !ok {
		t.Fatal("tag entity failed")
	}
	p := d.AddPair(e1, e2)
	p.Recognize("system", 1)

	c := corpus.New()
	c.Add(d)
	return c
}

func TestCorpusStoreRoundTrip(t *testing.T) {
	store, err := NewCorpusStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Save("dev", newSnapshotCorpus(t)); err != nil {
		t.Fatalf("save: %v", err)
	}

	c, err := store.Load("dev")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	d, ok := c.Get("d1")
	if !ok {
		t.Fatal("document d1 lost")
	}
	if d.Text != "A, B. C D" || d.TitleOffset() != 6 {
		t.Fatalf("document text not restored: %q", d.Text)
	}
	if len(d.Sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(d.Sentences))
	}

	ents := d.EntitiesOf("system")
	if len(ents) != 1 {
		t.Fatalf("expected 1 system entity, got %d", len(ents))
	}
	e := ents[0]
	if e.Dstart != 6 || e.Dend != 7 || e.Text != "C" {
		t.Fatalf("entity span not restored: %+v", e)
	}
	if e.RecognizedBy["system"] != 1 {
		t.Fatal("recognition votes lost")
	}
	if got, ok := e.Score("chebi"); !ok || got != 0.8 {
		t.Fatalf("entity score lost: %v %v", got, ok)
	}

	if len(d.Pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(d.Pairs))
	}
	p := d.Pairs[0]
	if p.Entities[0] == nil || p.Entities[1] == nil {
		t.Fatal("pair entities not relinked")
	}
	if p.Entities[0] != d.EntityByID(p.E1) {
		t.Fatal("pair must point at the sentence-owned entity")
	}
	if p.RecognizedBy["system"] != 1 {
		t.Fatal("pair recognition votes lost")
	}
}

func TestCorpusStoreSaveOverwrites(t *testing.T) {
	store, err := NewCorpusStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Save("dev", newSnapshotCorpus(t)); err != nil {
		t.Fatalf("save: %v", err)
	}

	small := corpus.New()
	small.Add(corpus.NewDocument("d2", "T.", "B"))
	if err := store.Save("dev", small); err != nil {
		t.Fatalf("save again: %v", err)
	}

	c, err := store.Load("dev")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Has("d1") || !c.Has("d2") {
		t.Fatalf("snapshot not replaced, documents %v", c.DocumentIDs())
	}
}

func TestCorpusStoreLoadMissing(t *testing.T) {
	store, err := NewCorpusStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.Load("nope"); err == nil {
		t.Fatal("expected error for missing snapshot")
	}
}

func TestCorpusStoreList(t *testing.T) {
	store, err := NewCorpusStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	for _, name := range []string{"train", "dev"} {
		if err := store.Save(name, newSnapshotCorpus(t)); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}
	names, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) != 2 || names[0] != "dev" || names[1] != "train" {
		t.Fatalf("expected sorted snapshot names, got %v", names)
	}
}
