package corpus

import "testing"

// combineCorpus builds one document with annotations from two model
// sources: m1 and m2 agree on span 6:7, m1 alone has 0:1.
func combineCorpus(t *testing.T) *Corpus {
	t.Helper()
	d := newTestDocument(t)
	d.TagEntity(0, 1, "chemical", "A", "", "m1")
	d.TagEntity(6, 7, "chemical", "C", "", "m1")
	d.TagEntity(6, 7, "chemical", "C", "", "m2")

	c := New()
	c.Add(d)
	return c
}

func TestCombineVotes(t *testing.T) {
	c := combineCorpus(t)
	c.Combine([]string{"m1", "m2"}, "combined")

	d := c.Documents["d1"]
	combined := d.EntitiesOf("combined")
	if len(combined) != 2 {
		t.Fatalf("expected 2 combined entities, got %d", len(combined))
	}

	agreed := findSpan(combined, 6, 7)
	if agreed == nil {
		t.Fatal("expected a combined entity for span 6:7")
	}
	if agreed.RecognizedBy["m1"] != 1 || agreed.RecognizedBy["m2"] != 1 {
		t.Fatalf("expected votes from m1 and m2, got %v", agreed.RecognizedBy)
	}

	single := findSpan(combined, 0, 1)
	if single == nil {
		t.Fatal("expected a combined entity for span 0:1")
	}
	if len(single.RecognizedBy) != 1 || single.RecognizedBy["m1"] != 1 {
		t.Fatalf("expected a single m1 vote, got %v", single.RecognizedBy)
	}
}

func TestCombineExactBoundariesOnly(t *testing.T) {
	d := newTestDocument(t)
	// overlapping but not identical spans must stay separate
	d.TagEntity(6, 7, "chemical", "C", "", "m1")
	d.TagEntity(6, 9, "chemical", "C D", "", "m2")

	c := New()
	c.Add(d)
	c.Combine([]string{"m1", "m2"}, "combined")

	combined := d.EntitiesOf("combined")
	if len(combined) != 2 {
		t.Fatalf("expected 2 combined entities for overlapping spans, got %d", len(combined))
	}
	for _, e := range combined {
		if len(e.RecognizedBy) != 1 {
			t.Fatalf("expected one vote per span, got %v", e.RecognizedBy)
		}
	}
}

func TestCombineIdempotentPerSource(t *testing.T) {
	c := combineCorpus(t)
	c.Combine([]string{"m1", "m1"}, "combined")

	d := c.Documents["d1"]
	combined := d.EntitiesOf("combined")
	if len(combined) != 2 {
		t.Fatalf("expected 2 combined entities, got %d", len(combined))
	}
	for _, e := range combined {
		if len(e.RecognizedBy) != 1 {
			t.Fatalf("expected exactly one vote, got %v", e.RecognizedBy)
		}
		if e.RecognizedBy["m1"] != 1 {
			t.Fatalf("expected m1 vote of 1, got %v", e.RecognizedBy)
		}
	}
}

func TestCombineDistinctIDs(t *testing.T) {
	c := combineCorpus(t)
	c.Combine([]string{"m1", "m2"}, "combined")

	seen := map[string]bool{}
	for _, s := range c.Documents["d1"].Sentences {
		for _, list := range s.Entities {
			for _, e := range list {
				if seen[e.ID] {
					t.Fatalf("duplicate entity id %s", e.ID)
				}
				seen[e.ID] = true
			}
		}
	}
}
