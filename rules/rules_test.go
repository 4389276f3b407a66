package rules

import (
	"testing"

	"github.com/revelaction/goldspan/corpus"
)

func entity(text string) *corpus.Entity {
	return &corpus.Entity{Text: text}
}

func TestThresholdsInactiveAtZero(t *testing.T) {
	accept := Thresholds{"chebi": 0, "ssm": 0}.Filter()
	if !accept(entity("aspirin")) {
		t.Fatal("zero thresholds must accept entities without scores")
	}
}

func TestThresholdsGateOnScore(t *testing.T) {
	accept := Thresholds{"chebi": 0.5}.Filter()

	e := entity("aspirin")
	if accept(e) {
		t.Fatal("entity without a chebi score must be rejected")
	}

	e.SetScore("chebi", 0.4)
	if accept(e) {
		t.Fatal("entity below the threshold must be rejected")
	}

	e.SetScore("chebi", 0.5)
	if !accept(e) {
		t.Fatal("entity at the threshold must be accepted")
	}
}

func TestLookupUnknownRule(t *testing.T) {
	if _, err := Lookup([]string{"nope"}); err == nil {
		t.Fatal("expected error for unknown rule")
	}
}

func TestLookupComposesAnd(t *testing.T) {
	set, err := Lookup([]string{"stopwords", "alpha"})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	accept := set.Filter()

	if accept(entity("the")) {
		t.Fatal("stopword must be rejected")
	}
	if accept(entity("123")) {
		t.Fatal("digits-only text must be rejected")
	}
	if !accept(entity("aspirin")) {
		t.Fatal("ordinary entity must pass")
	}
}

func TestStopwordsCaseInsensitive(t *testing.T) {
	set, err := Lookup([]string{"stopwords"})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if set.Filter()(entity("The")) {
		t.Fatal("capitalized stopword must be rejected")
	}
}

func TestCombinedGates(t *testing.T) {
	set, err := Lookup([]string{"alpha"})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	accept := Combined(Thresholds{"ssm": 0.3}, set)

	e := entity("caffeine")
	if accept(e) {
		t.Fatal("entity without ssm score must be rejected")
	}
	e.SetScore("ssm", 0.9)
	if !accept(e) {
		t.Fatal("entity passing both gates must be accepted")
	}
}

func TestSameDocumentValidator(t *testing.T) {
	d := corpus.NewDocument("d1", "T.", "A B")
	if err := d.Segment([]int{0, 3}); err != nil {
		t.Fatalf("segment: %v", err)
	}
	e1, _ := d.TagEntity(3, 4, "chemical", "A", "", "m1")
	e2, _ := d.TagEntity(5, 6, "chemical", "B", "", "m1")
	p := d.AddPair(e1, e2)

	if !SameDocument(d, p) {
		t.Fatal("pair over this document's entities must validate")
	}

	other := corpus.NewDocument("d2", "T.", "C D")
	if err := other.Segment([]int{0, 3}); err != nil {
		t.Fatalf("segment: %v", err)
	}
	e3, _ := other.TagEntity(3, 4, "chemical", "C", "", "m1")
	foreign := corpus.NewPair(e1, e3)
	if SameDocument(d, foreign) {
		t.Fatal("pair with a foreign entity must not validate")
	}

	unresolved := &corpus.Pair{E1: e1.ID, E2: e2.ID}
	if SameDocument(d, unresolved) {
		t.Fatal("pair with unresolved entities must not validate")
	}
}
