// Package score is the alignment and scoring kernel: set-based
// comparison of system annotation tuples against a gold standard,
// producing TP/FP/FN partitions, precision/recall/F-measure and
// diagnostic reports. The same kernel scores entity spans and relation
// pairs.
package score

import (
	"sort"
	"strconv"

	"github.com/revelaction/goldspan/corpus"
)

// Tuple is one comparable annotation: document id, a span encoded as
// two strings, and optionally the literal text. A predicted tuple
// matches gold only on exact equality of every compared field; no
// partial-overlap credit.
type Tuple struct {
	DID   string
	Start string
	End   string
	Text  string
}

// Span builds the tuple for an entity span.
func Span(did string, start, end int, text string) Tuple {
	return Tuple{
		DID:   did,
		Start: strconv.Itoa(start),
		End:   strconv.Itoa(end),
		Text:  text,
	}
}

// PairSpan builds the tuple for a relation between two entity spans.
func PairSpan(did string, s1, e1, s2, e2 int, text string) Tuple {
	return Tuple{
		DID:   did,
		Start: strconv.Itoa(s1) + "-" + strconv.Itoa(e1),
		End:   strconv.Itoa(s2) + "-" + strconv.Itoa(e2),
		Text:  text,
	}
}

// FromOffsets converts corpus offset tuples.
func FromOffsets(offsets []corpus.Offset) []Tuple {
	out := make([]Tuple, 0, len(offsets))
	for _, o := range offsets {
		out = append(out, Span(o.DID, o.Start, o.End, o.Text))
	}
	return out
}

// Outcome is the TP/FP/FN partition of one comparison. The three
// slices are sorted by document id, start, end.
type Outcome struct {
	TP []Tuple
	FP []Tuple
	FN []Tuple
}

// Compare diffs system tuples against gold tuples with pure set
// semantics:
//
//	TP = system ∩ gold
//	FP = system − gold
//	FN = gold − system
//
// When compareText is false the Text field is cleared on both sides
// before comparison, so tuples match on offsets alone.
func Compare(system, gold []Tuple, compareText bool) Outcome {
	sys := toSet(system, compareText)
	gld := toSet(gold, compareText)

	var out Outcome
	for t := range sys {
		if _, ok := gld[t]; ok {
			out.TP = append(out.TP, t)
		} else {
			out.FP = append(out.FP, t)
		}
	}
	for t := range gld {
		if _, ok := sys[t]; !ok {
			out.FN = append(out.FN, t)
		}
	}
	sortTuples(out.TP)
	sortTuples(out.FP)
	sortTuples(out.FN)
	return out
}

func toSet(tuples []Tuple, compareText bool) map[Tuple]struct{} {
	set := make(map[Tuple]struct{}, len(tuples))
	for _, t := range tuples {
		if !compareText {
			t.Text = ""
		}
		set[t] = struct{}{}
	}
	return set
}

// Precision is |TP| / (|TP| + |FP|), 0 when the denominator is 0.
func (o Outcome) Precision() float64 {
	return ratio(len(o.TP), len(o.TP)+len(o.FP))
}

// Recall is |TP| / (|TP| + |FN|), 0 when the denominator is 0.
func (o Outcome) Recall() float64 {
	return ratio(len(o.TP), len(o.TP)+len(o.FN))
}

// F1 is the harmonic mean of precision and recall, 0 when both are 0.
func (o Outcome) F1() float64 {
	p, r := o.Precision(), o.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// sortTuples orders by document id, then start, then end, numerically
// where the span fields are plain integers. Container iteration order
// never leaks into reports.
func sortTuples(tuples []Tuple) {
	sort.Slice(tuples, func(i, j int) bool {
		a, b := tuples[i], tuples[j]
		if a.DID != b.DID {
			return a.DID < b.DID
		}
		if a.Start != b.Start {
			return spanLess(a.Start, b.Start)
		}
		if a.End != b.End {
			return spanLess(a.End, b.End)
		}
		return a.Text < b.Text
	})
}

func spanLess(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a < b
}
