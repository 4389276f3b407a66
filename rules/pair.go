package rules

import "github.com/revelaction/goldspan/corpus"

// PairValidator decides whether a pair is a valid relation candidate.
// Relation semantics are not hard-coded in the engine; callers supply
// their own validator or use SameDocument.
type PairValidator func(d *corpus.Document, p *corpus.Pair) bool

// SameDocument is the baseline validator: both entities resolved and
// owned by the document holding the pair.
func SameDocument(d *corpus.Document, p *corpus.Pair) bool {
	e1, e2 := p.Entities[0], p.Entities[1]
	if e1 == nil || e2 == nil {
		return false
	}
	return d.EntityByID(e1.ID) == e1 && d.EntityByID(e2.ID) == e2
}
