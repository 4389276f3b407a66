// Package rules holds the named validation predicates and numeric
// thresholds that gate entities before scoring. The engine consumes
// them as opaque boolean and numeric gates.
package rules

import (
	"fmt"
	"unicode"

	"github.com/revelaction/goldspan/corpus"
)

// Thresholds maps an enrichment collaborator name ("chebi", "ssm") to
// the minimum score an entity must carry under that name. A threshold
// of zero is inactive. Entities missing a gated score are rejected.
type Thresholds map[string]float64

// Filter converts the thresholds into an entity gate.
func (t Thresholds) Filter() corpus.Filter {
	return func(e *corpus.Entity) bool {
		for name, min := range t {
			if min <= 0 {
				continue
			}
			v, ok := e.Score(name)
			if !ok || v < min {
				return false
			}
		}
		return true
	}
}

// Rule is a named post-processing predicate.
type Rule struct {
	Name   string
	Accept corpus.Filter
}

// Set is an ordered rule composition with AND semantics.
type Set []Rule

// Filter converts the set into an entity gate.
func (s Set) Filter() corpus.Filter {
	return func(e *corpus.Entity) bool {
		for _, r := range s {
			if !r.Accept(e) {
				return false
			}
		}
		return true
	}
}

// registry holds the rules selectable by name from the command line.
var registry = map[string]corpus.Filter{
	"stopwords": notStopword,
	"alpha":     hasLetter,
}

// Lookup resolves rule names against the registry, preserving order.
func Lookup(names []string) (Set, error) {
	var set Set
	for _, name := range names {
		accept, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("unknown rule: %s", name)
		}
		set = append(set, Rule{Name: name, Accept: accept})
	}
	return set, nil
}

// Combined builds the single gate the corpus consumes: thresholds AND
// every rule of the set.
func Combined(ths Thresholds, set Set) corpus.Filter {
	thf, sf := ths.Filter(), set.Filter()
	return func(e *corpus.Entity) bool {
		return thf(e) && sf(e)
	}
}

// stopwords that never form an entity mention on their own.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "of": true, "in": true,
	"on": true, "and": true, "or": true, "to": true, "for": true,
	"with": true, "as": true, "at": true, "by": true, "its": true,
}

func notStopword(e *corpus.Entity) bool {
	return !stopwords[lower(e.Text)]
}

func hasLetter(e *corpus.Entity) bool {
	for _, r := range e.Text {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func lower(s string) string {
	out := []rune(s)
	for i, r := range out {
		out[i] = unicode.ToLower(r)
	}
	return string(out)
}
