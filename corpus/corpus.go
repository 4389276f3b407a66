// Package corpus models annotated text corpora: documents split into
// offset-anchored sentences, carrying per-source entity and relation
// annotations addressable by character offset.
package corpus

import "sort"

// Corpus maps document id to document. Populated once per run,
// read-only afterwards except for merges adding a new source.
// Not safe for concurrent mutation.
type Corpus struct {
	Documents map[string]*Document `json:"documents"`
}

func New() *Corpus {
	return &Corpus{Documents: make(map[string]*Document)}
}

// Add inserts the document, replacing any previous one with the same
// id.
func (c *Corpus) Add(d *Document) {
	if c.Documents == nil {
		c.Documents = make(map[string]*Document)
	}
	c.Documents[d.DID] = d
}

// Get returns the document with the given id.
func (c *Corpus) Get(did string) (*Document, bool) {
	d, ok := c.Documents[did]
	return d, ok
}

// Has reports whether the corpus holds a document with the given id.
func (c *Corpus) Has(did string) bool {
	_, ok := c.Documents[did]
	return ok
}

// DocumentIDs returns the document ids sorted, the iteration order for
// every report-emitting consumer.
func (c *Corpus) DocumentIDs() []string {
	ids := make([]string, 0, len(c.Documents))
	for did := range c.Documents {
		ids = append(ids, did)
	}
	sort.Strings(ids)
	return ids
}

// Relink restores the pair entity pointers of every document after a
// snapshot load.
func (c *Corpus) Relink() error {
	for _, did := range c.DocumentIDs() {
		if err := c.Documents[did].Relink(); err != nil {
			return err
		}
	}
	return nil
}

// Offset is one flattened annotation span in document-global
// coordinates, the unit the scoring engine consumes.
type Offset struct {
	DID   string
	Start int
	End   int
	Text  string
}

// Offsets flattens the accepted entities of one source across all
// documents into offset tuples, sorted by document id, start, end.
func (c *Corpus) Offsets(source string, accept Filter) []Offset {
	var out []Offset
	for _, did := range c.DocumentIDs() {
		for _, e := range c.Documents[did].EntitiesOf(source) {
			if accept != nil && !accept(e) {
				continue
			}
			out = append(out, Offset{DID: did, Start: e.Dstart, End: e.Dend, Text: e.Text})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.DID != b.DID {
			return a.DID < b.DID
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	})
	return out
}
