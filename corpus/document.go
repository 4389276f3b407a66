package corpus

import (
	"fmt"
	"sort"
	"strings"
)

// sentenceSeparator joins the title sentence to the body text. Its
// length is part of the title offset every body-relative annotation
// must be shifted by.
const sentenceSeparator = " "

// Document is a title plus body text, concatenated under the corpus
// format's normalization rule, segmented into ordered, non-overlapping
// sentences.
//
// Title must arrive already normalized to a single sentence ending in
// a period; how that normalization happens (angle bracket replacement,
// internal period collapse) is the corpus format's contract, not the
// document's.
type Document struct {
	DID   string `json:"did"`
	Title string `json:"title"`
	Body  string `json:"body"`

	// Text is Title + separator + Body. All dstart/dend offsets refer
	// to this string.
	Text string `json:"text"`

	Sentences []*Sentence `json:"sentences,omitempty"`

	Pairs []*Pair `json:"pairs,omitempty"`
}

// NewDocument concatenates the normalized title and body into the
// document-global text.
func NewDocument(did, title, body string) *Document {
	return &Document{
		DID:   did,
		Title: title,
		Body:  body,
		Text:  title + sentenceSeparator + body,
	}
}

// TitleOffset is the value to add to a body-relative offset to obtain
// a document-global offset.
func (d *Document) TitleOffset() int {
	return len(d.Title) + len(sentenceSeparator)
}

// Segment splits the document text into sentences starting at the
// given offsets. Starts must be ascending and include 0; each sentence
// runs up to the next start, the last one up to the end of the text.
// Existing sentences are replaced.
func (d *Document) Segment(starts []int) error {
	if len(starts) == 0 || starts[0] != 0 {
		return fmt.Errorf("document %s: sentence starts must begin at 0", d.DID)
	}
	d.Sentences = d.Sentences[:0]
	for i, start := range starts {
		end := len(d.Text)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		if end <= start {
			return fmt.Errorf("document %s: sentence start %d not ascending", d.DID, start)
		}
		d.Sentences = append(d.Sentences, &Sentence{
			SID:    fmt.Sprintf("%s.s%d", d.DID, i),
			Offset: start,
			Text:   d.Text[start:end],
		})
	}
	return nil
}

// SentenceContaining returns the sentence whose span fully contains
// [dstart, dend), or nil when the span straddles a sentence boundary
// or lies outside the text. Sentences are disjoint and ordered by
// offset, so a binary search on the start offset suffices.
func (d *Document) SentenceContaining(dstart, dend int) *Sentence {
	n := len(d.Sentences)
	i := sort.Search(n, func(i int) bool {
		return d.Sentences[i].Offset > dstart
	})
	if i == 0 {
		return nil
	}
	s := d.Sentences[i-1]
	if !s.Contains(dstart, dend) {
		return nil
	}
	return s
}

// TagEntity resolves the document-global span to its owning sentence
// and tags the entity there. It reports false when the span does not
// fall inside exactly one sentence; the caller decides whether to log
// and drop.
func (d *Document) TagEntity(dstart, dend int, etype, text, subtype, source string) (*Entity, bool) {
	s := d.SentenceContaining(dstart, dend)
	if s == nil {
		return nil, false
	}
	return s.TagEntity(dstart-s.Offset, dend-s.Offset, etype, text, subtype, source), true
}

// AddPair stores a relation candidate between two entities of this
// document.
func (d *Document) AddPair(e1, e2 *Entity) *Pair {
	p := NewPair(e1, e2)
	d.Pairs = append(d.Pairs, p)
	return p
}

// EntityByID searches the sentences of this document for the entity
// with the given id.
func (d *Document) EntityByID(id string) *Entity {
	for _, s := range d.Sentences {
		for _, list := range s.Entities {
			for _, e := range list {
				if e.ID == id {
					return e
				}
			}
		}
	}
	return nil
}

// Relink resolves the entity pointers of every pair from the
// serialized entity ids. Called after deserializing a snapshot so the
// pair graph points at the sentence-owned entities again.
func (d *Document) Relink() error {
	for _, p := range d.Pairs {
		e1, e2 := d.EntityByID(p.E1), d.EntityByID(p.E2)
		if e1 == nil || e2 == nil {
			return fmt.Errorf("document %s: pair references unknown entity %s=>%s", d.DID, p.E1, p.E2)
		}
		p.Entities = [2]*Entity{e1, e2}
	}
	return nil
}

// EntitiesOf collects this document's entities for one source in
// sentence order.
func (d *Document) EntitiesOf(source string) []*Entity {
	var out []*Entity
	for _, s := range d.Sentences {
		out = append(out, s.Entities[source]...)
	}
	return out
}

// Snippet returns the text around the span, for diagnostics on
// annotations that could not be resolved.
func (d *Document) Snippet(dstart, dend int) string {
	lo := dstart - 20
	if lo < 0 {
		lo = 0
	}
	hi := dend + 20
	if hi > len(d.Text) {
		hi = len(d.Text)
	}
	if lo > len(d.Text) {
		lo = len(d.Text)
	}
	if hi < lo {
		hi = lo
	}
	return strings.TrimSpace(d.Text[lo:hi])
}
