package corpus

import "fmt"

// Token is one word of a sentence with the metadata the external
// parsing service provides. Start/End are sentence-local byte offsets.
type Token struct {
	Index int    `json:"index"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
	Lemma string `json:"lemma,omitempty"`
	POS   string `json:"pos,omitempty"`
}

// Sentence is an offset-anchored segment of a document, holding per
// annotation source the entities found in it.
type Sentence struct {
	SID    string `json:"sid"`
	Offset int    `json:"offset"`
	Text   string `json:"text"`

	Tokens []Token `json:"tokens,omitempty"`

	// Entities maps source id to the ordered list of entities that
	// source tagged in this sentence.
	Entities map[string][]*Entity `json:"entities,omitempty"`
}

// Contains reports whether the document-global span [dstart, dend)
// falls entirely inside this sentence.
func (s *Sentence) Contains(dstart, dend int) bool {
	return s.Offset <= dstart && dend <= s.Offset+len(s.Text)
}

// TagEntity creates an entity at the sentence-local span
// [sstart, send) and appends it under the given source. The id is
// unique within the document because sentence ids are.
//
// Tagging is not idempotent: two identical calls produce two distinct
// entities. No overlap resolution happens here; overlapping entities
// from the same source are legal.
func (s *Sentence) TagEntity(sstart, send int, etype, text, subtype, source string) *Entity {
	e := &Entity{
		ID:      fmt.Sprintf("%s.e%d", s.SID, s.entityCount()),
		Source:  source,
		Type:    etype,
		Subtype: subtype,
		Dstart:  s.Offset + sstart,
		Dend:    s.Offset + send,
		Sstart:  sstart,
		Send:    send,
		Text:    text,
	}
	if s.Entities == nil {
		s.Entities = make(map[string][]*Entity)
	}
	s.Entities[source] = append(s.Entities[source], e)
	return e
}

// entityCount is the total number of entities over all sources, used
// as a monotone counter for entity ids. Entities are never removed, so
// ids never repeat.
func (s *Sentence) entityCount() int {
	n := 0
	for _, list := range s.Entities {
		n += len(list)
	}
	return n
}
