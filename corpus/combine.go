package corpus

import "log/slog"

// Combine folds the annotations of the given sources, in order, into
// one combined source on the same sentences. Two sources agree on an
// entity only when their spans are byte-for-byte equal; no fuzzy
// overlap. Each agreeing source contributes one vote to the combined
// entity's RecognizedBy map, so an ensemble can later train on which
// exact spans how many models produced.
//
// Sources are applied sequentially; combining a source with itself
// leaves a single vote per span.
func (c *Corpus) Combine(sources []string, combined string) {
	for _, did := range c.DocumentIDs() {
		d := c.Documents[did]
		for _, s := range d.Sentences {
			combineSentence(s, sources, combined)
		}
	}
	slog.Info("combined sources", "sources", sources, "combined", combined)
}

func combineSentence(s *Sentence, sources []string, combined string) {
	for _, source := range sources {
		for _, e := range s.Entities[source] {
			if prev := findSpan(s.Entities[combined], e.Dstart, e.Dend); prev != nil {
				prev.Recognize(source, 1)
				continue
			}
			merged := s.TagEntity(e.Sstart, e.Send, e.Type, e.Text, e.Subtype, combined)
			merged.Recognize(source, 1)
		}
	}
}

// findSpan returns the entity with exactly the given document-global
// span, or nil.
func findSpan(list []*Entity, dstart, dend int) *Entity {
	for _, e := range list {
		if e.Dstart == dstart && e.Dend == dend {
			return e
		}
	}
	return nil
}
