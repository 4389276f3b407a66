// Package render prints annotated sentences on the terminal,
// highlighting entity spans inside their sentence context.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/revelaction/goldspan/corpus"
)

var (
	Red    = "\033[1;31m"
	Green  = "\033[1;32m"
	Yellow = "\033[0;33m"
	Teal   = "\033[1;36m"
	Off    = "\033[0m"

	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
)

type Renderer struct {
	Out io.Writer

	HasColor bool

	// HasPrefix prefixes every sentence with "did.sid".
	HasPrefix bool
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{Out: out, HasColor: true, HasPrefix: true}
}

// Document renders every sentence of the document that carries
// entities of the given source. An empty source renders all sources.
func (r *Renderer) Document(d *corpus.Document, source string) {
	for _, s := range d.Sentences {
		ents := sentenceEntities(s, source)
		if len(ents) == 0 {
			continue
		}
		r.Sentence(s, ents)
	}
}

// Sentence prints one sentence with the given entities highlighted.
// Overlapping spans are printed once, first span wins.
func (r *Renderer) Sentence(s *corpus.Sentence, ents []*corpus.Entity) {
	if r.HasPrefix {
		prefix := s.SID
		if r.HasColor {
			prefix = Grey256 + prefix + Off
		}
		fmt.Fprintf(r.Out, "%s ", prefix)
	}
	fmt.Fprintln(r.Out, r.highlight(s.Text, ents))
}

func (r *Renderer) highlight(text string, ents []*corpus.Entity) string {
	sorted := make([]*corpus.Entity, len(ents))
	copy(sorted, ents)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Sstart != sorted[j].Sstart {
			return sorted[i].Sstart < sorted[j].Sstart
		}
		return sorted[i].Send < sorted[j].Send
	})

	var b strings.Builder
	pos := 0
	for _, e := range sorted {
		if e.Sstart < pos || e.Send > len(text) {
			continue
		}
		b.WriteString(text[pos:e.Sstart])
		span := text[e.Sstart:e.Send]
		if r.HasColor {
			b.WriteString(Yellow256 + span + Off)
		} else {
			b.WriteString("[" + span + "]")
		}
		pos = e.Send
	}
	b.WriteString(text[pos:])
	return b.String()
}

// Entities prints one line per entity: id, span, text, votes.
func (r *Renderer) Entities(ents []*corpus.Entity) {
	for _, e := range ents {
		votes := recognizedBy(e)
		if votes != "" {
			votes = " [" + votes + "]"
		}
		fmt.Fprintf(r.Out, "%s\t%d:%d\t%s%s\n", e.ID, e.Dstart, e.Dend, e.Text, votes)
	}
}

func recognizedBy(e *corpus.Entity) string {
	sources := make([]string, 0, len(e.RecognizedBy))
	for s := range e.RecognizedBy {
		sources = append(sources, s)
	}
	sort.Strings(sources)
	return strings.Join(sources, ",")
}

func sentenceEntities(s *corpus.Sentence, source string) []*corpus.Entity {
	if source != "" {
		return s.Entities[source]
	}
	var sources []string
	for name := range s.Entities {
		sources = append(sources, name)
	}
	sort.Strings(sources)
	var out []*corpus.Entity
	for _, name := range sources {
		out = append(out, s.Entities[name]...)
	}
	return out
}
