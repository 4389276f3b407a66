package stat

import (
	"sort"

	"github.com/revelaction/goldspan/corpus"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumDocuments int
	NumSentences int
	NumTokens    int
	NumPairs     int

	// Entities counts tagged entities per annotation source.
	Entities map[string]int

	// EntitiesPerSentenceDis is the distribution of entity counts per
	// sentence, over all sources.
	EntitiesPerSentenceDis map[int]int
}

// Sources returns the annotation source names seen so far, sorted.
func (s Stats) Sources() []string {
	names := make([]string, 0, len(s.Entities))
	for name := range s.Entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{
		Entities:               map[string]int{},
		EntitiesPerSentenceDis: map[int]int{},
	}
	return &Handler{
		stats: stats,
	}
}

func (h *Handler) Aggregate(doc *corpus.Document) {
	h.stats.NumDocuments++
	h.stats.NumSentences += len(doc.Sentences)
	h.stats.NumPairs += len(doc.Pairs)

	for _, sentence := range doc.Sentences {
		h.stats.NumTokens += len(sentence.Tokens)

		inSentence := 0
		for source, list := range sentence.Entities {
			h.stats.Entities[source] += len(list)
			inSentence += len(list)
		}
		h.stats.EntitiesPerSentenceDis[inSentence]++
	}
}
