// Package storage defines the snapshot repositories that carry a
// corpus between pipeline stages. Loading, tagging, merging and
// scoring are separate invocations; the only contract is round-trip
// fidelity of the whole Entity/Sentence/Document graph, including
// recognition maps and enrichment fields.
package storage

import "github.com/revelaction/goldspan/corpus"

// CorpusReader defines read operations for corpus snapshots.
type CorpusReader interface {
	// Load returns the snapshot with the given name, with the pair
	// graph relinked.
	Load(name string) (*corpus.Corpus, error)

	// List returns the stored snapshot names, sorted.
	List() ([]string, error)
}

// CorpusWriter defines write operations for corpus snapshots.
type CorpusWriter interface {
	// Save persists the corpus under the given name, replacing any
	// previous snapshot with that name.
	Save(name string, c *corpus.Corpus) error
}

// CorpusRepository combines read and write operations.
type CorpusRepository interface {
	CorpusReader
	CorpusWriter
}
