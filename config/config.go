// Package config holds the corpus registry: which text, annotation and
// snapshot paths belong to each named corpus.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultPath is where the commands look for the registry unless told
// otherwise.
const DefaultPath = "corpora.json"

// Entry describes one registered corpus.
type Entry struct {
	// Format of the corpus files. Only "chemdner" is built in.
	Format string `json:"format"`

	// Text is the abstracts file.
	Text string `json:"text"`

	// Annotations is the gold annotation file. Empty means the corpus
	// has no gold standard; evaluation then runs in no-gold mode.
	Annotations string `json:"annotations,omitempty"`

	// Snapshot is where the loaded corpus is persisted between
	// pipeline stages: a directory for JSON snapshots or a .db file
	// for SQLite.
	Snapshot string `json:"snapshot"`
}

// Registry maps corpus name to entry.
type Registry map[string]Entry

// Load reads the registry file.
func Load(path string) (Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry: %w", err)
	}
	var r Registry
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("registry %s: %w", path, err)
	}
	return r, nil
}

// Get returns the entry for a corpus name.
func (r Registry) Get(name string) (Entry, error) {
	e, ok := r[name]
	if !ok {
		return Entry{}, fmt.Errorf("corpus not registered: %s", name)
	}
	return e, nil
}
