package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/revelaction/goldspan/corpus"
	"github.com/revelaction/goldspan/storage"
)

const snapshotExt = ".json"

// CorpusStore keeps one JSON file per snapshot under a directory.
type CorpusStore struct {
	dir string
}

var _ storage.CorpusRepository = (*CorpusStore)(nil)

// NewCorpusStore creates a filesystem snapshot store, creating the
// directory if needed.
func NewCorpusStore(dir string) (*CorpusStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot dir: %w", err)
	}
	return &CorpusStore{dir: dir}, nil
}

func (h *CorpusStore) path(name string) string {
	return filepath.Join(h.dir, name+snapshotExt)
}

func (h *CorpusStore) Save(name string, c *corpus.Corpus) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", name, err)
	}
	if err := os.WriteFile(h.path(name), data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", name, err)
	}
	return nil
}

func (h *CorpusStore) Load(name string) (*corpus.Corpus, error) {
	data, err := os.ReadFile(h.path(name))
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", name, err)
	}
	var c corpus.Corpus
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot %s: %w", name, err)
	}
	if err := c.Relink(); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", name, err)
	}
	return &c, nil
}

func (h *CorpusStore) List() ([]string, error) {
	files, err := os.ReadDir(h.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, f := range files {
		if filepath.Ext(f.Name()) == snapshotExt {
			names = append(names, strings.TrimSuffix(f.Name(), snapshotExt))
		}
	}
	sort.Strings(names)
	return names, nil
}
