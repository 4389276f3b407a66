package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/revelaction/goldspan/corpus"
	"github.com/revelaction/goldspan/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// CorpusStore persists corpus snapshots in SQLite: one row per
// document, one JSON row per sentence (entities ride inside the
// sentence JSON, pairs on the document row).
type CorpusStore struct {
	pool *sqlitex.Pool
}

var _ storage.CorpusRepository = (*CorpusStore)(nil)

func NewCorpusStore(pool *sqlitex.Pool) *CorpusStore {
	return &CorpusStore{pool: pool}
}

func (h *CorpusStore) Save(name string, c *corpus.Corpus) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	// replace any previous snapshot with this name
	for _, table := range []string{"documents", "sentences"} {
		if err := sqlitex.Execute(conn, "DELETE FROM "+table+" WHERE corpus = ?", &sqlitex.ExecOptions{
			Args: []interface{}{name},
		}); err != nil {
			return err
		}
	}

	for _, did := range c.DocumentIDs() {
		d := c.Documents[did]
		pairs, err := json.Marshal(d.Pairs)
		if err != nil {
			return fmt.Errorf("marshal pairs of %s: %w", did, err)
		}
		err = sqlitex.Execute(conn,
			"INSERT INTO documents (corpus, did, title, body, text, pairs) VALUES (?, ?, ?, ?, ?, ?)",
			&sqlitex.ExecOptions{
				Args: []interface{}{name, did, d.Title, d.Body, d.Text, string(pairs)},
			})
		if err != nil {
			return err
		}
		for pos, s := range d.Sentences {
			data, err := json.Marshal(s)
			if err != nil {
				return fmt.Errorf("marshal sentence %s: %w", s.SID, err)
			}
			err = sqlitex.Execute(conn,
				"INSERT INTO sentences (corpus, did, pos, data) VALUES (?, ?, ?, ?)",
				&sqlitex.ExecOptions{
					Args: []interface{}{name, did, pos, string(data)},
				})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *CorpusStore) Load(name string) (*corpus.Corpus, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	c := corpus.New()
	err = sqlitex.Execute(conn,
		"SELECT did, title, body, text, pairs FROM documents WHERE corpus = ?",
		&sqlitex.ExecOptions{
			Args: []interface{}{name},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				d := &corpus.Document{
					DID:   stmt.ColumnText(0),
					Title: stmt.ColumnText(1),
					Body:  stmt.ColumnText(2),
					Text:  stmt.ColumnText(3),
				}
				if pairs := stmt.ColumnText(4); pairs != "" {
					if err := json.Unmarshal([]byte(pairs), &d.Pairs); err != nil {
						return fmt.Errorf("unmarshal pairs of %s: %w", d.DID, err)
					}
				}
				c.Add(d)
				return nil
			},
		})
	if err != nil {
		return nil, err
	}
	if len(c.Documents) == 0 {
		return nil, fmt.Errorf("snapshot not found: %s", name)
	}

	err = sqlitex.Execute(conn,
		"SELECT did, data FROM sentences WHERE corpus = ? ORDER BY did, pos",
		&sqlitex.ExecOptions{
			Args: []interface{}{name},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				did := stmt.ColumnText(0)
				d, ok := c.Get(did)
				if !ok {
					return fmt.Errorf("sentence row for unknown document %s", did)
				}
				var s corpus.Sentence
				if err := json.Unmarshal([]byte(stmt.ColumnText(1)), &s); err != nil {
					return fmt.Errorf("unmarshal sentence of %s: %w", did, err)
				}
				d.Sentences = append(d.Sentences, &s)
				return nil
			},
		})
	if err != nil {
		return nil, err
	}

	if err := c.Relink(); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", name, err)
	}
	return c, nil
}

func (h *CorpusStore) List() ([]string, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var names []string
	err = sqlitex.Execute(conn, "SELECT DISTINCT corpus FROM documents ORDER BY corpus", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			names = append(names, stmt.ColumnText(0))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}
