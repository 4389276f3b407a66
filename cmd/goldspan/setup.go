package main

import (
	"log/slog"
	"path/filepath"

	"github.com/revelaction/goldspan/config"
	"github.com/revelaction/goldspan/storage"
	"github.com/revelaction/goldspan/storage/filesystem"
	"github.com/revelaction/goldspan/storage/sqlite/zombiezen"
)

func setupLogging(level string, ui UI) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "info":
		l = slog.LevelInfo
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(ui.Err, &slog.HandlerOptions{Level: l})))
}

// newCorpusRepository picks the snapshot backend from the registered
// path: a .db file means SQLite, anything else a snapshot directory.
// The returned func releases the backend.
func newCorpusRepository(entry config.Entry) (storage.CorpusRepository, func() error, error) {
	if filepath.Ext(entry.Snapshot) == ".db" {
		pool, err := zombiezen.NewPool(entry.Snapshot)
		if err != nil {
			return nil, nil, err
		}
		if err := zombiezen.CreateCorpusTables(pool); err != nil {
			_ = pool.Close()
			return nil, nil, err
		}
		return zombiezen.NewCorpusStore(pool), pool.Close, nil
	}

	store, err := filesystem.NewCorpusStore(entry.Snapshot)
	if err != nil {
		return nil, nil, err
	}
	return store, func() error { return nil }, nil
}

// registryEntry loads the registry and resolves the corpus name.
func registryEntry(main MainOptions, name string) (config.Entry, error) {
	reg, err := config.Load(main.Registry)
	if err != nil {
		return config.Entry{}, err
	}
	return reg.Get(name)
}
