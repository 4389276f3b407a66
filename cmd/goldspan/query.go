package main

import (
	"github.com/revelaction/goldspan/query"
	"github.com/revelaction/goldspan/render"
)

func queryCommand(name string, main MainOptions, ui UI) error {
	entry, err := registryEntry(main, name)
	if err != nil {
		return err
	}

	repo, release, err := newCorpusRepository(entry)
	if err != nil {
		return err
	}
	defer release()

	c, err := repo.Load(name)
	if err != nil {
		return err
	}

	h := query.NewHandler(c, render.NewRenderer(ui.Out))
	return h.Run()
}
