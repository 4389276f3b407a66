package main

import (
	"fmt"

	"github.com/revelaction/goldspan/render"
)

func docCommand(opts DocOptions, name, did string, main MainOptions, ui UI) error {
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

	d, ok := c.Get(did)
	if !ok {
		return fmt.Errorf("document not found: %s", did)
	}

	r := render.NewRenderer(ui.Out)
	r.HasColor = !opts.NoColor
	r.Document(d, opts.Source)
	return nil
}
