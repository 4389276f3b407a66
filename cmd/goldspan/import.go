package main

import (
	"fmt"

	"github.com/gosuri/uiprogress"

	"github.com/revelaction/goldspan/reader"
)

func importCommand(opts ImportOptions, name string, main MainOptions, ui UI) error {
	entry, err := registryEntry(main, name)
	if err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "Loading corpus %s from %s...\n", name, entry.Text)

	uiprogress.Start()
	var bar *uiprogress.Bar
	c, err := reader.LoadCorpus(entry.Text, nil, func(done, total int) {
		if bar == nil {
			bar = uiprogress.AddBar(total)
			bar.AppendCompleted()
			bar.PrependElapsed()
		}
		bar.Set(done)
	})
	uiprogress.Stop()
	if err != nil {
		return err
	}

	if entry.Annotations != "" {
		fmt.Fprintf(ui.Out, "Loading annotations from %s...\n", entry.Annotations)
		if err := reader.LoadAnnotations(c, entry.Annotations, opts.EntityType, opts.Source); err != nil {
			return err
		}
	}

	repo, release, err := newCorpusRepository(entry)
	if err != nil {
		return err
	}
	defer release()

	if err := repo.Save(name, c); err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "Saved snapshot %s (%d documents)\n", name, len(c.Documents))
	return nil
}
