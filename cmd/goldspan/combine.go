package main

import "fmt"

func combineCommand(opts CombineOptions, name string, main MainOptions, ui UI) error {
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

	c.Combine(opts.Sources, opts.To)

	combined := name + "_combined"
	if err := repo.Save(combined, c); err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "Saved snapshot %s with combined source %q\n", combined, opts.To)
	return nil
}
