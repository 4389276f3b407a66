package main

import (
	"fmt"
	"sort"

	"github.com/revelaction/goldspan/stat"
)

func statCommand(opts StatOptions, name string, main MainOptions, ui UI) error {
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

	hdl := stat.NewHandler()
	if opts.Doc != "" {
		d, ok := c.Get(opts.Doc)
		if !ok {
			return fmt.Errorf("document not found: %s", opts.Doc)
		}
		hdl.Aggregate(d)
	} else {
		for _, did := range c.DocumentIDs() {
			hdl.Aggregate(c.Documents[did])
		}
	}

	stats := hdl.Get()
	fmt.Fprintf(ui.Out, "Documents %d, sentences %d, tokens %d, pairs %d\n",
		stats.NumDocuments, stats.NumSentences, stats.NumTokens, stats.NumPairs)
	for _, source := range stats.Sources() {
		fmt.Fprintf(ui.Out, "  %s: %d entities\n", source, stats.Entities[source])
	}

	counts := make([]int, 0, len(stats.EntitiesPerSentenceDis))
	for n := range stats.EntitiesPerSentenceDis {
		counts = append(counts, n)
	}
	sort.Ints(counts)
	for _, n := range counts {
		fmt.Fprintf(ui.Out, "  %d entities/sentence: %d sentences\n", n, stats.EntitiesPerSentenceDis[n])
	}
	return nil
}
