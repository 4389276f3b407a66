package main

import (
	"fmt"

	"github.com/revelaction/goldspan/corpus"
	"github.com/revelaction/goldspan/reader"
	"github.com/revelaction/goldspan/results"
	"github.com/revelaction/goldspan/rules"
	"github.com/revelaction/goldspan/score"
)

func evaluateCommand(opts EvaluateOptions, name string, main MainOptions, ui UI) error {
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

	accept, err := entityFilter(opts)
	if err != nil {
		return err
	}
	r := results.New(c, opts.Results)

	var out score.Outcome
	if opts.Pairs {
		// no built-in CHEMDNER pair gold; runs in no-gold mode unless
		// a pair gold loader is wired in
		out, err = r.EvaluatePairs(opts.Source, nil, nil, !opts.NoText)
	} else {
		var gold []score.Tuple
		if entry.Annotations != "" {
			gold, err = reader.GoldSet(c, entry.Annotations)
			if err != nil {
				return err
			}
		}
		out, err = r.Evaluate(opts.Source, gold, accept, !opts.NoText)
	}
	if err != nil {
		return err
	}

	printMetrics(out, ui)

	if opts.External != "" {
		resultsPath := opts.Results + ".tsv"
		if err := reader.WriteResults(c, opts.Source, resultsPath, accept); err != nil {
			return err
		}
		output, err := reader.RunExternal(opts.External, resultsPath, entry.Annotations)
		if err != nil {
			return err
		}
		fmt.Fprint(ui.Out, output)
	}
	return nil
}

func evaluateListCommand(opts EvaluateOptions, name string, main MainOptions, ui UI) error {
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

	var gold []string
	if entry.Annotations != "" {
		gold, err = reader.UniqueGoldSet(entry.Annotations)
		if err != nil {
			return err
		}
	}

	accept, err := entityFilter(opts)
	if err != nil {
		return err
	}

	out, err := results.New(c, opts.Results).EvaluateList(opts.Source, gold, accept)
	if err != nil {
		return err
	}

	printMetrics(out, ui)
	return nil
}

// entityFilter builds the threshold+rule gate applied to system
// entities before scoring.
func entityFilter(opts EvaluateOptions) (corpus.Filter, error) {
	set, err := rules.Lookup(opts.Rules)
	if err != nil {
		return nil, err
	}
	ths := rules.Thresholds{"chebi": opts.Chebi, "ssm": opts.SSM}
	return rules.Combined(ths, set), nil
}

func printMetrics(out score.Outcome, ui UI) {
	fmt.Fprintf(ui.Out, "precision: %.4f\n", out.Precision())
	fmt.Fprintf(ui.Out, "recall: %.4f\n", out.Recall())
	fmt.Fprintf(ui.Out, "f-measure: %.4f\n", out.F1())
}
