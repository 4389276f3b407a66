package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// Option structs for subcommands that have flags
type MainOptions struct {
	LogLevel string
	Registry string
}

type ImportOptions struct {
	Source     string
	EntityType string
}

type CombineOptions struct {
	Sources []string
	To      string
}

type EvaluateOptions struct {
	Results  string
	Source   string
	Chebi    float64
	SSM      float64
	Rules    []string
	Pairs    bool
	NoText   bool
	External string
}

type StatOptions struct {
	Doc string
}

type DocOptions struct {
	Source  string
	NoColor bool
}

// stringSliceFlag implements flag.Value for multi-value strings
type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ", ")
}

func (s *stringSliceFlag) Set(value string) error {
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			*s = append(*s, v)
		}
	}
	return nil
}

func parseMainArgs(args []string, ui UI) (MainOptions, string, []string, error) {
	fs := flag.NewFlagSet("goldspan", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	setupUsage(fs)

	var opts MainOptions
	fs.StringVar(&opts.LogLevel, "log", "warn", "Log level: debug, info, warn, error")
	fs.StringVar(&opts.Registry, "registry", envOr("GOLDSPAN_REGISTRY", "corpora.json"), "Path to the corpus registry file")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return opts, "", nil, err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, "", nil, err
	}

	if fs.NArg() == 0 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return opts, "", nil, errors.New("no command provided")
	}

	cmd := fs.Arg(0)
	cmdArgs := fs.Args()[1:]
	return opts, cmd, cmdArgs, nil
}

func parseImportArgs(args []string, ui UI) (ImportOptions, string, error) {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts ImportOptions
	fs.StringVar(&opts.Source, "source", "goldstd", "Source id the annotations are attached under")
	fs.StringVar(&opts.EntityType, "entitytype", "all", "Type of entities to be considered")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s import [options] <corpus>\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Load a registered corpus and its annotations, save a snapshot.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := parseOne(fs, args, ui); err != nil {
		return opts, "", err
	}
	return opts, fs.Arg(0), nil
}

func parseCombineArgs(args []string, ui UI) (CombineOptions, string, error) {
	fs := flag.NewFlagSet("combine", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts CombineOptions
	var sources stringSliceFlag
	fs.Var(&sources, "sources", "Comma-separated source ids to fold together")
	fs.StringVar(&opts.To, "to", "combined", "Source id of the combined annotations")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s combine -sources s1,s2 [options] <corpus>\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Merge the annotations of several sources into one combined source.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := parseOne(fs, args, ui); err != nil {
		return opts, "", err
	}
	opts.Sources = sources
	if len(opts.Sources) == 0 {
		return opts, "", errors.New("combine needs at least one source (-sources)")
	}
	return opts, fs.Arg(0), nil
}

func parseEvaluateArgs(args []string, ui UI) (EvaluateOptions, string, error) {
	fs := flag.NewFlagSet("evaluate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts EvaluateOptions
	var ruleNames stringSliceFlag
	fs.StringVar(&opts.Results, "results", "results", "Output path prefix for report files")
	fs.StringVar(&opts.Source, "source", "combined", "Source id whose annotations are scored")
	fs.Float64Var(&opts.Chebi, "chebi", 0, "ChEBI mapping score threshold")
	fs.Float64Var(&opts.SSM, "ssm", 0, "Semantic similarity score threshold")
	fs.Var(&ruleNames, "rules", "Comma-separated post-processing rules")
	fs.BoolVar(&opts.Pairs, "pairs", false, "Score relation pairs instead of entity spans")
	fs.BoolVar(&opts.NoText, "no-text", false, "Compare offsets only, ignore the annotation text")
	fs.StringVar(&opts.External, "external", "", "Also run this external evaluation binary")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s evaluate [options] <corpus>\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Score a source's annotations against the corpus gold standard.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := parseOne(fs, args, ui); err != nil {
		return opts, "", err
	}
	opts.Rules = ruleNames
	return opts, fs.Arg(0), nil
}

func parseStatArgs(args []string, ui UI) (StatOptions, string, error) {
	fs := flag.NewFlagSet("stat", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts StatOptions
	fs.StringVar(&opts.Doc, "doc", "", "Restrict the statistics to one document id")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s stat [options] <corpus>\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Show annotation statistics of a corpus snapshot.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := parseOne(fs, args, ui); err != nil {
		return opts, "", err
	}
	return opts, fs.Arg(0), nil
}

func parseDocArgs(args []string, ui UI) (DocOptions, string, string, error) {
	fs := flag.NewFlagSet("doc", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts DocOptions
	fs.StringVar(&opts.Source, "source", "", "Only render entities of this source")
	fs.BoolVar(&opts.NoColor, "no-color", false, "Mark spans with brackets instead of colors")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s doc [options] <corpus> <docid>\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Render a document's annotated sentences.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return opts, "", "", err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, "", "", err
	}

	if fs.NArg() != 2 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return opts, "", "", errors.New("doc command needs exactly two arguments: <corpus> <docid>")
	}
	return opts, fs.Arg(0), fs.Arg(1), nil
}

func parseQueryArgs(args []string, ui UI) (string, error) {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s query <corpus>\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Enter interactive corpus inspection mode.\n")
	}

	if err := parseOne(fs, args, ui); err != nil {
		return "", err
	}
	return fs.Arg(0), nil
}

// parseOne parses the flag set and requires exactly one positional
// argument, the registered corpus name.
func parseOne(fs *flag.FlagSet, args []string, ui UI) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return err
	}

	if fs.NArg() != 1 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return fmt.Errorf("%s command needs exactly one argument: <corpus>", fs.Name())
	}
	return nil
}

func setupUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: %s [options] command [command options] [arguments...]\n", os.Args[0])
		_, _ = fmt.Fprintf(output, "\nDescription:\n")
		_, _ = fmt.Fprintf(output, "  Annotated-corpus scoring for biomedical text mining\n")
		_, _ = fmt.Fprintf(output, "\nCommands:\n")
		_, _ = fmt.Fprintf(output, "  import         Load a corpus and its annotations, save a snapshot.\n")
		_, _ = fmt.Fprintf(output, "  combine        Merge several sources into one combined source.\n")
		_, _ = fmt.Fprintf(output, "  evaluate       Score spans or pairs against the gold standard.\n")
		_, _ = fmt.Fprintf(output, "  evaluate-list  Score unique entity texts against a text-only gold set.\n")
		_, _ = fmt.Fprintf(output, "  stat           Show annotation statistics of a snapshot.\n")
		_, _ = fmt.Fprintf(output, "  doc            Render a document's annotated sentences.\n")
		_, _ = fmt.Fprintf(output, "  query          Enter interactive inspection mode.\n")
		_, _ = fmt.Fprintf(output, "  version        Show version information.\n")
		_, _ = fmt.Fprintf(output, "\nOptions:\n")
		fs.PrintDefaults()
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
