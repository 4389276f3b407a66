// Package results binds a scored corpus to an output path and drives
// the three evaluation modes: positional entity spans, unique entity
// texts, and relation pairs. Report files are UTF-8 text, written only
// when the whole comparison succeeded.
package results

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/cases"

	"github.com/revelaction/goldspan/corpus"
	"github.com/revelaction/goldspan/rules"
	"github.com/revelaction/goldspan/score"
)

// Results is the boundary object between pipeline stages: the corpus
// carrying one or more sources of annotations, and the path prefix its
// output files are written under.
type Results struct {
	Corpus *corpus.Corpus
	Path   string
}

func New(c *corpus.Corpus, path string) *Results {
	return &Results{Corpus: c, Path: path}
}

// Evaluate scores the accepted spans of one source against a
// positional gold set and writes "<path>_report.txt". With an empty
// gold set it runs in no-gold mode: the system spans are written out
// and the zero outcome returned, never an error. System tuples whose
// document id is unknown are logged and excluded.
func (r *Results) Evaluate(source string, gold []score.Tuple, accept corpus.Filter, compareText bool) (score.Outcome, error) {
	system := score.FromOffsets(r.Corpus.Offsets(source, accept))
	gold = r.knownDocs(gold)
	if !compareText {
		gold = clearTexts(gold)
		system = clearTexts(system)
	}

	if len(gold) == 0 {
		slog.Info("no gold standard, writing system output only", "source", source)
		return score.Outcome{}, r.writeSystemOnly(system)
	}

	out := score.Compare(system, gold, compareText)
	report := score.Report(out, r.Corpus.Has, compareText)
	if err := r.writeReport(out, report); err != nil {
		return score.Outcome{}, err
	}
	return out, nil
}

// EvaluateList scores the unique case-folded entity texts of one
// source against a text-only gold set. The unique entities are written
// to "<path>_final.tsv"; when a gold set exists the report follows.
func (r *Results) EvaluateList(source string, gold []string, accept corpus.Filter) (score.Outcome, error) {
	entities := r.Corpus.UniqueResults(source, accept)
	final := r.Path + "_final.tsv"
	if err := os.WriteFile(final, []byte(strings.Join(entities, "\n")+"\n"), 0o644); err != nil {
		return score.Outcome{}, fmt.Errorf("final results file: %w", err)
	}
	slog.Info("unique entities written", "path", final, "count", len(entities))

	if len(gold) == 0 {
		return score.Outcome{}, nil
	}

	fold := cases.Fold()
	system := make([]score.Tuple, 0, len(entities))
	for _, text := range entities {
		system = append(system, textTuple(text))
	}
	goldTuples := make([]score.Tuple, 0, len(gold))
	for _, text := range gold {
		goldTuples = append(goldTuples, textTuple(fold.String(text)))
	}

	out := score.Compare(system, goldTuples, false)
	report := score.Report(out, nil, false)
	if err := r.writeReport(out, report); err != nil {
		return score.Outcome{}, err
	}
	return out, nil
}

// textTuple encodes a unique entity text as a positionless tuple, the
// shape the scoring kernel expects.
func textTuple(text string) score.Tuple {
	return score.Tuple{Start: text, End: "1"}
}

// EvaluatePairs scores the relation pairs of one source against a gold
// pair set. Only pairs the source recognized and the validator accepts
// enter the system side. A nil validator means rules.SameDocument.
func (r *Results) EvaluatePairs(source string, gold []score.Tuple, validate rules.PairValidator, compareText bool) (score.Outcome, error) {
	if validate == nil {
		validate = rules.SameDocument
	}
	var system []score.Tuple
	for _, did := range r.Corpus.DocumentIDs() {
		d := r.Corpus.Documents[did]
		for _, p := range d.Pairs {
			if p.RecognizedBy[source] != 1 || !validate(d, p) {
				continue
			}
			e1, e2 := p.Entities[0], p.Entities[1]
			system = append(system, score.PairSpan(did,
				e1.Dstart, e1.Dend, e2.Dstart, e2.Dend,
				e1.Text+"=>"+e2.Text))
		}
	}
	gold = r.knownDocs(gold)
	if !compareText {
		gold = clearTexts(gold)
		system = clearTexts(system)
	}

	if len(gold) == 0 {
		slog.Info("no gold pairs, writing system output only", "source", source)
		return score.Outcome{}, r.writeSystemOnly(system)
	}

	out := score.Compare(system, gold, compareText)
	report := score.Report(out, r.Corpus.Has, compareText)
	if err := r.writeReport(out, report); err != nil {
		return score.Outcome{}, err
	}
	return out, nil
}

// knownDocs excludes tuples referencing documents the corpus does not
// hold, so they enter neither the TP/FP/FN computation nor the report.
// Tuples without a document id (text-only mode) pass through.
func (r *Results) knownDocs(tuples []score.Tuple) []score.Tuple {
	kept := make([]score.Tuple, 0, len(tuples))
	for _, t := range tuples {
		if t.DID != "" && !r.Corpus.Has(t.DID) {
			slog.Info("tuple references unknown document, excluded", "did", t.DID)
			continue
		}
		kept = append(kept, t)
	}
	return kept
}

// ReportPath is where Evaluate and EvaluatePairs write their report.
func (r *Results) ReportPath() string {
	return r.Path + "_report.txt"
}

func (r *Results) writeReport(out score.Outcome, report []string) error {
	var b strings.Builder
	b.WriteString(score.Summary(out))
	for _, line := range report {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(r.ReportPath(), []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("report file: %w", err)
	}
	slog.Info("report written", "path", r.ReportPath())
	return nil
}

func (r *Results) writeSystemOnly(system []score.Tuple) error {
	var b strings.Builder
	for _, t := range system {
		b.WriteString(t.DID + "\t" + t.Start + ":" + t.End)
		if t.Text != "" {
			b.WriteString("\t" + t.Text)
		}
		b.WriteByte('\n')
	}
	if err := os.WriteFile(r.ReportPath(), []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("report file: %w", err)
	}
	return nil
}

func clearTexts(tuples []score.Tuple) []score.Tuple {
	out := make([]score.Tuple, len(tuples))
	for i, t := range tuples {
		t.Text = ""
		out[i] = t
	}
	return out
}
