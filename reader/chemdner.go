// Package reader loads CHEMDNER-format corpora: abstracts as
// pmid/title/abstract TSV lines, annotations and gold standards as
// section-local offset tuples. It owns the format's offset contract:
// the title normalization and the title offset added to every
// abstract-relative annotation. Other corpus formats carry their own
// resolution rule; nothing here generalizes beyond CHEMDNER.
package reader

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/revelaction/goldspan/corpus"
	"github.com/revelaction/goldspan/score"
)

// sections of a CHEMDNER annotation line.
const (
	sectionTitle    = "T"
	sectionAbstract = "A"
)

// Segmenter returns the sentence start offsets for a document text.
// The remote parsing service implements this; SplitSentences is the
// rule-based fallback.
type Segmenter func(text string) []int

// LoadCorpus reads a CHEMDNER abstracts file, one document per line as
// "pmid\ttitle\tabstract". Titles and bodies are normalized (angle
// brackets to parentheses, internal sentence breaks collapsed out of
// the title) so the title reads as exactly one sentence of the
// document text. progress, when non-nil, is called once per document.
func LoadCorpus(path string, seg Segmenter, progress func(done, total int)) (*corpus.Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("corpus file: %w", err)
	}
	if seg == nil {
		seg = SplitSentences
	}

	lines := nonEmptyLines(string(data))
	c := corpus.New()
	for i, line := range lines {
		d, err := parseDocument(line, seg)
		if err != nil {
			return nil, fmt.Errorf("corpus line %d: %w", i+1, err)
		}
		c.Add(d)
		if progress != nil {
			progress(i+1, len(lines))
		}
	}
	slog.Info("corpus loaded", "path", path, "documents", len(c.Documents))
	return c, nil
}

func parseDocument(line string, seg Segmenter) (*corpus.Document, error) {
	fields := strings.SplitN(line, "\t", 3)
	if len(fields) != 3 {
		return nil, fmt.Errorf("expected pmid\\ttitle\\tabstract")
	}
	d := corpus.NewDocument(fields[0], NormalizeTitle(fields[1]), normalize(fields[2]))
	if err := d.Segment(seg(d.Text)); err != nil {
		return nil, err
	}
	for _, s := range d.Sentences {
		s.Tokens = Tokenize(s.Text)
	}
	return d, nil
}

// normalize replaces the structurally unsafe angle brackets with
// parentheses.
func normalize(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "<", "(")
	return strings.ReplaceAll(text, ">", ")")
}

// NormalizeTitle additionally collapses sentence-final "period+space"
// inside the title and appends the final period, so the title is
// exactly one sentence. Every replacement preserves length: offsets
// recorded against the raw title stay valid.
func NormalizeTitle(title string) string {
	title = normalize(title)
	title = strings.ReplaceAll(title, ". ", ", ")
	if !strings.HasSuffix(title, ".") {
		title += "."
	}
	return title
}

// LoadAnnotations attaches a CHEMDNER annotation file to the corpus
// under the given source. Lines are
// "pmid\tT|A\tstart\tend\ttext\tsubtype" with section-local offsets.
// etype "all" or "chemical" keeps every line, any other value keeps
// only matching subtypes. Annotations whose span does not land inside
// one sentence are logged and dropped; unknown document ids are logged
// and skipped.
func LoadAnnotations(c *corpus.Corpus, path, etype, source string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("annotations file: %w", err)
	}
	dropped := 0
	for i, line := range nonEmptyLines(string(data)) {
		fields := strings.Split(line, "\t")
		if len(fields) != 6 {
			return fmt.Errorf("annotations line %d: expected 6 fields, got %d", i+1, len(fields))
		}
		pmid, section, text, subtype := fields[0], fields[1], fields[4], fields[5]
		start, end, err := parseSpan(fields[2], fields[3])
		if err != nil {
			return fmt.Errorf("annotations line %d: %w", i+1, err)
		}

		d, ok := c.Get(pmid)
		if !ok {
			slog.Info("annotation references unknown document", "did", pmid)
			continue
		}
		if etype != "all" && etype != "chemical" && etype != subtype {
			continue
		}

		dstart, dend := ResolveOffset(d, section, start, end)
		if _, ok := d.TagEntity(dstart, dend, "chemical", text, subtype, source); !ok {
			dropped++
			slog.Warn("annotation straddles sentence boundary, dropped",
				"did", pmid, "dstart", dstart, "dend", dend,
				"text", text, "context", d.Snippet(dstart, dend))
		}
	}
	if dropped > 0 {
		slog.Info("annotations dropped", "path", path, "count", dropped)
	}
	return nil
}

// ResolveOffset translates a section-local span to document-global
// coordinates: abstract-relative offsets are shifted by the title
// offset, title-relative offsets are already global. This single
// function serves both annotation loading and gold-standard loading,
// so the two sides can never disagree on the translation.
func ResolveOffset(d *corpus.Document, section string, start, end int) (int, int) {
	if section == sectionAbstract {
		return start + d.TitleOffset(), end + d.TitleOffset()
	}
	return start, end
}

// GoldSet loads the CHEMDNER gold annotations as document-global score
// tuples. The corpus provides the documents the offsets resolve
// against; gold lines for unknown documents are logged and skipped.
func GoldSet(c *corpus.Corpus, path string) ([]score.Tuple, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gold file: %w", err)
	}
	var gold []score.Tuple
	for i, line := range nonEmptyLines(string(data)) {
		fields := strings.Split(line, "\t")
		if len(fields) < 5 {
			return nil, fmt.Errorf("gold line %d: expected at least 5 fields, got %d", i+1, len(fields))
		}
		pmid, section, text := fields[0], fields[1], fields[4]
		start, end, err := parseSpan(fields[2], fields[3])
		if err != nil {
			return nil, fmt.Errorf("gold line %d: %w", i+1, err)
		}
		d, ok := c.Get(pmid)
		if !ok {
			slog.Info("gold annotation references unknown document", "did", pmid)
			continue
		}
		dstart, dend := ResolveOffset(d, section, start, end)
		gold = append(gold, score.Span(pmid, dstart, dend, text))
	}
	return gold, nil
}

// UniqueGoldSet loads a text-only gold standard: one unique entity
// name per line.
func UniqueGoldSet(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gold file: %w", err)
	}
	return nonEmptyLines(string(data)), nil
}

func parseSpan(startField, endField string) (int, int, error) {
	start, err := strconv.Atoi(startField)
	if err != nil {
		return 0, 0, fmt.Errorf("bad start offset %q", startField)
	}
	end, err := strconv.Atoi(endField)
	if err != nil {
		return 0, 0, fmt.Errorf("bad end offset %q", endField)
	}
	if start >= end {
		return 0, 0, fmt.Errorf("empty span %d:%d", start, end)
	}
	return start, end, nil
}

func nonEmptyLines(data string) []string {
	scanner := bufio.NewScanner(strings.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var lines []string
	for scanner.Scan() {
		if line := strings.TrimRight(scanner.Text(), "\r\n"); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
