package results

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/revelaction/goldspan/corpus"
	"github.com/revelaction/goldspan/score"
)

// newTestCorpus builds one document "d1" with text "A, B. C D" and a
// system entity over "C" at 6:7.
func newTestCorpus(t *testing.T) *corpus.Corpus {
	t.Helper()
	d := corpus.NewDocument("d1", "A, B.", "C D")
	if err := d.Segment([]int{0, 6}); err != nil {
		t.Fatalf("segment: %v", err)
	}
	e, ok := d.TagEntity(6, 7, "chemical", "C", "TRIVIAL", "system")
	if !ok {
		t.Fatal("tag entity failed")
	}
	e.Recognize("system", 1)

	c := corpus.New()
	c.Add(d)
	return c
}

func newResults(t *testing.T, c *corpus.Corpus) *Results {
	t.Helper()
	return New(c, filepath.Join(t.TempDir(), "run"))
}

func readReport(t *testing.T, r *Results) string {
	t.Helper()
	data, err := os.ReadFile(r.ReportPath())
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	return string(data)
}

func TestEvaluatePerfectMatch(t *testing.T) {
	r := newResults(t, newTestCorpus(t))
	gold := []score.Tuple{score.Span("d1", 6, 7, "C")}

	out, err := r.Evaluate("system", gold, nil, true)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out.TP) != 1 || len(out.FP) != 0 || len(out.FN) != 0 {
		t.Fatalf("expected 1/0/0, got %d/%d/%d", len(out.TP), len(out.FP), len(out.FN))
	}

	report := readReport(t, r)
	if !strings.HasPrefix(report, "TPs: 1\nFPs: 0\nFNs: 0\nPrecision: 1\nRecall: 1\n") {
		t.Fatalf("unexpected report header:\n%s", report)
	}
	if !strings.Contains(report, "TP:d1\t6:7\tC") {
		t.Fatalf("expected per-document TP line, got:\n%s", report)
	}
}

func TestEvaluateMismatch(t *testing.T) {
	r := newResults(t, newTestCorpus(t))
	gold := []score.Tuple{score.Span("d1", 8, 9, "D")}

	out, err := r.Evaluate("system", gold, nil, true)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out.TP) != 0 || len(out.FP) != 1 || len(out.FN) != 1 {
		t.Fatalf("expected 0/1/1, got %d/%d/%d", len(out.TP), len(out.FP), len(out.FN))
	}
}

func TestEvaluateTextDisabled(t *testing.T) {
	r := newResults(t, newTestCorpus(t))
	// same offsets, different text: matches only when text is ignored
	gold := []score.Tuple{score.Span("d1", 6, 7, "other")}

	out, err := r.Evaluate("system", gold, nil, false)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out.TP) != 1 {
		t.Fatalf("expected offset-only match, got %d TPs", len(out.TP))
	}
}

func TestEvaluateNoGold(t *testing.T) {
	r := newResults(t, newTestCorpus(t))

	out, err := r.Evaluate("system", nil, nil, true)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out.TP) != 0 || len(out.FP) != 0 || len(out.FN) != 0 {
		t.Fatal("no-gold mode must return the zero outcome")
	}

	report := readReport(t, r)
	if report != "d1\t6:7\tC\n" {
		t.Fatalf("expected system output only, got %q", report)
	}
}

func TestEvaluateUnknownGoldDocumentExcluded(t *testing.T) {
	r := newResults(t, newTestCorpus(t))
	gold := []score.Tuple{
		score.Span("d1", 6, 7, "C"),
		score.Span("unknown", 0, 1, "X"),
	}

	out, err := r.Evaluate("system", gold, nil, true)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out.FN) != 0 {
		t.Fatalf("unknown-document gold must not count as FN, got %d", len(out.FN))
	}
	if strings.Contains(readReport(t, r), "unknown") {
		t.Fatal("unknown document leaked into the report")
	}
}

func TestEvaluateFilter(t *testing.T) {
	r := newResults(t, newTestCorpus(t))
	gold := []score.Tuple{score.Span("d1", 6, 7, "C")}
	reject := func(*corpus.Entity) bool { return false }

	out, err := r.Evaluate("system", gold, reject, true)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out.TP) != 0 || len(out.FN) != 1 {
		t.Fatalf("filtered system side must leave gold unmatched, got %d/%d/%d",
			len(out.TP), len(out.FP), len(out.FN))
	}
}

func TestEvaluateList(t *testing.T) {
	r := newResults(t, newTestCorpus(t))

	out, err := r.EvaluateList("system", []string{"c", "Missing"}, nil)
	if err != nil {
		t.Fatalf("evaluate list: %v", err)
	}

	final, err := os.ReadFile(r.Path + "_final.tsv")
	if err != nil {
		t.Fatalf("read final results: %v", err)
	}
	if string(final) != "c\n" {
		t.Fatalf("expected folded unique entity list, got %q", final)
	}
	// "c" matches case-insensitively, "Missing" does not
	if len(out.TP) != 1 || len(out.FP) != 0 || len(out.FN) != 1 {
		t.Fatalf("expected 1/0/1, got %d/%d/%d", len(out.TP), len(out.FP), len(out.FN))
	}
}

func TestEvaluateListNoGold(t *testing.T) {
	r := newResults(t, newTestCorpus(t))

	out, err := r.EvaluateList("system", nil, nil)
	if err != nil {
		t.Fatalf("evaluate list: %v", err)
	}
	if len(out.TP) != 0 || len(out.FP) != 0 || len(out.FN) != 0 {
		t.Fatal("no-gold mode must return the zero outcome")
	}
	if _, err := os.Stat(r.Path + "_final.tsv"); err != nil {
		t.Fatalf("final results file must be written regardless: %v", err)
	}
}

func TestEvaluatePairs(t *testing.T) {
	c := newTestCorpus(t)
	d, _ := c.Get("d1")
	e2, ok := d.TagEntity(8, 9, "chemical", "D", "TRIVIAL", "system")
	if !ok {
		t.Fatal("tag entity failed")
	}
	ents := d.EntitiesOf("system")
	var e1 *corpus.Entity
	for _, e := range ents {
		if e.Text == "C" {
			e1 = e
		}
	}
	p := d.AddPair(e1, e2)
	p.Recognize("system", 1)

	r := newResults(t, c)
	gold := []score.Tuple{score.PairSpan("d1", 6, 7, 8, 9, "C=>D")}

	out, err := r.EvaluatePairs("system", gold, nil, true)
	if err != nil {
		t.Fatalf("evaluate pairs: %v", err)
	}
	if len(out.TP) != 1 || len(out.FP) != 0 || len(out.FN) != 0 {
		t.Fatalf("expected 1/0/0, got %d/%d/%d", len(out.TP), len(out.FP), len(out.FN))
	}
	if out.TP[0].Text != "C=>D" {
		t.Fatalf("unexpected pair text %q", out.TP[0].Text)
	}
}

func TestEvaluatePairsNoGold(t *testing.T) {
	r := newResults(t, newTestCorpus(t))

	out, err := r.EvaluatePairs("system", nil, nil, true)
	if err != nil {
		t.Fatalf("evaluate pairs: %v", err)
	}
	if len(out.TP) != 0 || len(out.FP) != 0 || len(out.FN) != 0 {
		t.Fatal("no-gold mode must return the zero outcome")
	}
}
