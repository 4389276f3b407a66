package reader

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/revelaction/goldspan/corpus"
)

// WriteResults writes the accepted entities of one source as a
// CHEMDNER-style result file: one span per line,
// "pmid\tT|A\tstart\tend\tscore\ttext\ttype", with offsets translated
// back to section-local coordinates so the official scorer can consume
// them.
func WriteResults(c *corpus.Corpus, source, path string, accept corpus.Filter) error {
	var b strings.Builder
	b.WriteString("DOCUMENT_ID\tSECTION\tINIT\tEND\tSCORE\tANNOTATED_TEXT\tTYPE\n")
	for _, did := range c.DocumentIDs() {
		d := c.Documents[did]
		for _, e := range d.EntitiesOf(source) {
			if accept != nil && !accept(e) {
				continue
			}
			section, start, end := sectionOffset(d, e)
			fmt.Fprintf(&b, "%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
				did, section, start, end, 1, e.Text, e.Type)
		}
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("results file: %w", err)
	}
	return nil
}

// sectionOffset is the inverse of ResolveOffset: document-global back
// to section-local.
func sectionOffset(d *corpus.Document, e *corpus.Entity) (string, int, int) {
	if e.Dstart >= d.TitleOffset() {
		return sectionAbstract, e.Dstart - d.TitleOffset(), e.Dend - d.TitleOffset()
	}
	return sectionTitle, e.Dstart, e.Dend
}

// RunExternal invokes the official evaluation binary on a results file
// and a gold file. Any failure here is fatal to the caller: a partial
// external score cannot be trusted, so the error propagates untouched.
func RunExternal(binary, resultsPath, goldPath string) (string, error) {
	out, err := exec.Command(binary, resultsPath, goldPath).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("external scorer %s: %w: %s", binary, err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}
