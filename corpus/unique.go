package corpus

import (
	"sort"

	"golang.org/x/text/cases"
)

// UniqueResults reduces the accepted entities of one source to the
// unique case-folded entity texts, discarding position. Used when the
// gold standard is a bag of known entity names rather than positioned
// spans. The result is sorted; ordering is not otherwise significant.
func (c *Corpus) UniqueResults(source string, accept Filter) []string {
	fold := cases.Fold()
	seen := make(map[string]bool)
	var out []string
	for _, did := range c.DocumentIDs() {
		for _, e := range c.Documents[did].EntitiesOf(source) {
			if accept != nil && !accept(e) {
				continue
			}
			text := fold.String(e.Text)
			if text == "" || seen[text] {
				continue
			}
			seen[text] = true
			out = append(out, text)
		}
	}
	sort.Strings(out)
	return out
}
