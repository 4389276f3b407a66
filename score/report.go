package score

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// commonWords is how many of the most frequent FP/FN texts the report
// surfaces; systematic lexical failure modes (one stopword repeatedly
// mis-tagged) show up here.
const commonWords = 10

// Report renders the outcome as human-readable audit lines: when
// withWords is set, the ten most common FP and FN texts, then per
// document the TP, FP and FN spans, sorted. hasDoc tells the report
// which document ids exist in the corpus; tuples referencing unknown
// documents are logged and excluded. A nil hasDoc accepts every id.
func Report(o Outcome, hasDoc func(did string) bool, withWords bool) []string {
	var report []string

	tp := groupByDoc(o.TP, hasDoc, withWords)
	fp := groupByDoc(o.FP, hasDoc, withWords)
	fn := groupByDoc(o.FN, hasDoc, withWords)

	if withWords {
		report = append(report, "Common FPs")
		report = append(report, commonTexts(o.FP)...)
		report = append(report, ">")
		report = append(report, "Common FNs")
		report = append(report, commonTexts(o.FN)...)
		report = append(report, ">")
	}

	for _, did := range unionDocs(tp, fp, fn) {
		report = append(report, did)
		for _, line := range tp[did] {
			report = append(report, "TP:"+line)
		}
		for _, line := range fp[did] {
			report = append(report, "FP:"+line)
		}
		for _, line := range fn[did] {
			report = append(report, "FN:"+line)
		}
	}
	return report
}

// groupByDoc formats one partition as per-document lines
// "did\tstart:end[\ttext]". Tuples with an empty document id land
// under "0" (text-only gold sets carry no document).
func groupByDoc(tuples []Tuple, hasDoc func(string) bool, withText bool) map[string][]string {
	group := make(map[string][]string)
	for _, t := range tuples {
		if t.DID != "" && hasDoc != nil && !hasDoc(t.DID) {
			slog.Info("document not in corpus, excluded from report", "did", t.DID)
			continue
		}
		did := t.DID
		if did == "" {
			did = "0"
		}
		line := did + "\t" + t.Start + ":" + t.End
		if withText {
			line += "\t" + t.Text
		}
		group[did] = append(group[did], line)
	}
	// tuples arrive sorted from Compare, but sort again so the report
	// never depends on caller ordering
	for did := range group {
		sort.Strings(group[did])
	}
	return group
}

func unionDocs(groups ...map[string][]string) []string {
	seen := make(map[string]bool)
	var dids []string
	for _, g := range groups {
		for did := range g {
			if !seen[did] {
				seen[did] = true
				dids = append(dids, did)
			}
		}
	}
	sort.Strings(dids)
	return dids
}

// commonTexts returns "text: count" lines for the most frequent tuple
// texts, count descending, ties broken by text.
func commonTexts(tuples []Tuple) []string {
	counts := make(map[string]int)
	for _, t := range tuples {
		if t.Text != "" {
			counts[t.Text]++
		}
	}
	texts := make([]string, 0, len(counts))
	for text := range counts {
		texts = append(texts, text)
	}
	sort.Slice(texts, func(i, j int) bool {
		if counts[texts[i]] != counts[texts[j]] {
			return counts[texts[i]] > counts[texts[j]]
		}
		return texts[i] < texts[j]
	})
	if len(texts) > commonWords {
		texts = texts[:commonWords]
	}
	lines := make([]string, 0, len(texts))
	for _, text := range texts {
		lines = append(lines, fmt.Sprintf("%s: %d", text, counts[text]))
	}
	return lines
}

// Summary is the fixed header of every report file.
func Summary(o Outcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "TPs: %d\n", len(o.TP))
	fmt.Fprintf(&b, "FPs: %d\n", len(o.FP))
	fmt.Fprintf(&b, "FNs: %d\n", len(o.FN))
	fmt.Fprintf(&b, "Precision: %s\n", formatMetric(o.Precision()))
	fmt.Fprintf(&b, "Recall: %s\n", formatMetric(o.Recall()))
	return b.String()
}

func formatMetric(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.6f", v), "0"), ".")
}
