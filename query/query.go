// Package query is the interactive corpus inspection REPL.
package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/goldspan/corpus"
	"github.com/revelaction/goldspan/render"
)

type Handler struct {
	Corpus   *corpus.Corpus
	Renderer *render.Renderer
}

func NewHandler(c *corpus.Corpus, r *render.Renderer) *Handler {
	return &Handler{Corpus: c, Renderer: r}
}

func (h *Handler) Run() error {
	fmt.Println("commands: doc <id> [source], ent <source>, sources, quit")

	history := []string{}
	for {
		in := prompt.Input("> ", h.completer,
			prompt.OptionTitle("goldspan query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionHistory(history),
		)

		in = strings.TrimSpace(in)
		if in == "quit" || in == "exit" {
			return nil
		}
		if in == "" {
			continue
		}
		history = append(history, in)

		if err := h.eval(in); err != nil {
			fmt.Println(err)
		}
	}
}

func (h *Handler) eval(in string) error {
	fields := strings.Fields(in)
	switch fields[0] {
	case "sources":
		for _, s := range h.sources() {
			fmt.Println(s)
		}
		return nil
	case "doc":
		if len(fields) < 2 {
			return fmt.Errorf("usage: doc <id> [source]")
		}
		d, ok := h.Corpus.Get(fields[1])
		if !ok {
			return fmt.Errorf("document not found: %s", fields[1])
		}
		source := ""
		if len(fields) > 2 {
			source = fields[2]
		}
		h.Renderer.Document(d, source)
		return nil
	case "ent":
		if len(fields) < 2 {
			return fmt.Errorf("usage: ent <source>")
		}
		for _, did := range h.Corpus.DocumentIDs() {
			ents := h.Corpus.Documents[did].EntitiesOf(fields[1])
			h.Renderer.Entities(ents)
		}
		return nil
	}
	return fmt.Errorf("unknown command: %s", fields[0])
}

// sources collects the annotation source names present anywhere in the
// corpus.
func (h *Handler) sources() []string {
	seen := map[string]bool{}
	for _, d := range h.Corpus.Documents {
		for _, s := range d.Sentences {
			for name := range s.Entities {
				seen[name] = true
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (h *Handler) completer(d prompt.Document) []prompt.Suggest {
	text := d.TextBeforeCursor()
	fields := strings.Fields(text)

	if len(fields) == 0 || (len(fields) == 1 && !strings.HasSuffix(text, " ")) {
		return prompt.FilterHasPrefix([]prompt.Suggest{
			{Text: "doc", Description: "render a document's annotated sentences"},
			{Text: "ent", Description: "list entities of a source"},
			{Text: "sources", Description: "list annotation sources"},
			{Text: "quit", Description: "leave"},
		}, d.GetWordBeforeCursor(), true)
	}

	var suggests []prompt.Suggest
	switch fields[0] {
	case "doc":
		for _, did := range h.Corpus.DocumentIDs() {
			suggests = append(suggests, prompt.Suggest{Text: did})
		}
	case "ent":
		for _, s := range h.sources() {
			suggests = append(suggests, prompt.Suggest{Text: s})
		}
	}
	return prompt.FilterHasPrefix(suggests, d.GetWordBeforeCursor(), true)
}
