package corpus

// Entity is a tagged span of document text produced by one annotation
// source (a gold standard, a single classifier, an ensemble).
//
// All offsets are byte offsets into the owning document's normalized
// text. Dstart/Dend are document-global, Sstart/Send are relative to
// the owning sentence: Sstart == Dstart - Sentence.Offset.
type Entity struct {
	ID      string `json:"id"`
	Source  string `json:"source"`
	Type    string `json:"type"`
	Subtype string `json:"subtype,omitempty"`

	Dstart int `json:"dstart"`
	Dend   int `json:"dend"`
	Sstart int `json:"sstart"`
	Send   int `json:"send"`

	Text string `json:"text"`

	// RecognizedBy holds one vote per source that produced this exact
	// span. A missing key means "not recognized by that source", never
	// zero confidence.
	RecognizedBy map[string]int `json:"recognized_by,omitempty"`

	// Meta is an open attachment map for enrichment collaborators,
	// keyed by collaborator name (e.g. "chebi", "ssm"). Enrichment
	// never changes identity or offsets.
	Meta map[string]float64 `json:"meta,omitempty"`
}

// Recognize records a vote for this span by the given source. A second
// vote by the same source overwrites the first.
func (e *Entity) Recognize(source string, vote int) {
	if e.RecognizedBy == nil {
		e.RecognizedBy = make(map[string]int)
	}
	e.RecognizedBy[source] = vote
}

// Score returns the enrichment score attached under the given
// collaborator name.
func (e *Entity) Score(name string) (float64, bool) {
	v, ok := e.Meta[name]
	return v, ok
}

// SetScore attaches an enrichment score under the given collaborator
// name.
func (e *Entity) SetScore(name string, value float64) {
	if e.Meta == nil {
		e.Meta = make(map[string]float64)
	}
	e.Meta[name] = value
}

// Filter gates entities when collecting offsets or unique results.
// A nil Filter accepts every entity.
type Filter func(*Entity) bool
