package corpus

// Pair is an ordered pair of entities of the same document, candidate
// for a relation. The engine stores, indexes and iterates pairs; what
// makes a pair a valid relation is decided by an external rule set.
type Pair struct {
	// E1/E2 are the entity ids, the serialized form of the pair.
	E1 string `json:"e1"`
	E2 string `json:"e2"`

	RecognizedBy map[string]int `json:"recognized_by,omitempty"`

	// Entities holds the resolved entity pointers. After
	// deserialization they are nil until Document.Relink runs.
	Entities [2]*Entity `json:"-"`
}

// NewPair builds a pair over two tagged entities.
func NewPair(e1, e2 *Entity) *Pair {
	return &Pair{
		E1:       e1.ID,
		E2:       e2.ID,
		Entities: [2]*Entity{e1, e2},
	}
}

// Recognize records a vote for this pair by the given source.
func (p *Pair) Recognize(source string, vote int) {
	if p.RecognizedBy == nil {
		p.RecognizedBy = make(map[string]int)
	}
	p.RecognizedBy[source] = vote
}
