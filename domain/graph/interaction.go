package graph

// Interaction is a single relationship row between two characters as
// returned by the graph database: an ordered pair of names, a relation
// label, a numeric weight and the book index the relation stems from.
type Interaction struct {
	Source   string
	Target   string
	Relation string
	Weight   float64
	Book     int
}

// IsSelfLoop reports whether the interaction connects a character to itself.
func (i Interaction) IsSelfLoop() bool {
	return i.Source == i.Target
}

// pairKey returns an order-independent key for the endpoint pair, so that
// A->B and B->A collapse onto the same edge.
func (i Interaction) pairKey() [2]string {
	if i.Source <= i.Target {
		return [2]string{i.Source, i.Target}
	}
	return [2]string{i.Target, i.Source}
}
