package graph

// Character is a node in the relationship graph. Degree and the relations
// summary are derived from the loaded edge list and drive the hover tooltip
// and the node sizing in the view.
type Character struct {
	Name      string
	Degree    int
	Relations string
}
