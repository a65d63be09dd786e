// Package memory provides a built-in sample dataset so the explorer can run
// without a graph database, for demos and local development.
package memory

import "relgraph/domain/graph"

// SampleInteractions returns a small character interaction set shaped like
// the production data: weighted, typed relations with a book index.
func SampleInteractions() []graph.Interaction {
	return []graph.Interaction{
		{Source: "Eddard", Target: "Robert", Relation: "INTERACTS1", Weight: 18, Book: 1},
		{Source: "Eddard", Target: "Catelyn", Relation: "INTERACTS1", Weight: 24, Book: 1},
		{Source: "Eddard", Target: "Arya", Relation: "INTERACTS1", Weight: 14, Book: 1},
		{Source: "Eddard", Target: "Cersei", Relation: "INTERACTS1", Weight: 9, Book: 1},
		{Source: "Catelyn", Target: "Tyrion", Relation: "INTERACTS1", Weight: 11, Book: 1},
		{Source: "Cersei", Target: "Tyrion", Relation: "INTERACTS2", Weight: 19, Book: 2},
		{Source: "Tyrion", Target: "Bronn", Relation: "INTERACTS2", Weight: 16, Book: 2},
		{Source: "Arya", Target: "Sandor", Relation: "INTERACTS3", Weight: 21, Book: 3},
		{Source: "Jaime", Target: "Brienne", Relation: "INTERACTS3", Weight: 17, Book: 3},
		{Source: "Jaime", Target: "Cersei", Relation: "INTERACTS3", Weight: 20, Book: 3},
		{Source: "Jon", Target: "Samwell", Relation: "INTERACTS45", Weight: 26, Book: 4},
		{Source: "Jon", Target: "Arya", Relation: "INTERACTS45", Weight: 7, Book: 4},
		{Source: "Daenerys", Target: "Jorah", Relation: "INTERACTS45", Weight: 23, Book: 4},
		{Source: "Daenerys", Target: "Tyrion", Relation: "INTERACTS45", Weight: 12, Book: 5},
		// Below the default weight cutoff; dropped during preprocessing.
		{Source: "Samwell", Target: "Bronn", Relation: "INTERACTS45", Weight: 1, Book: 5},
	}
}
