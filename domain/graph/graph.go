// Package graph holds the in-memory character relationship graph. The full
// node/edge set is built once from the database snapshot at server start and
// is immutable for the lifetime of the process.
package graph

import (
	"fmt"
	"strconv"
	"strings"

	pkgerrors "relgraph/pkg/errors"
)

// Graph is the immutable character/interaction set for a render session.
type Graph struct {
	characters   []Character
	index        map[string]int
	interactions []Interaction

	// incident maps a character name to the indices of its interactions,
	// in edge-list order.
	incident map[string][]int
}

// Build constructs a graph from raw interaction rows. Mirroring the loader
// preprocessing: self-loops are dropped, rows below minWeight are dropped,
// and duplicate unordered pairs collapse with the last row winning.
func Build(rows []Interaction, minWeight float64) *Graph {
	type slot struct {
		order int
		row   Interaction
	}
	edges := make(map[[2]string]slot)
	order := 0
	for _, row := range rows {
		if row.IsSelfLoop() || row.Weight < minWeight {
			continue
		}
		key := row.pairKey()
		if existing, ok := edges[key]; ok {
			// Last occurrence wins, original position is kept.
			edges[key] = slot{order: existing.order, row: row}
			continue
		}
		edges[key] = slot{order: order, row: row}
		order++
	}

	interactions := make([]Interaction, len(edges))
	for _, s := range edges {
		interactions[s.order] = s.row
	}

	g := &Graph{
		index:        make(map[string]int),
		interactions: interactions,
		incident:     make(map[string][]int),
	}
	for i, edge := range interactions {
		g.addCharacter(edge.Source)
		g.addCharacter(edge.Target)
		g.incident[edge.Source] = append(g.incident[edge.Source], i)
		g.incident[edge.Target] = append(g.incident[edge.Target], i)
	}
	g.deriveAttributes()
	return g
}

func (g *Graph) addCharacter(name string) {
	if _, ok := g.index[name]; ok {
		return
	}
	g.index[name] = len(g.characters)
	g.characters = append(g.characters, Character{Name: name})
}

// deriveAttributes fills in degree and the relations tooltip summary,
// e.g. "ALLY (5), RIVAL (2)".
func (g *Graph) deriveAttributes() {
	for i := range g.characters {
		name := g.characters[i].Name
		edges := g.incident[name]
		g.characters[i].Degree = len(edges)

		parts := make([]string, 0, len(edges))
		for _, idx := range edges {
			edge := g.interactions[idx]
			parts = append(parts, fmt.Sprintf("%s (%s)",
				edge.Relation, strconv.FormatFloat(edge.Weight, 'f', -1, 64)))
		}
		g.characters[i].Relations = strings.Join(parts, ", ")
	}
}

// Characters returns all nodes in deterministic (first appearance) order.
func (g *Graph) Characters() []Character {
	return g.characters
}

// Interactions returns all edges in deterministic order.
func (g *Graph) Interactions() []Interaction {
	return g.interactions
}

// Has reports whether a character with the given name exists.
func (g *Graph) Has(name string) bool {
	_, ok := g.index[name]
	return ok
}

// Character returns the node with the given name.
func (g *Graph) Character(name string) (Character, bool) {
	i, ok := g.index[name]
	if !ok {
		return Character{}, false
	}
	return g.characters[i], true
}

// Degree returns the number of interactions incident to the named character.
func (g *Graph) Degree(name string) int {
	return len(g.incident[name])
}

// IncidentEdges returns the edge-list indices of interactions touching the
// named character, in edge-list order.
func (g *Graph) IncidentEdges(name string) []int {
	return g.incident[name]
}

// Neighbors returns the names of characters directly connected to the named
// character, in edge-list order.
func (g *Graph) Neighbors(name string) []string {
	edges := g.incident[name]
	neighbors := make([]string, 0, len(edges))
	for _, idx := range edges {
		edge := g.interactions[idx]
		other := edge.Target
		if other == name {
			other = edge.Source
		}
		neighbors = append(neighbors, other)
	}
	return neighbors
}

// Validate checks the structural invariants: unique node names, every edge
// referencing two existing nodes, and degree matching the incident count.
func (g *Graph) Validate() error {
	seen := make(map[string]bool, len(g.characters))
	for _, c := range g.characters {
		if seen[c.Name] {
			return pkgerrors.NewValidation("duplicate character name: " + c.Name)
		}
		seen[c.Name] = true
	}
	for _, edge := range g.interactions {
		if !g.Has(edge.Source) || !g.Has(edge.Target) {
			return pkgerrors.NewValidation(
				fmt.Sprintf("interaction %s-%s references unknown character", edge.Source, edge.Target))
		}
	}
	for _, c := range g.characters {
		if c.Degree != len(g.incident[c.Name]) {
			return pkgerrors.NewValidation("degree mismatch for character: " + c.Name)
		}
	}
	return nil
}
