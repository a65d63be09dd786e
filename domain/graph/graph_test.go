package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Preprocessing(t *testing.T) {
	tests := []struct {
		name      string
		rows      []Interaction
		minWeight float64
		wantEdges int
		wantNodes int
	}{
		{
			name: "self-loops are dropped",
			rows: []Interaction{
				{Source: "A", Target: "A", Relation: "INTERACTS1", Weight: 9},
				{Source: "A", Target: "B", Relation: "INTERACTS1", Weight: 5},
			},
			minWeight: 2,
			wantEdges: 1,
			wantNodes: 2,
		},
		{
			name: "weak interactions are dropped",
			rows: []Interaction{
				{Source: "A", Target: "B", Relation: "INTERACTS1", Weight: 1},
				{Source: "B", Target: "C", Relation: "INTERACTS1", Weight: 2},
			},
			minWeight: 2,
			wantEdges: 1,
			wantNodes: 2,
		},
		{
			name: "duplicate pairs collapse regardless of direction",
			rows: []Interaction{
				{Source: "A", Target: "B", Relation: "INTERACTS1", Weight: 5},
				{Source: "B", Target: "A", Relation: "INTERACTS2", Weight: 7},
			},
			minWeight: 2,
			wantEdges: 1,
			wantNodes: 2,
		},
		{
			name:      "empty input",
			rows:      nil,
			minWeight: 2,
			wantEdges: 0,
			wantNodes: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Build(tt.rows, tt.minWeight)
			assert.Len(t, g.Interactions(), tt.wantEdges)
			assert.Len(t, g.Characters(), tt.wantNodes)
			assert.NoError(t, g.Validate())
		})
	}
}

func TestBuild_DuplicateLastWins(t *testing.T) {
	g := Build([]Interaction{
		{Source: "A", Target: "B", Relation: "INTERACTS1", Weight: 5},
		{Source: "B", Target: "A", Relation: "INTERACTS3", Weight: 8},
	}, 2)

	require.Len(t, g.Interactions(), 1)
	edge := g.Interactions()[0]
	assert.Equal(t, "INTERACTS3", edge.Relation)
	assert.Equal(t, 8.0, edge.Weight)
}

func TestGraph_DegreeMatchesIncidentEdges(t *testing.T) {
	g := Build([]Interaction{
		{Source: "A", Target: "B", Relation: "INTERACTS1", Weight: 3},
		{Source: "B", Target: "C", Relation: "INTERACTS2", Weight: 4},
		{Source: "C", Target: "D", Relation: "INTERACTS2", Weight: 6},
		{Source: "B", Target: "D", Relation: "INTERACTS3", Weight: 2},
	}, 2)

	require.NoError(t, g.Validate())
	for _, c := range g.Characters() {
		assert.Equal(t, len(g.IncidentEdges(c.Name)), c.Degree, "degree of %s", c.Name)
		assert.Equal(t, g.Degree(c.Name), c.Degree)
	}
}

// Scenario: A-B (weight 5, ally), B-C (weight 2, rival).
func TestGraph_ThreeNodeScenario(t *testing.T) {
	g := Build([]Interaction{
		{Source: "A", Target: "B", Relation: "ALLY", Weight: 5},
		{Source: "B", Target: "C", Relation: "RIVAL", Weight: 2},
	}, 2)

	require.NoError(t, g.Validate())
	require.Len(t, g.Characters(), 3)

	assert.Equal(t, 1, g.Degree("A"))
	assert.Equal(t, 2, g.Degree("B"))
	assert.Equal(t, 1, g.Degree("C"))

	b, ok := g.Character("B")
	require.True(t, ok)
	assert.Equal(t, "ALLY (5), RIVAL (2)", b.Relations)

	assert.ElementsMatch(t, []string{"B"}, g.Neighbors("A"))
	assert.ElementsMatch(t, []string{"A", "C"}, g.Neighbors("B"))
}

func TestGraph_UnknownCharacter(t *testing.T) {
	g := Build([]Interaction{
		{Source: "A", Target: "B", Relation: "ALLY", Weight: 5},
	}, 2)

	assert.False(t, g.Has("Z"))
	assert.Equal(t, 0, g.Degree("Z"))
	assert.Empty(t, g.Neighbors("Z"))
	assert.Empty(t, g.IncidentEdges("Z"))

	_, ok := g.Character("Z")
	assert.False(t, ok)
}
