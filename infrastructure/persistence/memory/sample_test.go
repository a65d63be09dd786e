package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relgraph/domain/graph"
)

func TestSampleInteractions_BuildValidGraph(t *testing.T) {
	rows := SampleInteractions()
	require.NotEmpty(t, rows)

	g := graph.Build(rows, 2)
	require.NoError(t, g.Validate())
	assert.NotEmpty(t, g.Characters())
	// The sub-threshold row must not survive preprocessing.
	assert.Less(t, len(g.Interactions()), len(rows))
	for _, edge := range g.Interactions() {
		assert.GreaterOrEqual(t, edge.Weight, 2.0)
	}
}
