package explorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relgraph/infrastructure/config"
)

func TestService_Document(t *testing.T) {
	svc := newTestService(t)
	doc := svc.Document()

	style := config.DefaultStyle()
	assert.Equal(t, style.Title, doc.Title)
	assert.Equal(t, style.PlotWidth, doc.PlotWidth)
	assert.Equal(t, style.HighlightColor, doc.HighlightColor)
	assert.Equal(t, style.DimAlpha, doc.DimAlpha)
	require.Len(t, doc.Nodes, 3)
	require.Len(t, doc.Edges, 2)

	byID := make(map[string]NodeView)
	for _, n := range doc.Nodes {
		byID[n.ID] = n
	}
	bran := byID["Bran"]
	assert.Equal(t, 2, bran.Degree)
	assert.Equal(t, style.NodeColor, bran.Color)
	assert.Equal(t, style.NodeSize(2), bran.Size)
	assert.Equal(t, "ALLY (5), RIVAL (2)", bran.Relations)

	for _, edge := range doc.Edges {
		assert.Equal(t, style.EdgeColor(edge.Relation), edge.Color)
		assert.Equal(t, style.EdgeWidth, edge.Width)
	}
}

func TestService_Node(t *testing.T) {
	svc := newTestService(t)

	node, ok := svc.Node("Bran")
	require.True(t, ok)
	assert.Equal(t, "Bran", node.ID)
	assert.Equal(t, 2, node.Degree)
	assert.Equal(t, config.DefaultStyle().NodeSize(2), node.Size)

	_, ok = svc.Node("Nobody")
	assert.False(t, ok)
}

func TestService_DocumentPositionsMatchLayout(t *testing.T) {
	svc := newTestService(t)
	doc := svc.Document()

	for _, n := range doc.Nodes {
		assert.LessOrEqual(t, n.X, 1.5+1e-9)
		assert.GreaterOrEqual(t, n.X, -1.5-1e-9)
		assert.LessOrEqual(t, n.Y, 1.5+1e-9)
		assert.GreaterOrEqual(t, n.Y, -1.5-1e-9)
	}
}

func TestService_DocumentTracksStyleChanges(t *testing.T) {
	svc := newTestService(t)

	// Swap in a new style sheet, as the hot-reload watcher would.
	custom := config.DefaultStyle()
	custom.Title = "Renamed"
	custom.NodeColor = "tomato"
	svc.style = func() config.Style { return custom }

	doc := svc.Document()
	assert.Equal(t, "Renamed", doc.Title)
	for _, n := range doc.Nodes {
		assert.Equal(t, "tomato", n.Color)
	}
}
