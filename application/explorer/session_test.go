package explorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"relgraph/domain/graph"
	"relgraph/domain/layout"
	"relgraph/infrastructure/config"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	g := graph.Build([]graph.Interaction{
		{Source: "Arya", Target: "Bran", Relation: "ALLY", Weight: 5, Book: 1},
		{Source: "Bran", Target: "Cersei", Relation: "RIVAL", Weight: 2, Book: 2},
	}, 2)
	require.NoError(t, g.Validate())

	engine := layout.NewEngine(layout.DefaultConfig())
	positions, err := engine.Compute(g)
	require.NoError(t, err)

	return NewService(g, positions, config.DefaultStyle, nil, zap.NewNop())
}

func edgeIndex(t *testing.T, svc *Service, relation string) int {
	t.Helper()
	for i, edge := range svc.Graph().Interactions() {
		if edge.Relation == relation {
			return i
		}
	}
	t.Fatalf("no edge with relation %s", relation)
	return -1
}

func TestSession_HoverNode(t *testing.T) {
	session := newTestService(t).NewSession()

	msg, err := session.Handle(Event{Type: EventHover, Node: "Bran"})
	require.NoError(t, err)
	require.Equal(t, MessageTooltip, msg.Type)
	require.NotNil(t, msg.Tooltip)

	assert.True(t, msg.Tooltip.Show)
	assert.Equal(t, "Bran", msg.Tooltip.Node)
	assert.Equal(t, 2, msg.Tooltip.Degree)
	assert.Equal(t, "ALLY (5), RIVAL (2)", msg.Tooltip.Relations)

	// Hover never changes the selection state.
	assert.Empty(t, session.Selected())
}

func TestSession_HoverUnknownNodeHidesTooltip(t *testing.T) {
	session := newTestService(t).NewSession()

	msg, err := session.Handle(Event{Type: EventHover, Node: "Nobody"})
	require.NoError(t, err)
	assert.False(t, msg.Tooltip.Show)
}

func TestSession_HoverEdge(t *testing.T) {
	svc := newTestService(t)
	session := svc.NewSession()
	idx := edgeIndex(t, svc, "RIVAL")

	msg, err := session.Handle(Event{Type: EventHover, Edge: &idx})
	require.NoError(t, err)

	assert.True(t, msg.Tooltip.Show)
	assert.Equal(t, "RIVAL", msg.Tooltip.Relation)
	assert.Equal(t, 2.0, msg.Tooltip.Weight)
	assert.Equal(t, 2, msg.Tooltip.Book)
}

func TestSession_HoverEdgeOutOfRange(t *testing.T) {
	session := newTestService(t).NewSession()
	idx := 99

	msg, err := session.Handle(Event{Type: EventHover, Edge: &idx})
	require.NoError(t, err)
	assert.False(t, msg.Tooltip.Show)
}

func TestSession_TapHighlightsDirectNeighboursOnly(t *testing.T) {
	svc := newTestService(t)
	session := svc.NewSession()

	msg, err := session.Handle(Event{Type: EventTap, Node: "Arya"})
	require.NoError(t, err)
	require.Equal(t, MessageSelection, msg.Type)

	assert.Equal(t, "Arya", session.Selected())
	assert.Equal(t, "Arya", msg.Selection.Selected)
	assert.ElementsMatch(t, []string{"Arya", "Bran"}, msg.Selection.Nodes)
	assert.Equal(t, []int{edgeIndex(t, svc, "ALLY")}, msg.Selection.Edges)
}

func TestSession_TapBackgroundClearsSelection(t *testing.T) {
	session := newTestService(t).NewSession()

	_, err := session.Handle(Event{Type: EventTap, Node: "Bran"})
	require.NoError(t, err)
	require.Equal(t, "Bran", session.Selected())

	msg, err := session.Handle(Event{Type: EventTap})
	require.NoError(t, err)

	assert.Empty(t, session.Selected())
	assert.Empty(t, msg.Selection.Selected)
	assert.Empty(t, msg.Selection.Nodes)
	assert.Empty(t, msg.Selection.Edges)
}

func TestSession_TapUnknownNodeClearsSelection(t *testing.T) {
	session := newTestService(t).NewSession()

	_, err := session.Handle(Event{Type: EventTap, Node: "Bran"})
	require.NoError(t, err)

	msg, err := session.Handle(Event{Type: EventTap, Node: "Nobody"})
	require.NoError(t, err)
	assert.Empty(t, session.Selected())
	assert.Empty(t, msg.Selection.Nodes)
}

func TestSession_Search(t *testing.T) {
	tests := []struct {
		name string
		term string
		want []string
	}{
		{
			name: "case-insensitive substring",
			term: "aR",
			want: []string{"Arya"},
		},
		{
			name: "matches multiple nodes",
			term: "r",
			want: []string{"Arya", "Bran", "Cersei"},
		},
		{
			name: "empty term shows all nodes",
			term: "",
			want: []string{"Arya", "Bran", "Cersei"},
		},
		{
			name: "whitespace-only term shows all nodes",
			term: "   ",
			want: []string{"Arya", "Bran", "Cersei"},
		},
		{
			name: "no matches",
			term: "zzz",
			want: []string{},
		},
	}

	session := newTestService(t).NewSession()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := session.Handle(Event{Type: EventSearch, Term: tt.term})
			require.NoError(t, err)
			require.Equal(t, MessageVisibility, msg.Type)
			assert.ElementsMatch(t, tt.want, msg.Visibility.Nodes)
		})
	}
}

func TestSession_UnknownEventType(t *testing.T) {
	session := newTestService(t).NewSession()

	_, err := session.Handle(Event{Type: "drag"})
	assert.Error(t, err)
}

func TestSessions_AreIndependent(t *testing.T) {
	svc := newTestService(t)
	first := svc.NewSession()
	second := svc.NewSession()

	_, err := first.Handle(Event{Type: EventTap, Node: "Arya"})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID(), second.ID())
	assert.Equal(t, "Arya", first.Selected())
	assert.Empty(t, second.Selected())
}
