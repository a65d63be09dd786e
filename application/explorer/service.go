// Package explorer owns the interactive view: it assembles the styled
// node/edge document sent to each browser and runs the per-session
// hover/tap/search state machine that drives push updates.
package explorer

import (
	"go.uber.org/zap"

	"relgraph/domain/graph"
	"relgraph/domain/layout"
	"relgraph/infrastructure/config"
	"relgraph/infrastructure/observability"
)

// StyleProvider returns the style sheet to apply when a document is built.
// Backed by the hot-reloading watcher so new sessions pick up changes.
type StyleProvider func() config.Style

// Service holds the immutable graph snapshot and its layout, and creates
// independent sessions for each browser connection.
type Service struct {
	graph     *graph.Graph
	positions map[string]layout.Position
	style     StyleProvider
	metrics   *observability.Collector
	logger    *zap.Logger
}

// NewService creates the explorer service for a loaded snapshot.
func NewService(
	g *graph.Graph,
	positions map[string]layout.Position,
	style StyleProvider,
	metrics *observability.Collector,
	logger *zap.Logger,
) *Service {
	return &Service{
		graph:     g,
		positions: positions,
		style:     style,
		metrics:   metrics,
		logger:    logger,
	}
}

// Document is the full view model pushed to a browser on connect.
// HighlightColor and DimAlpha are the selection styling the page applies
// when a selection or visibility message arrives.
type Document struct {
	Title          string     `json:"title"`
	PlotWidth      int        `json:"plotWidth"`
	PlotHeight     int        `json:"plotHeight"`
	HighlightColor string     `json:"highlightColor"`
	DimAlpha       float64    `json:"dimAlpha"`
	Nodes          []NodeView `json:"nodes"`
	Edges          []EdgeView `json:"edges"`
}

// NodeView is a renderable node: identity, layout position and display
// attributes derived from degree.
type NodeView struct {
	ID        string  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Degree    int     `json:"degree"`
	Relations string  `json:"relations"`
	Color     string  `json:"color"`
	Size      float64 `json:"size"`
}

// EdgeView is a renderable edge. Color follows the relation label, width
// the interaction weight.
type EdgeView struct {
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	Relation string  `json:"relation"`
	Weight   float64 `json:"weight"`
	Book     int     `json:"book,omitempty"`
	Color    string  `json:"color"`
	Width    float64 `json:"width"`
}

// Document builds the styled view model with the current style sheet.
func (s *Service) Document() Document {
	style := s.style()

	characters := s.graph.Characters()
	nodes := make([]NodeView, 0, len(characters))
	for _, c := range characters {
		pos := s.positions[c.Name]
		nodes = append(nodes, NodeView{
			ID:        c.Name,
			X:         pos.X,
			Y:         pos.Y,
			Degree:    c.Degree,
			Relations: c.Relations,
			Color:     style.NodeColor,
			Size:      style.NodeSize(c.Degree),
		})
	}

	interactions := s.graph.Interactions()
	edges := make([]EdgeView, 0, len(interactions))
	for _, edge := range interactions {
		edges = append(edges, EdgeView{
			Source:   edge.Source,
			Target:   edge.Target,
			Relation: edge.Relation,
			Weight:   edge.Weight,
			Book:     edge.Book,
			Color:    style.EdgeColor(edge.Relation),
			Width:    style.EdgeWidth,
		})
	}

	return Document{
		Title:          style.Title,
		PlotWidth:      style.PlotWidth,
		PlotHeight:     style.PlotHeight,
		HighlightColor: style.HighlightColor,
		DimAlpha:       style.DimAlpha,
		Nodes:          nodes,
		Edges:          edges,
	}
}

// Node builds the styled view for a single character. The second return is
// false when no character has that name.
func (s *Service) Node(name string) (NodeView, bool) {
	c, ok := s.graph.Character(name)
	if !ok {
		return NodeView{}, false
	}

	style := s.style()
	pos := s.positions[c.Name]
	return NodeView{
		ID:        c.Name,
		X:         pos.X,
		Y:         pos.Y,
		Degree:    c.Degree,
		Relations: c.Relations,
		Color:     style.NodeColor,
		Size:      style.NodeSize(c.Degree),
	}, true
}

// Graph exposes the underlying snapshot.
func (s *Service) Graph() *graph.Graph {
	return s.graph
}
