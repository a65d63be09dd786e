// Package layout computes 2D node positions for the relationship graph.
// The force-directed simulation itself is delegated to gonum's graph/layout
// package; this package only supplies parameters and normalizes the result
// into the plot range. Positions are computed exactly once per full graph
// load and are deterministic for a fixed seed.
package layout

import (
	"math"
	"sort"

	"golang.org/x/exp/rand"
	gonumgraph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	gonumlayout "gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"

	"relgraph/domain/graph"
	pkgerrors "relgraph/pkg/errors"
)

// Position is a 2D coordinate for a single character.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Config holds the simulation parameters. Everything here is passed through
// to the underlying optimizer except Scale, which bounds the output range.
type Config struct {
	Iterations int
	Repulsion  float64
	Rate       float64
	Theta      float64
	Scale      float64
	Seed       uint64
}

// DefaultConfig returns the parameters used by the production deployment:
// positions normalized into [-1.5, 1.5] with a fixed seed.
func DefaultConfig() Config {
	return Config{
		Iterations: 100,
		Repulsion:  1,
		Rate:       0.05,
		Theta:      0.2,
		Scale:      1.5,
		Seed:       42,
	}
}

// Engine wraps the force-directed optimizer.
type Engine struct {
	cfg Config
}

// NewEngine creates a layout engine with the given parameters.
func NewEngine(cfg Config) *Engine {
	if cfg.Iterations <= 0 {
		cfg.Iterations = DefaultConfig().Iterations
	}
	if cfg.Scale <= 0 {
		cfg.Scale = DefaultConfig().Scale
	}
	return &Engine{cfg: cfg}
}

// Compute runs the spring simulation to completion and returns a position
// for every character. The same graph and seed yield identical positions.
func (e *Engine) Compute(g *graph.Graph) (map[string]Position, error) {
	characters := g.Characters()
	positions := make(map[string]Position, len(characters))
	if len(characters) == 0 {
		return positions, nil
	}

	// Character index order doubles as the gonum node ID space.
	ids := make(map[string]int64, len(characters))
	for i, c := range characters {
		ids[c.Name] = int64(i)
	}
	ug := newIndexedGraph(len(characters))
	for _, edge := range g.Interactions() {
		ug.addEdge(ids[edge.Source], ids[edge.Target])
	}
	ug.sortNeighbours()

	eades := gonumlayout.EadesR2{
		Repulsion: e.cfg.Repulsion,
		Rate:      e.cfg.Rate,
		Updates:   e.cfg.Iterations,
		Theta:     e.cfg.Theta,
		Src:       rand.NewSource(e.cfg.Seed),
	}
	optimizer := gonumlayout.NewOptimizerR2(ug, eades.Update)
	for optimizer.Update() {
	}

	maxAbs := 0.0
	for _, c := range characters {
		vec := optimizer.Coord2(ids[c.Name])
		if math.IsNaN(vec.X) || math.IsNaN(vec.Y) || math.IsInf(vec.X, 0) || math.IsInf(vec.Y, 0) {
			return nil, pkgerrors.NewInternal("layout produced non-finite coordinates", nil)
		}
		positions[c.Name] = Position{X: vec.X, Y: vec.Y}
		maxAbs = math.Max(maxAbs, math.Max(math.Abs(vec.X), math.Abs(vec.Y)))
	}

	// Normalize into [-Scale, Scale] so the page's fixed axis range fits
	// any graph size. A single isolated node stays at the origin.
	if maxAbs > 0 {
		factor := e.cfg.Scale / maxAbs
		for name, p := range positions {
			positions[name] = Position{X: p.X * factor, Y: p.Y * factor}
		}
	}
	return positions, nil
}

// indexedGraph presents the character graph to the optimizer with node and
// neighbour iteration in ascending index order. Map-backed graph types
// iterate in random order, which changes the force summation order between
// runs and with it the low bits of every coordinate.
type indexedGraph struct {
	nodes []gonumgraph.Node
	adj   [][]int64
}

func newIndexedGraph(n int) *indexedGraph {
	ig := &indexedGraph{
		nodes: make([]gonumgraph.Node, n),
		adj:   make([][]int64, n),
	}
	for i := range ig.nodes {
		ig.nodes[i] = simple.Node(int64(i))
	}
	return ig
}

// addEdge records an undirected edge. Input pairs are already deduplicated
// and free of self-loops by the graph build.
func (ig *indexedGraph) addEdge(u, v int64) {
	ig.adj[u] = append(ig.adj[u], v)
	ig.adj[v] = append(ig.adj[v], u)
}

func (ig *indexedGraph) sortNeighbours() {
	for _, neighbours := range ig.adj {
		sort.Slice(neighbours, func(i, j int) bool { return neighbours[i] < neighbours[j] })
	}
}

func (ig *indexedGraph) Node(id int64) gonumgraph.Node {
	if id < 0 || id >= int64(len(ig.nodes)) {
		return nil
	}
	return ig.nodes[id]
}

func (ig *indexedGraph) Nodes() gonumgraph.Nodes {
	return iterator.NewOrderedNodes(ig.nodes)
}

func (ig *indexedGraph) From(id int64) gonumgraph.Nodes {
	neighbours := ig.adj[id]
	out := make([]gonumgraph.Node, len(neighbours))
	for i, v := range neighbours {
		out[i] = ig.nodes[v]
	}
	return iterator.NewOrderedNodes(out)
}

func (ig *indexedGraph) HasEdgeBetween(xid, yid int64) bool {
	for _, v := range ig.adj[xid] {
		if v == yid {
			return true
		}
	}
	return false
}

func (ig *indexedGraph) Edge(uid, vid int64) gonumgraph.Edge {
	if !ig.HasEdgeBetween(uid, vid) {
		return nil
	}
	return simple.Edge{F: ig.nodes[uid], T: ig.nodes[vid]}
}
