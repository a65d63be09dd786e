package explorer

import (
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	pkgerrors "relgraph/pkg/errors"
)

// UI event types sent by the browser.
const (
	EventHover  = "hover"
	EventTap    = "tap"
	EventSearch = "search"
)

// Message types pushed to the browser.
const (
	MessageSnapshot   = "snapshot"
	MessageTooltip    = "tooltip"
	MessageSelection  = "selection"
	MessageVisibility = "visibility"
)

// Event is a single UI event from the browser. Node and Term are empty when
// the event targets the background; Edge is set for edge hovers.
type Event struct {
	Type string `json:"type"`
	Node string `json:"node,omitempty"`
	Edge *int   `json:"edge,omitempty"`
	Term string `json:"term,omitempty"`
}

// Message is a push update to the browser. Exactly one payload field is set,
// matching Type.
type Message struct {
	Type       string      `json:"type"`
	Snapshot   *Document   `json:"snapshot,omitempty"`
	Tooltip    *Tooltip    `json:"tooltip,omitempty"`
	Selection  *Selection  `json:"selection,omitempty"`
	Visibility *Visibility `json:"visibility,omitempty"`
}

// Tooltip carries hover details for a node or an edge. Show is false when
// the cursor left the target.
type Tooltip struct {
	Show      bool    `json:"show"`
	Node      string  `json:"node,omitempty"`
	Degree    int     `json:"degree,omitempty"`
	Relations string  `json:"relations,omitempty"`
	Relation  string  `json:"relation,omitempty"`
	Weight    float64 `json:"weight,omitempty"`
	Book      int     `json:"book,omitempty"`
}

// Selection carries the highlight set after a tap: the selected node, its
// direct neighbours, and the indices of incident edges. All fields are empty
// when the selection was cleared.
type Selection struct {
	Selected string   `json:"selected"`
	Nodes    []string `json:"nodes"`
	Edges    []int    `json:"edges"`
}

// Visibility carries the set of node IDs matching the current search term.
type Visibility struct {
	Term  string   `json:"term"`
	Nodes []string `json:"nodes"`
}

// Session is the per-connection interactive state. The only state beyond
// the shared immutable snapshot is which node, if any, is selected.
type Session struct {
	id       string
	svc      *Service
	selected string
	logger   *zap.Logger
}

// NewSession creates an independent session over the shared snapshot.
func (s *Service) NewSession() *Session {
	id := uuid.New().String()
	return &Session{
		id:     id,
		svc:    s,
		logger: s.logger.With(zap.String("sessionID", id)),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Selected returns the currently selected node name, empty when none.
func (s *Session) Selected() string {
	return s.selected
}

// Snapshot returns the initial document message for this session.
func (s *Session) Snapshot() Message {
	doc := s.svc.Document()
	return Message{Type: MessageSnapshot, Snapshot: &doc}
}

// Handle processes one UI event synchronously and returns the push update.
func (s *Session) Handle(event Event) (Message, error) {
	if s.svc.metrics != nil {
		s.svc.metrics.RecordUIEvent(event.Type)
	}

	switch event.Type {
	case EventHover:
		return s.handleHover(event), nil
	case EventTap:
		return s.handleTap(event), nil
	case EventSearch:
		return s.handleSearch(event), nil
	default:
		return Message{}, pkgerrors.NewValidation("unknown event type: " + event.Type)
	}
}

// handleHover resolves tooltip content. Hover has no side effect on the
// selection state; an unknown target hides the tooltip.
func (s *Session) handleHover(event Event) Message {
	if event.Edge != nil {
		edges := s.svc.graph.Interactions()
		idx := *event.Edge
		if idx < 0 || idx >= len(edges) {
			return Message{Type: MessageTooltip, Tooltip: &Tooltip{Show: false}}
		}
		edge := edges[idx]
		return Message{Type: MessageTooltip, Tooltip: &Tooltip{
			Show:     true,
			Relation: edge.Relation,
			Weight:   edge.Weight,
			Book:     edge.Book,
		}}
	}

	character, ok := s.svc.graph.Character(event.Node)
	if !ok {
		return Message{Type: MessageTooltip, Tooltip: &Tooltip{Show: false}}
	}
	return Message{Type: MessageTooltip, Tooltip: &Tooltip{
		Show:      true,
		Node:      character.Name,
		Degree:    character.Degree,
		Relations: character.Relations,
	}}
}

// handleTap moves the selection state machine: a known node selects it and
// highlights it with its direct neighbours and incident edges; anything
// else (background tap, unknown node) clears the selection.
func (s *Session) handleTap(event Event) Message {
	if event.Node == "" || !s.svc.graph.Has(event.Node) {
		s.selected = ""
		return Message{Type: MessageSelection, Selection: &Selection{
			Nodes: []string{},
			Edges: []int{},
		}}
	}

	s.selected = event.Node
	highlight := append([]string{event.Node}, s.svc.graph.Neighbors(event.Node)...)
	edges := s.svc.graph.IncidentEdges(event.Node)
	if edges == nil {
		edges = []int{}
	}
	return Message{Type: MessageSelection, Selection: &Selection{
		Selected: event.Node,
		Nodes:    dedupe(highlight),
		Edges:    edges,
	}}
}

// handleSearch matches the term case-insensitively against node names.
// An empty term shows every node.
func (s *Session) handleSearch(event Event) Message {
	term := strings.ToLower(strings.TrimSpace(event.Term))
	characters := s.svc.graph.Characters()

	visible := make([]string, 0, len(characters))
	for _, c := range characters {
		if term == "" || strings.Contains(strings.ToLower(c.Name), term) {
			visible = append(visible, c.Name)
		}
	}
	return Message{Type: MessageVisibility, Visibility: &Visibility{
		Term:  event.Term,
		Nodes: visible,
	}}
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
