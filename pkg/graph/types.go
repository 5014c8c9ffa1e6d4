package graph

import (
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// Source - What Drawing Code Reads
// =============================================================================

// Source is the read-only graph surface consumed by geometry and layouts.
// Implemented by *Graph and *View.
type Source interface {
	Directed() bool
	Nodes() []Node
	Edges() []Edge
}

// =============================================================================
// Node / Edge
// =============================================================================

// Attrs holds arbitrary attributes attached to a node or edge.
type Attrs map[string]any

// Node is a graph node with a string identifier.
type Node struct {
	ID    string `json:"id" yaml:"id"`
	Attrs Attrs  `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// Edge connects two nodes. From == To is a self-loop.
type Edge struct {
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
	Attrs Attrs  `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// IsSelfLoop reports whether the edge starts and ends at the same node.
func (e Edge) IsSelfLoop() bool { return e.From == e.To }

// Pair returns the (source, target) pair of the edge.
func (e Edge) Pair() Pair { return Pair{Source: e.From, Target: e.To} }

// =============================================================================
// Pair
// =============================================================================

// Pair identifies an edge by its endpoints. It serializes as ["a","b"].
type Pair struct {
	Source string
	Target string
}

// String returns "source->target".
func (p Pair) String() string { return p.Source + "->" + p.Target }

// MarshalJSON encodes the pair as a two-element array.
func (p Pair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{p.Source, p.Target})
}

// UnmarshalJSON decodes a two-element array.
func (p *Pair) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("pair: %w", err)
	}
	if len(arr) != 2 {
		return fmt.Errorf("pair: want 2 elements, got %d", len(arr))
	}
	p.Source, p.Target = arr[0], arr[1]
	return nil
}

// UnmarshalYAML decodes a two-element sequence.
func (p *Pair) UnmarshalYAML(value *yaml.Node) error {
	var arr []string
	if err := value.Decode(&arr); err != nil {
		return fmt.Errorf("pair: %w", err)
	}
	if len(arr) != 2 {
		return fmt.Errorf("pair: want 2 elements, got %d", len(arr))
	}
	p.Source, p.Target = arr[0], arr[1]
	return nil
}

// MarshalYAML encodes the pair as a two-element sequence.
func (p Pair) MarshalYAML() (any, error) {
	return []string{p.Source, p.Target}, nil
}

// =============================================================================
// Graph
// =============================================================================

// Graph is an ordered node-link graph. Parallel edges and self-loops are allowed.
// Node and edge order is insertion order and is preserved by every row builder.
type Graph struct {
	directed bool
	nodes    []Node
	edges    []Edge
	index    map[string]int
}

// New creates an empty graph.
func New(directed bool) *Graph {
	return &Graph{directed: directed, index: make(map[string]int)}
}

// Directed reports whether edges have a direction.
func (g *Graph) Directed() bool { return g.directed }

// SetDirected overrides the directed flag.
func (g *Graph) SetDirected(directed bool) { g.directed = directed }

// AddNode adds a node, or merges attrs into an existing node with the same ID.
func (g *Graph) AddNode(id string, attrs Attrs) {
	if g.index == nil {
		g.index = make(map[string]int)
	}
	if i, ok := g.index[id]; ok {
		if len(attrs) > 0 && g.nodes[i].Attrs == nil {
			g.nodes[i].Attrs = make(Attrs, len(attrs))
		}
		for k, v := range attrs {
			g.nodes[i].Attrs[k] = v
		}
		return
	}
	g.index[id] = len(g.nodes)
	g.nodes = append(g.nodes, Node{ID: id, Attrs: cloneAttrs(attrs)})
}

// AddEdge appends an edge. Unknown endpoints are added as attribute-less nodes.
func (g *Graph) AddEdge(from, to string, attrs Attrs) {
	if _, ok := g.index[from]; !ok {
		g.AddNode(from, nil)
	}
	if _, ok := g.index[to]; !ok {
		g.AddNode(to, nil)
	}
	g.edges = append(g.edges, Edge{From: from, To: to, Attrs: cloneAttrs(attrs)})
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// HasNode reports whether a node with the given ID exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Nodes returns the nodes in insertion order. The slice is a copy.
func (g *Graph) Nodes() []Node { return slices.Clone(g.nodes) }

// Edges returns the edges in insertion order. The slice is a copy.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// =============================================================================
// Attribute helpers
// =============================================================================

// NodeAttrNames returns the sorted union of attribute names over nodes.
func NodeAttrNames(nodes []Node) []string {
	seen := make(map[string]struct{})
	for _, n := range nodes {
		for k := range n.Attrs {
			seen[k] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// EdgeAttrNames returns the sorted union of attribute names over edges.
func EdgeAttrNames(edges []Edge) []string {
	seen := make(map[string]struct{})
	for _, e := range edges {
		for k := range e.Attrs {
			seen[k] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func cloneAttrs(a Attrs) Attrs {
	if len(a) == 0 {
		return nil
	}
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
