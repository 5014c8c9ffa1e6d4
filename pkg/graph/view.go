package graph

// ViewOptions selects what a View hides.
type ViewOptions struct {
	HideSelfLoops bool // drop edges whose endpoints coincide
	HideOrphans   bool // drop nodes without remaining edges
}

// View is a read-only filtered view over a Graph. It stores index sets and
// never mutates or copies the underlying graph's attribute maps.
//
// Self-loops are removed before orphans are computed, so a node whose only
// edges are self-loops disappears when both filters are on.
type View struct {
	g     *Graph
	nodes []int
	edges []int
}

// NewView builds a view of g.
func NewView(g *Graph, opts ViewOptions) *View {
	v := &View{g: g}

	degree := make(map[string]int, len(g.nodes))
	for i, e := range g.edges {
		if opts.HideSelfLoops && e.IsSelfLoop() {
			continue
		}
		v.edges = append(v.edges, i)
		degree[e.From]++
		degree[e.To]++
	}
	for i, n := range g.nodes {
		if opts.HideOrphans && degree[n.ID] == 0 {
			continue
		}
		v.nodes = append(v.nodes, i)
	}
	return v
}

// Directed reports whether the underlying graph is directed.
func (v *View) Directed() bool { return v.g.directed }

// Nodes returns the visible nodes in graph order.
func (v *View) Nodes() []Node {
	out := make([]Node, len(v.nodes))
	for i, idx := range v.nodes {
		out[i] = v.g.nodes[idx]
	}
	return out
}

// Edges returns the visible edges in graph order.
func (v *View) Edges() []Edge {
	out := make([]Edge, len(v.edges))
	for i, idx := range v.edges {
		out[i] = v.g.edges[idx]
	}
	return out
}

// NodeCount returns the number of visible nodes.
func (v *View) NodeCount() int { return len(v.nodes) }

// EdgeCount returns the number of visible edges.
func (v *View) EdgeCount() int { return len(v.edges) }
