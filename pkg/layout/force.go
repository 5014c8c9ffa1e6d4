package layout

import (
	"cmp"
	"context"
	"math/rand/v2"
	"slices"

	gograph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	gonumlayout "gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/matzehuels/netchart/pkg/graph"
)

// Default force parameters.
const (
	DefaultUpdates   = 30
	DefaultRepulsion = 1.0
	DefaultRate      = 0.05
	DefaultTheta     = 0.2
	DefaultSeed      = 1
)

// Force is an Eades spring-embedder layout. Edge direction, parallel edges
// and self-loops are ignored.
type Force struct {
	Updates   int     // iterations (default 30)
	Repulsion float64 // global repulsion strength (default 1)
	Rate      float64 // gradient descent rate (default 0.05)
	Theta     float64 // Barnes-Hut approximation constant (default 0.2)
	Seed      uint64  // seed of the initial placement (default 1)
}

// SetDefaults fills zero fields with the package defaults.
func (f *Force) SetDefaults() {
	if f.Updates == 0 {
		f.Updates = DefaultUpdates
	}
	if f.Repulsion == 0 {
		f.Repulsion = DefaultRepulsion
	}
	if f.Rate == 0 {
		f.Rate = DefaultRate
	}
	if f.Theta == 0 {
		f.Theta = DefaultTheta
	}
	if f.Seed == 0 {
		f.Seed = DefaultSeed
	}
}

// Layout implements Layouter.
func (f *Force) Layout(ctx context.Context, src graph.Source) (graph.Positions, error) {
	opts := *f
	opts.SetDefaults()

	nodes := src.Nodes()
	if len(nodes) < 2 {
		return circle(nodes, 1), nil
	}

	g, ids := toGonum(nodes, src.Edges())
	eades := gonumlayout.EadesR2{
		Updates:   opts.Updates,
		Repulsion: opts.Repulsion,
		Rate:      opts.Rate,
		Theta:     opts.Theta,
		Src:       rand.NewPCG(opts.Seed, opts.Seed),
	}
	optimizer := gonumlayout.NewOptimizerR2(g, eades.Update)
	for optimizer.Update() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	pos := make(graph.Positions, len(nodes))
	for i, n := range nodes {
		pos[n.ID] = optimizer.Coord2(ids[i])
	}
	return pos, nil
}

// orderedGraph iterates nodes and neighbours in ID order so that the random
// initial placement and force accumulation are reproducible.
type orderedGraph struct {
	*simple.UndirectedGraph
	nodes []gograph.Node
}

func (g orderedGraph) Nodes() gograph.Nodes {
	return iterator.NewOrderedNodes(g.nodes)
}

func (g orderedGraph) From(id int64) gograph.Nodes {
	to := gograph.NodesOf(g.UndirectedGraph.From(id))
	slices.SortFunc(to, func(a, b gograph.Node) int { return cmp.Compare(a.ID(), b.ID()) })
	return iterator.NewOrderedNodes(to)
}

// toGonum converts nodes and edges to an undirected simple graph. The i-th
// returned ID belongs to nodes[i].
func toGonum(nodes []graph.Node, edges []graph.Edge) (orderedGraph, []int64) {
	g := orderedGraph{UndirectedGraph: simple.NewUndirectedGraph()}
	index := make(map[string]int64, len(nodes))
	ids := make([]int64, len(nodes))
	for i, n := range nodes {
		node := simple.Node(i)
		g.AddNode(node)
		g.nodes = append(g.nodes, node)
		index[n.ID] = node.ID()
		ids[i] = node.ID()
	}
	for _, e := range edges {
		from, okf := index[e.From]
		to, okt := index[e.To]
		if !okf || !okt || from == to {
			continue
		}
		g.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
	}
	return g, ids
}
