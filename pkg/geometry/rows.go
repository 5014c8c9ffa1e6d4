package geometry

import (
	"github.com/matzehuels/netchart/pkg/errors"
	"github.com/matzehuels/netchart/pkg/graph"
	"github.com/matzehuels/netchart/pkg/table"
)

// Source is the graph surface read by the row builders.
type Source = graph.Source

// Reserved column names.
const (
	ColNode   = "node"
	ColEdge   = "edge"
	ColOrder  = "order"
	ColSource = "source"
	ColTarget = "target"
	ColPair   = "pair"
	ColX      = "x"
	ColY      = "y"
)

var (
	// NodeColumns are the columns every node row carries.
	NodeColumns = []string{ColNode, ColX, ColY}
	// EdgeColumns are the columns every edge and arrow row carries.
	EdgeColumns = []string{ColEdge, ColOrder, ColSource, ColTarget, ColPair, ColX, ColY}
)

// NodeRows builds one row per node, in source order.
func NodeRows(src Source, pos graph.Positions) (*table.Table, error) {
	nodes := src.Nodes()
	if err := errors.ValidateReserved("node", NodeColumns, graph.NodeAttrNames(nodes)); err != nil {
		return nil, err
	}

	t := table.New(NodeColumns...)
	for _, n := range nodes {
		p, ok := pos[n.ID]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "node %q has no position", n.ID)
		}
		row := table.Row{ColNode: n.ID, ColX: p.X, ColY: p.Y}
		for k, v := range n.Attrs {
			row[k] = v
		}
		t.Append(row)
	}
	return t, nil
}

// edgeRow builds one row of edge i at (x, y).
func edgeRow(i, order int, e graph.Edge, x, y float64) table.Row {
	row := table.Row{
		ColEdge:   i,
		ColOrder:  order,
		ColSource: e.From,
		ColTarget: e.To,
		ColPair:   e.Pair(),
		ColX:      x,
		ColY:      y,
	}
	for k, v := range e.Attrs {
		row[k] = v
	}
	return row
}

func validateEdges(src Source, pos graph.Positions) ([]graph.Edge, error) {
	edges := src.Edges()
	if err := errors.ValidateReserved("edge", EdgeColumns, graph.EdgeAttrNames(edges)); err != nil {
		return nil, err
	}
	for _, e := range edges {
		for _, id := range [2]string{e.From, e.To} {
			if _, ok := pos[id]; !ok {
				return nil, errors.New(errors.ErrCodeInvalidInput, "node %q has no position", id)
			}
		}
	}
	return edges, nil
}
