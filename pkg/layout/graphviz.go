package layout

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/netchart/pkg/errors"
	"github.com/matzehuels/netchart/pkg/graph"
)

// DefaultEngine is the Graphviz engine used when none is set.
const DefaultEngine = "neato"

// Graphviz lays graphs out with a Graphviz engine. Positions are in points
// as reported by Graphviz; drawing normalizes them anyway.
type Graphviz struct {
	Engine string // neato, fdp, sfdp, circo, twopi or dot
}

// Layout implements Layouter.
func (l *Graphviz) Layout(ctx context.Context, src graph.Source) (graph.Positions, error) {
	engine := l.Engine
	if engine == "" {
		engine = DefaultEngine
	}
	nodes := src.Nodes()
	if len(nodes) == 0 {
		return graph.Positions{}, nil
	}

	out, err := renderDOT(ctx, engine, ToDOT(src))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "graphviz %s layout", engine)
	}
	coords, err := parsePositions(out)
	if err != nil {
		return nil, err
	}

	pos := make(graph.Positions, len(nodes))
	for i, n := range nodes {
		p, ok := coords[i]
		if !ok {
			return nil, errors.New(errors.ErrCodeInternal, "graphviz %s returned no position for %q", engine, n.ID)
		}
		pos[n.ID] = p
	}
	return pos, nil
}

// ToDOT renders src as DOT. Nodes are named n0, n1, ... in graph order so
// that arbitrary IDs never need quoting.
func ToDOT(src graph.Source) string {
	nodes := src.Nodes()
	index := make(map[string]int, len(nodes))

	kind, arrow := "graph", "--"
	if src.Directed() {
		kind, arrow = "digraph", "->"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s G {\n", kind)
	for i, n := range nodes {
		index[n.ID] = i
		fmt.Fprintf(&b, "  n%d;\n", i)
	}
	for _, e := range src.Edges() {
		from, okf := index[e.From]
		to, okt := index[e.To]
		if !okf || !okt {
			continue
		}
		fmt.Fprintf(&b, "  n%d %s n%d;\n", from, arrow, to)
	}
	b.WriteString("}\n")
	return b.String()
}

func renderDOT(ctx context.Context, engine, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.SetLayout(graphviz.Layout(engine)).Render(ctx, g, graphviz.XDOT, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	// Node statements start a line with the node name followed by its
	// attribute list, which Graphviz may wrap over several lines. Edge
	// statements start with "nX --" or "nX ->" and never match.
	nodeStmtRe = regexp.MustCompile(`(?m)^\s*n(\d+)\s*\[([^\]]*)\]`)
	posAttrRe  = regexp.MustCompile(`\bpos="([-+0-9.eE]+),([-+0-9.eE]+)!?"`)
)

// parsePositions extracts node positions from laid-out DOT, keyed by the
// node index encoded in the name.
func parsePositions(dot []byte) (map[int]r2.Vec, error) {
	out := make(map[int]r2.Vec)
	for _, m := range nodeStmtRe.FindAllSubmatch(dot, -1) {
		idx, err := strconv.Atoi(string(m[1]))
		if err != nil {
			continue
		}
		p := posAttrRe.FindSubmatch(m[2])
		if p == nil {
			continue
		}
		x, errx := strconv.ParseFloat(string(p[1]), 64)
		y, erry := strconv.ParseFloat(string(p[2]), 64)
		if errx != nil || erry != nil {
			return nil, errors.New(errors.ErrCodeInternal, "malformed graphviz position %q", p[0])
		}
		out[idx] = r2.Vec{X: x, Y: y}
	}
	return out, nil
}
