// Package pkg provides the core libraries for netchart graph drawing.
//
// # Overview
//
// netchart turns network graphs into layered Vega-Lite charts: one line layer
// for edges, one for arrowheads on directed graphs, a point layer for nodes
// and a text layer for labels. The pkg directory is organized into three
// main areas:
//
//  1. Drawing - [graph], [geometry], [encoding], [chart], [draw]
//  2. Layout - [layout]
//  3. Infrastructure - [pipeline], [cache], [config], [server], [errors],
//     [observability], [buildinfo]
//
// # Architecture
//
// The typical data flow through netchart:
//
//	graph file (JSON / YAML)
//	         ↓
//	    [graph] package (nodes, edges, attributes, filtered views)
//	         ↓
//	    [layout] package (positions: force, circular, Graphviz)
//	         ↓
//	    [geometry] package (row-sets: nodes, edge polylines, arrows)
//	         ↓
//	    [encoding] + [draw] packages (styling bound to marks and channels)
//	         ↓
//	    [chart] package (Vega-Lite JSON)
//
// # Quick Start
//
// Draw a graph with default styling:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/netchart/pkg/draw"
//	    "github.com/matzehuels/netchart/pkg/encoding"
//	    "github.com/matzehuels/netchart/pkg/graph"
//	)
//
//	g, _ := graph.ReadGraphFile("network.json")
//	c, _ := draw.Draw(context.Background(), g, nil, draw.Options{
//	    Nodes:  draw.NodeStyle{Colour: encoding.Field("group")},
//	    Labels: draw.LabelStyle{Label: encoding.Field("node")},
//	})
//	spec, _ := json.Marshal(c)
//
// Build or restyle a single layer:
//
//	edges, _ := draw.Edges(ctx, draw.Input{Chart: c}, draw.EdgeStyle{
//	    Width:  encoding.Field("weight"),
//	    Colour: encoding.Text("black"),
//	})
//	c = c.WithLayer(edges)
//
// # Main Packages
//
// [graph] - Attributed graphs, node-link serialization, positions files, and
// views that hide self-loops or orphan nodes without copying.
//
// [geometry] - Row-set builders. Self-loops become circular polylines,
// curved edges follow their control points, and arrows are short segments
// ending at the target.
//
// [encoding] - Resolves styling values (constants or attribute references)
// against a row-set into mark properties and encoding channels.
//
// [chart] - Immutable Vega-Lite charts and layers.
//
// [draw] - Layer builders and the Draw entry point with sizing and padding.
//
// [layout] - Force-directed (gonum), circular and Graphviz layouts.
//
// [pipeline] - Layout and draw with caching, shared by the CLI and the API.
//
// [cache] - File, Redis and null caches with content-addressed keys.
//
// [config] - TOML config and style files.
//
// [server] - HTTP API over the pipeline.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/draw/...               # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/netchart/pkg/graph
// [geometry]: https://pkg.go.dev/github.com/matzehuels/netchart/pkg/geometry
// [encoding]: https://pkg.go.dev/github.com/matzehuels/netchart/pkg/encoding
// [chart]: https://pkg.go.dev/github.com/matzehuels/netchart/pkg/chart
// [draw]: https://pkg.go.dev/github.com/matzehuels/netchart/pkg/draw
// [layout]: https://pkg.go.dev/github.com/matzehuels/netchart/pkg/layout
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/netchart/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/netchart/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/netchart/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/netchart/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/netchart/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/netchart/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/netchart/pkg/buildinfo
package pkg
