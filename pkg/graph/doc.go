// Package graph provides the graph model and serialization types for netchart.
//
// A [Graph] holds ordered nodes and edges, each carrying an arbitrary attribute
// map. Attributes are what styling parameters refer to when they name a column:
// a node attribute "weight" becomes the "weight" column of every node row.
//
// # Core Types
//
//   - [Graph]: Mutable node-link graph (directed or undirected)
//   - [View]: Read-only filtered view that hides self-loops and/or orphans
//   - [Node], [Edge]: Shared structural types
//   - [Pair]: (source, target) tuple identifying an edge
//   - [Positions]: Node ID to 2D coordinate map
//
// Both [Graph] and [View] satisfy [Source], which is all the drawing code
// needs. Drawing never mutates a graph.
//
// # Graph Serialization
//
// Graphs use a simple node-link format, as JSON or YAML:
//
//	{
//	  "directed": true,
//	  "nodes": [{"id": "a", "attrs": {"weight": 3}}, {"id": "b"}],
//	  "edges": [{"from": "a", "to": "b"}]
//	}
//
// Positions serialize as a JSON object of coordinate pairs:
//
//	{"a": [0.1, 0.4], "b": [0.9, 0.2]}
//
// Use [ReadGraphFile] and [ReadPositionsFile] to load them; the graph format is
// picked from the file extension.
package graph
