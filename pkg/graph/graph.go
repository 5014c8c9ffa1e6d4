package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/netchart/pkg/errors"
)

// =============================================================================
// Wire Format
// =============================================================================

// Format identifies a graph file encoding.
type Format string

// Supported graph file formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Document is the canonical node-link serialization of a Graph.
// Used for files, API request bodies and cache keys.
type Document struct {
	Directed bool   `json:"directed" yaml:"directed"`
	Nodes    []Node `json:"nodes" yaml:"nodes"`
	Edges    []Edge `json:"edges" yaml:"edges"`
}

// FromGraph converts a Graph to its wire form.
func FromGraph(g *Graph) Document {
	return Document{
		Directed: g.Directed(),
		Nodes:    g.Nodes(),
		Edges:    g.Edges(),
	}
}

// ToGraph builds a Graph from the wire form. Node IDs must be non-empty.
// Edges may reference nodes not listed in Nodes.
func (d Document) ToGraph() (*Graph, error) {
	g := New(d.Directed)
	for i, n := range d.Nodes {
		if n.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "node %d: empty id", i)
		}
		g.AddNode(n.ID, n.Attrs)
	}
	for i, e := range d.Edges {
		if e.From == "" || e.To == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "edge %d: empty endpoint", i)
		}
		g.AddEdge(e.From, e.To, e.Attrs)
	}
	return g, nil
}

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a Graph to indented JSON bytes.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf, FormatJSON); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalGraph decodes JSON bytes into a Graph.
func UnmarshalGraph(data []byte) (*Graph, error) {
	return ReadGraph(bytes.NewReader(data), FormatJSON)
}

// WriteGraph encodes a Graph to w in the given format.
func WriteGraph(g *Graph, w io.Writer, format Format) error {
	doc := FromGraph(g)
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown graph format %q", format)
}

// ReadGraph decodes a graph from r in the given format.
func ReadGraph(r io.Reader, format Format) (*Graph, error) {
	var doc Document
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml graph")
		}
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json graph")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown graph format %q", format)
	}
	return doc.ToGraph()
}

// ReadGraphFile reads a graph file. The format follows the extension:
// .yaml and .yml are YAML, anything else is JSON.
func ReadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f, FormatFromPath(path))
}

// WriteGraphFile writes a graph file in the format implied by its extension.
// The file is created with 0644 permissions.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f, FormatFromPath(path))
}

// FormatFromPath picks a Format from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}
