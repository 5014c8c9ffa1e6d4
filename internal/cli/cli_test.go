package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/netchart/pkg/encoding"
	"github.com/matzehuels/netchart/pkg/errors"
	"github.com/matzehuels/netchart/pkg/graph"
)

const testGraph = `{
  "directed": true,
  "nodes": [
    {"id": "a", "attrs": {"group": 1}},
    {"id": "b", "attrs": {"group": 2}},
    {"id": "c", "attrs": {"group": 3}},
    {"id": "lonely"}
  ],
  "edges": [
    {"from": "a", "to": "b", "attrs": {"weight": 2}},
    {"from": "b", "to": "c", "attrs": {"weight": 1}}
  ]
}`

// setup writes the test graph into a fresh working directory and returns its
// path. Running from the directory keeps a stray netchart.toml out of tests.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "graph.json")
	if err := os.WriteFile(path, []byte(testGraph), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func readSpec(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var spec map[string]any
	if err := json.Unmarshal(data, &spec); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return spec
}

func layerCount(spec map[string]any) int {
	layers, _ := spec["layer"].([]any)
	return len(layers)
}

func TestDrawCommand(t *testing.T) {
	input := setup(t)

	if err := run(t, "draw", input, "--no-cache", "--layout", "circular", "--label", "@node"); err != nil {
		t.Fatalf("draw: %v", err)
	}
	spec := readSpec(t, filepath.Join(filepath.Dir(input), "graph.vl.json"))
	if got := layerCount(spec); got != 4 {
		t.Errorf("expected edge, arrow, node and label layers, got %d", got)
	}
	if spec["width"] != 500.0 || spec["height"] != 300.0 {
		t.Errorf("default size should be 500x300, got %vx%v", spec["width"], spec["height"])
	}
}

func TestDrawCommandFlags(t *testing.T) {
	input := setup(t)
	out := filepath.Join(t.TempDir(), "chart.json")

	err := run(t, "draw", input, "--no-cache", "-l", "circular", "-o", out,
		"--undirected", "--hide-orphans", "--width", "400", "--height", "400",
		"--edge-width", "@weight", "--node-colour", "@group", "--node-cmap", "viridis")
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	spec := readSpec(t, out)
	if got := layerCount(spec); got != 2 {
		t.Errorf("undirected graph without labels should have 2 layers, got %d", got)
	}
	if spec["width"] != 400.0 {
		t.Errorf("width = %v, want 400", spec["width"])
	}
}

func TestDrawCommandStyleFile(t *testing.T) {
	input := setup(t)
	style := filepath.Join(filepath.Dir(input), "style.toml")
	content := "[style]\nwidth = 320\nheight = 320\n\n[style.labels]\nlabel = \"@node\"\n"
	if err := os.WriteFile(style, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "chart.json")

	if err := run(t, "draw", input, "--no-cache", "-l", "circular", "--style", style, "--height", "200", "-o", out); err != nil {
		t.Fatalf("draw: %v", err)
	}
	spec := readSpec(t, out)
	if spec["width"] != 320.0 || spec["height"] != 200.0 {
		t.Errorf("flags should override the style file, got %vx%v", spec["width"], spec["height"])
	}
	if got := layerCount(spec); got != 4 {
		t.Errorf("style label should add a label layer, got %d layers", got)
	}
}

func TestDrawCommandLabelNone(t *testing.T) {
	input := setup(t)
	style := filepath.Join(filepath.Dir(input), "style.toml")
	if err := os.WriteFile(style, []byte("[style.labels]\nlabel = \"@node\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "chart.json")

	if err := run(t, "draw", input, "--no-cache", "-l", "circular", "--style", style, "--label", "none", "-o", out); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if got := layerCount(readSpec(t, out)); got != 3 {
		t.Errorf("--label none should drop the label layer, got %d layers", got)
	}
}

func TestDrawCommandErrors(t *testing.T) {
	input := setup(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing file", []string{"draw", "missing.json", "--no-cache"}, errors.ErrCodeFileNotFound},
		{"unknown layout", []string{"draw", input, "--no-cache", "-l", "spring"}, errors.ErrCodeInvalidLayout},
		{"unresolved attribute", []string{"draw", input, "--no-cache", "-l", "circular", "--edge-colour", "@missing"}, errors.ErrCodeUnresolvedReference},
		{"cmap on categorical", []string{"draw", input, "--no-cache", "-l", "circular", "--node-colour", "@node", "--node-cmap", "viridis"}, errors.ErrCodeInvalidType},
		{"missing style", []string{"draw", input, "--no-cache", "--style", "nope.toml"}, errors.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}

	if err := run(t, "draw", input, "--directed", "--undirected"); err == nil {
		t.Error("--directed and --undirected should be mutually exclusive")
	}
}

func TestLayoutCommand(t *testing.T) {
	input := setup(t)

	if err := run(t, "layout", input, "--no-cache", "--layout", "circular"); err != nil {
		t.Fatalf("layout: %v", err)
	}
	posPath := filepath.Join(filepath.Dir(input), "graph.positions.json")
	pos, err := graph.ReadPositionsFile(posPath)
	if err != nil {
		t.Fatalf("read positions: %v", err)
	}
	if len(pos) != 4 {
		t.Errorf("expected 4 positions, got %d", len(pos))
	}

	out := filepath.Join(t.TempDir(), "chart.json")
	if err := run(t, "draw", input, "--no-cache", "--positions", posPath, "-o", out); err != nil {
		t.Fatalf("draw with positions: %v", err)
	}
	if got := layerCount(readSpec(t, out)); got != 3 {
		t.Errorf("expected 3 layers, got %d", got)
	}
}

func TestConfigFile(t *testing.T) {
	input := setup(t)
	content := "[layout]\nname = \"circular\"\n\n[cache]\nbackend = \"none\"\n\n[style]\nwidth = 250\nheight = 250\n"
	if err := os.WriteFile("netchart.toml", []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "chart.json")
	if err := run(t, "draw", input, "-o", out); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if spec := readSpec(t, out); spec["width"] != 250.0 {
		t.Errorf("config style should apply, got width %v", spec["width"])
	}

	if err := os.WriteFile("bad.toml", []byte("[cache]\nbackend = \"mongo\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := run(t, "draw", input, "--config", "bad.toml"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad config should fail with INVALID_INPUT, got %v", err)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		kind encoding.Kind
	}{
		{"3", encoding.KindNumber},
		{"0.5", encoding.KindNumber},
		{"none", encoding.KindNone},
		{"@weight", encoding.KindField},
		{"red", encoding.KindText},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in).Kind(); got != tt.kind {
			t.Errorf("parseValue(%q).Kind() = %v, want %v", tt.in, got, tt.kind)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output, input, suffix, want string
	}{
		{"", "graphs/net.json", ".vl.json", "graphs/net.vl.json"},
		{"", "net.yaml", ".positions.json", "net.positions.json"},
		{"out.json", "net.json", ".vl.json", "out.json"},
		{"-", "net.json", ".vl.json", "-"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.output, tt.input, tt.suffix); got != tt.want {
			t.Errorf("outputPath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	out := execute(t, "--version")
	if !strings.HasPrefix(out, appName+" version dev\n") {
		t.Errorf("unexpected version output:\n%s", out)
	}
}
