package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netchart/pkg/cache"
	"github.com/matzehuels/netchart/pkg/draw"
	"github.com/matzehuels/netchart/pkg/errors"
	"github.com/matzehuels/netchart/pkg/graph"
	"github.com/matzehuels/netchart/pkg/layout"
	"github.com/matzehuels/netchart/pkg/observability"
)

func testGraph() *graph.Graph {
	g := graph.New(true)
	g.AddEdge("a", "b", graph.Attrs{"weight": 2})
	g.AddEdge("b", "c", nil)
	g.AddEdge("c", "a", nil)
	return g
}

func testRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	return NewRunner(c, nil, log.NewWithOptions(io.Discard, log.Options{}))
}

func TestValidateLayout(t *testing.T) {
	tests := []struct {
		layout  string
		wantErr bool
	}{
		{"force", false},
		{"circular", false},
		{"neato", false},
		{"dot", false},
		{"", false}, // default
		{"spring", true},
		{"Force", true}, // case-sensitive
	}

	for _, tt := range tests {
		err := ValidateLayout(tt.layout)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateLayout(%q) error = %v, wantErr %v", tt.layout, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Empty options should pass: %v", err)
	}
	if opts.Layout != DefaultLayout {
		t.Errorf("Layout should be %q, got %q", DefaultLayout, opts.Layout)
	}
	if opts.Draw.Width != draw.DefaultWidth || opts.Draw.Height != draw.DefaultHeight {
		t.Errorf("Draw size should default to %vx%v, got %vx%v",
			draw.DefaultWidth, draw.DefaultHeight, opts.Draw.Width, opts.Draw.Height)
	}
	if opts.Draw.Layouter == nil {
		t.Error("Draw layouter should be set")
	}

	bad := Options{Layout: "spring"}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Errorf("Unknown layout should fail with INVALID_LAYOUT, got %v", err)
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	r := testRunner(t)
	opts := Options{Layout: "circular"}

	first, err := r.Execute(ctx, testGraph(), nil, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.Chart == nil || len(first.JSON) == 0 {
		t.Fatal("first run should draw a chart")
	}
	if first.CacheInfo.ChartHit || first.CacheInfo.LayoutHit {
		t.Error("first run should miss the cache")
	}
	if len(first.Positions) != 3 {
		t.Errorf("expected 3 positions, got %d", len(first.Positions))
	}
	if first.Stats.NodeCount != 3 || first.Stats.EdgeCount != 3 {
		t.Errorf("unexpected stats: %+v", first.Stats)
	}

	var doc map[string]any
	if err := json.Unmarshal(first.JSON, &doc); err != nil {
		t.Fatalf("chart JSON is invalid: %v", err)
	}
	if layers, _ := doc["layer"].([]any); len(layers) != 3 {
		t.Errorf("directed graph should have 3 layers, got %d", len(layers))
	}

	second, err := r.Execute(ctx, testGraph(), nil, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.ChartHit {
		t.Error("second run should hit the chart cache")
	}
	if string(second.JSON) != string(first.JSON) {
		t.Error("cached chart differs from drawn chart")
	}
	if second.GraphHash != first.GraphHash {
		t.Error("graph hash should be stable")
	}

	// Different options miss the chart cache but reuse positions.
	third, err := r.Execute(ctx, testGraph(), nil, Options{Layout: "circular", Draw: draw.Options{Width: 200, Height: 200}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if third.CacheInfo.ChartHit {
		t.Error("different options should miss the chart cache")
	}
	if !third.CacheInfo.LayoutHit {
		t.Error("same graph and layout should hit the layout cache")
	}
}

func TestExecuteRefresh(t *testing.T) {
	ctx := context.Background()
	r := testRunner(t)
	opts := Options{Layout: "circular"}

	if _, err := r.Execute(ctx, testGraph(), nil, opts); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	opts.Refresh = true
	res, err := r.Execute(ctx, testGraph(), nil, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.CacheInfo.ChartHit || res.CacheInfo.LayoutHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestExecuteWithPositions(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, log.NewWithOptions(io.Discard, log.Options{}))
	pos := graph.Positions{"a": {X: 0, Y: 0}, "b": {X: 1, Y: 0}, "c": {X: 0, Y: 1}}

	res, err := r.Execute(ctx, testGraph(), pos, Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stats.LayoutTime != 0 {
		t.Error("supplied positions should skip the layout stage")
	}

	_, err = r.Execute(ctx, testGraph(), graph.Positions{"a": {}}, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("missing positions should fail with INVALID_INPUT, got %v", err)
	}

	_, err = r.Execute(ctx, nil, nil, Options{})
	if !errors.Is(err, errors.ErrCodeMissingContext) {
		t.Errorf("nil graph should fail with MISSING_CONTEXT, got %v", err)
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	mu      sync.Mutex
	layouts int
	draws   int
	layers  int
}

func (h *countingHooks) OnLayoutComplete(context.Context, string, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.layouts++
}

func (h *countingHooks) OnDrawComplete(_ context.Context, layers int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.draws++
	h.layers = layers
}

func TestExecuteHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	r := testRunner(t)
	for range 2 {
		if _, err := r.Execute(context.Background(), testGraph(), nil, Options{Layout: "circular"}); err != nil {
			t.Fatalf("Execute: %v", err)
		}
	}
	if hooks.layouts != 1 || hooks.draws != 1 {
		t.Errorf("expected one layout and one draw, got %d and %d", hooks.layouts, hooks.draws)
	}
	if hooks.layers != 3 {
		t.Errorf("expected 3 layers, got %d", hooks.layers)
	}
}

func TestLayoutID(t *testing.T) {
	def := Options{Layout: "force"}
	tuned := Options{Layout: "force", Force: layout.Force{Seed: 7}}
	explicit := Options{Layout: "force", Force: layout.Force{Updates: layout.DefaultUpdates}}

	if def.layoutID() == tuned.layoutID() {
		t.Error("force parameters should change the layout id")
	}
	if def.layoutID() != explicit.layoutID() {
		t.Errorf("explicit defaults should match zero parameters: %q vs %q", def.layoutID(), explicit.layoutID())
	}
	circ := Options{Layout: "circular", Force: layout.Force{Seed: 7}}
	if circ.layoutID() != "circular" {
		t.Errorf("non-force layouts ignore force parameters, got %q", circ.layoutID())
	}
}
