// Package pipeline provides the drawing pipeline shared by the CLI and the
// HTTP API.
//
// The pipeline consists of two stages:
//
//  1. Layout: compute node positions when the caller supplies none
//  2. Draw: build the layered Vega-Lite chart and serialize it
//
// Both stages are cached through a [cache.Cache]: positions by graph content
// and layout name, charts by graph content, positions and drawing options.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, g, nil, pipeline.Options{
//	    Layout: "circular",
//	    Draw:   draw.Options{Width: 600, Height: 400},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.JSON)
//
// Run the layout stage alone:
//
//	pos, err := runner.Layout(ctx, g, opts)
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/netchart/pkg/chart"
	"github.com/matzehuels/netchart/pkg/draw"
	"github.com/matzehuels/netchart/pkg/graph"
	"github.com/matzehuels/netchart/pkg/layout"
)

// DefaultLayout is the layout used when none is configured.
const DefaultLayout = layout.NameForce

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the drawing pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout names the layouter used when no positions are given.
	Layout string `json:"layout,omitempty"`

	// Force holds the force layout parameters. Ignored by other layouts.
	Force layout.Force `json:"force,omitzero"`

	// Draw configures the chart.
	Draw draw.Options `json:"draw"`

	// Refresh recomputes every stage and overwrites cached entries.
	Refresh bool `json:"refresh,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Chart is the drawn chart. It is nil when JSON came from the cache.
	Chart *chart.Chart

	// JSON is the serialized Vega-Lite specification.
	JSON []byte

	// Positions are the raw node positions used, when they were computed or
	// supplied for this run.
	Positions graph.Positions

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LayoutTime time.Duration
	DrawTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether positions came from cache
	ChartHit  bool // Whether the chart came from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateLayout checks that a layout name is known.
func ValidateLayout(name string) error {
	_, err := layout.ByName(name)
	return err
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Layout == "" {
		o.Layout = DefaultLayout
	}
	l, err := o.layouter()
	if err != nil {
		return err
	}
	if o.Draw.Layouter == nil {
		o.Draw.Layouter = l
	}
	o.Draw.SetDefaults()
	o.validated = true
	return nil
}

func (o *Options) layouter() (layout.Layouter, error) {
	if o.Layout == layout.NameForce {
		f := o.Force
		return &f, nil
	}
	return layout.ByName(o.Layout)
}

// layoutID identifies the layout and its parameters in cache keys.
func (o *Options) layoutID() string {
	if o.Layout != layout.NameForce {
		return o.Layout
	}
	f := o.Force
	f.SetDefaults()
	return fmt.Sprintf("%s(%d,%g,%g,%g,%d)", o.Layout, f.Updates, f.Repulsion, f.Rate, f.Theta, f.Seed)
}
