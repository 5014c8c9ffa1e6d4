package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/netchart/pkg/cache"
	"github.com/matzehuels/netchart/pkg/chart"
	"github.com/matzehuels/netchart/pkg/draw"
	"github.com/matzehuels/netchart/pkg/graph"
	"github.com/matzehuels/netchart/pkg/observability"
)

// =============================================================================
// Layout
// =============================================================================

// LayoutWithCacheInfo computes positions for g with caching and returns cache
// hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, g *graph.Graph, opts Options) (graph.Positions, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	graphHash, err := hashGraph(g)
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.LayoutKey(graphHash, cache.LayoutKeyOpts{Layout: opts.layoutID()})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit := r.cacheGet(ctx, keyTypeLayout, cacheKey); hit {
			var pos graph.Positions
			if err := json.Unmarshal(data, &pos); err == nil && pos.Validate(g) == nil {
				return pos, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
	}

	pos, err := ComputeLayout(ctx, g, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(pos); err == nil {
		r.cacheSet(ctx, keyTypeLayout, cacheKey, data)
	}
	return pos, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, g *graph.Graph, opts Options) (graph.Positions, error) {
	pos, _, err := r.LayoutWithCacheInfo(ctx, g, opts)
	return pos, err
}

// ComputeLayout runs the layouter selected by opts without caching.
func ComputeLayout(ctx context.Context, src graph.Source, opts Options) (graph.Positions, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	l, err := opts.layouter()
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Layout, len(src.Nodes()))
	start := time.Now()
	pos, err := l.Layout(ctx, src)
	hooks.OnLayoutComplete(ctx, opts.Layout, time.Since(start), err)
	return pos, err
}

// =============================================================================
// Draw
// =============================================================================

// DrawChart draws g without caching.
func DrawChart(ctx context.Context, g *graph.Graph, pos graph.Positions, opts draw.Options) (*chart.Chart, error) {
	hooks := observability.Pipeline()
	hooks.OnDrawStart(ctx, g.NodeCount(), g.EdgeCount())
	start := time.Now()

	c, err := draw.Draw(ctx, g, pos, opts)

	layers := 0
	if c != nil {
		layers = len(c.Layers())
	}
	hooks.OnDrawComplete(ctx, layers, time.Since(start), err)
	return c, err
}
