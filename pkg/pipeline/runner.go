package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netchart/pkg/cache"
	"github.com/matzehuels/netchart/pkg/errors"
	"github.com/matzehuels/netchart/pkg/graph"
	"github.com/matzehuels/netchart/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeLayout = "layout"
	keyTypeChart  = "chart"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the layout → draw pipeline with caching. pos may be nil, in
// which case positions come from opts.Layout.
func (r *Runner) Execute(ctx context.Context, g *graph.Graph, pos graph.Positions, opts Options) (*Result, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeMissingContext, "a graph is required to draw")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{Positions: pos}
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	graphHash, err := hashGraph(g)
	if err != nil {
		return nil, err
	}
	result.GraphHash = graphHash

	chartKey, err := r.chartKey(graphHash, pos, opts)
	if err != nil {
		return nil, err
	}
	if !opts.Refresh {
		if data, hit := r.cacheGet(ctx, keyTypeChart, chartKey); hit {
			result.JSON = data
			result.CacheInfo.ChartHit = true
			r.Logger.Info("chart from cache", "nodes", g.NodeCount(), "edges", g.EdgeCount())
			return result, nil
		}
	}

	// Stage 1: Layout
	if pos == nil {
		layoutStart := time.Now()
		positions, hit, err := r.LayoutWithCacheInfo(ctx, g, opts)
		if err != nil {
			return nil, fmt.Errorf("layout: %w", err)
		}
		result.Positions = positions
		result.Stats.LayoutTime = time.Since(layoutStart)
		result.CacheInfo.LayoutHit = hit

		r.Logger.Info("computed layout",
			"layout", opts.Layout,
			"nodes", len(positions),
			"cached", hit,
			"duration", result.Stats.LayoutTime)
	}

	// Stage 2: Draw
	drawStart := time.Now()
	c, err := DrawChart(ctx, g, result.Positions, opts.Draw)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize chart")
	}
	result.Chart = c
	result.JSON = data
	result.Stats.DrawTime = time.Since(drawStart)

	r.Logger.Info("drew chart",
		"layers", len(c.Layers()),
		"bytes", len(data),
		"duration", result.Stats.DrawTime)

	r.cacheSet(ctx, keyTypeChart, chartKey, data)
	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// chartKey identifies a chart by graph content, layout source and options.
func (r *Runner) chartKey(graphHash string, pos graph.Positions, opts Options) (string, error) {
	optsHash, err := cache.HashJSON(opts.Draw)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash draw options")
	}
	keyOpts := cache.ChartKeyOpts{OptionsHash: optsHash}
	if pos == nil {
		keyOpts.Layout = opts.layoutID()
	} else if keyOpts.PositionsHash, err = cache.HashJSON(pos); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash positions")
	}
	return r.Keyer.ChartKey(graphHash, keyOpts), nil
}

// cacheGet reads key, retrying transient backend failures. Cache failures
// are logged and reported as misses; they never fail a run.
func (r *Runner) cacheGet(ctx context.Context, keyType, key string) ([]byte, bool) {
	var (
		data []byte
		hit  bool
	)
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		data, hit, err = r.Cache.Get(ctx, key)
		return err
	})
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) cacheSet(ctx context.Context, keyType, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func hashGraph(g *graph.Graph) (string, error) {
	data, err := graph.MarshalGraph(g)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "serialize graph")
	}
	return cache.Hash(data), nil
}
