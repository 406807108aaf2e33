package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackgantt/pkg/cache"
	"github.com/matzehuels/stackgantt/pkg/observability"
	"github.com/matzehuels/stackgantt/pkg/task"
)

// Result contains the outputs of a pipeline run.
type Result struct {
	// TasksHash is the content hash of the task set.
	TasksHash string

	// Layout is the computed geometry. It is empty for dependency graphs.
	Layout Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TaskCount   int
	VisibleRows int
	TickCount   int
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// Runner encapsulates pipeline execution with caching.
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

// Execute runs layout and render for snap with caching.
func (r *Runner) Execute(ctx context.Context, snap task.Snapshot, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		TasksHash: cache.HashJSON(snap.Tasks()),
		Artifacts: make(map[string][]byte),
	}
	result.Stats.TaskCount = snap.Len()

	if opts.IsDeps() {
		renderStart := time.Now()
		artifacts, hit, err := r.RenderDepsWithCacheInfo(ctx, snap, result.TasksHash, opts)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		result.Artifacts = artifacts
		result.Stats.RenderTime = time.Since(renderStart)
		result.CacheInfo.RenderHit = hit
		r.Logger.Info("rendered dependency graph", "formats", opts.Formats, "duration", result.Stats.RenderTime)
		return result, nil
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	layout, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, snap, result.TasksHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.VisibleRows = len(layout.Chart.Bars)
	result.Stats.TickCount = len(layout.Ticks)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"view", layout.ViewMode,
		"ticks", len(layout.Ticks),
		"rows", len(layout.Chart.Bars),
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateLayoutWithCacheInfo computes the layout with caching and
// returns cache hit info.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, snap task.Snapshot, tasksHash string, opts Options) (Layout, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Layout{}, false, err
	}
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.ViewMode, snap.Len())
	start := time.Now()

	cacheKey := r.Keyer.LayoutKey(tasksHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := UnmarshalLayout(data); err == nil {
				observability.Cache().OnCacheHit(ctx, cache.KindLayout)
				hooks.OnLayoutComplete(ctx, opts.ViewMode, time.Since(start), nil)
				return cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, cache.KindLayout)
	}

	layout, err := GenerateLayout(snap, opts)
	hooks.OnLayoutComplete(ctx, opts.ViewMode, time.Since(start), err)
	if err != nil {
		return Layout{}, false, err
	}

	if data, err := MarshalLayout(layout); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, TTLLayout); err != nil {
			r.Logger.Debug("cache write failed", "key", cacheKey, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, cache.KindLayout, len(data))
		}
	}
	return layout, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	layoutData, err := MarshalLayout(layout)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte)
	allHit := true
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.fetch(ctx, cache.KindArtifact, key, TTLArtifact, opts.Refresh, func() ([]byte, error) {
			out, err := renderGantt(layout, format, opts)
			if err != nil {
				return nil, fmt.Errorf("render %s: %w", format, err)
			}
			return out, nil
		})
		if err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, err
		}
		artifacts[format] = data
		allHit = allHit && hit
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, allHit, nil
}

// RenderDepsWithCacheInfo renders the dependency graph with caching.
func (r *Runner) RenderDepsWithCacheInfo(ctx context.Context, snap task.Snapshot, tasksHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte)
	allHit := true
	for _, format := range opts.Formats {
		key := r.Keyer.GraphKey(tasksHash, opts.GraphKeyOpts(format))
		single := opts
		single.Formats = []string{format}
		data, hit, err := r.fetch(ctx, cache.KindGraph, key, TTLArtifact, opts.Refresh, func() ([]byte, error) {
			out, err := RenderDeps(ctx, snap, single)
			if err != nil {
				return nil, err
			}
			return out[format], nil
		})
		if err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, err
		}
		artifacts[format] = data
		allHit = allHit && hit
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, allHit, nil
}

// fetch reads through the cache unless refresh is set, in which case the
// value is recomputed and overwritten.
func (r *Runner) fetch(ctx context.Context, kind, key string, ttl time.Duration, refresh bool, fn func() ([]byte, error)) ([]byte, bool, error) {
	if refresh {
		data, err := fn()
		if err != nil {
			return nil, false, err
		}
		if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
			r.Logger.Debug("cache write failed", "key", key, "err", err)
		}
		return data, false, nil
	}
	return cache.Fetch(ctx, r.Cache, kind, key, ttl, fn)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
