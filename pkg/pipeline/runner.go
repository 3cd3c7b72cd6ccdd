package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphslick/pkg/cache"
	"github.com/matzehuels/graphslick/pkg/groupman"
	"github.com/matzehuels/graphslick/pkg/observability"
)

// Runner executes the pipeline with artifact caching.
//
// The Runner holds no pipeline results; it can be reused for any number of
// runs with different options.
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

// Execute runs load → sanitize → build → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	// Stage 1: Load and sanitize
	loadStart := time.Now()
	in, err := Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	m := in.Groups
	result := &Result{
		Flowchart: in.Flowchart,
		Groups:    m,
		Orphans:   in.Orphans,
		ReadStats: in.ReadStats,
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Blocks = in.Flowchart.Size()
	result.Stats.SuperGroups = len(m.SuperGroups(groupman.PathForest))
	result.Stats.Groups = m.GroupCount(groupman.PathForest)
	if !in.Orphans.IsZero() {
		result.Stats.Orphans = len(m.Groups(in.Orphans))
	}

	// Stage 2: Build
	buildStart := time.Now()
	g, err := Build(ctx, in.Flowchart, m, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Graph = g
	result.DOT = DOT(g, in.Flowchart.Name, opts)
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = g.Used()
	result.Stats.EdgeCount = g.EdgeCount()

	r.Logger.Info("built graph",
		"mode", opts.Mode,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.BuildTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, info, err := r.RenderWithCacheInfo(ctx, result.DOT, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo = info
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", len(info.Hits),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders dot in every format of opts, serving what it
// can from the cache, and reports which formats hit.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, dot string, opts Options) (map[string][]byte, CacheInfo, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, CacheInfo{}, err
	}

	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	dotHash := cache.Hash([]byte(dot))
	artifacts := make(map[string][]byte, len(opts.Formats))
	keys := make(map[string]string, len(opts.Formats))
	var info CacheInfo

	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(dotHash, opts.ArtifactKeyOpts(format))
		keys[format] = key
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				cacheHooks.OnCacheHit(ctx, format)
				artifacts[format] = data
				info.Hits = append(info.Hits, format)
				continue
			}
			cacheHooks.OnCacheMiss(ctx, format)
		}
		info.Misses = append(info.Misses, format)
	}

	if len(info.Misses) > 0 {
		fresh, err := Render(ctx, dot, info.Misses, opts.Scale)
		if err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, info, err
		}
		for _, format := range info.Misses {
			data := fresh[format]
			artifacts[format] = data
			if err := r.Cache.Set(ctx, keys[format], data, cache.TTLArtifact); err != nil {
				r.Logger.Debug("cache write failed", "format", format, "error", err)
				continue
			}
			cacheHooks.OnCacheSet(ctx, format, len(data))
		}
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, info, nil
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
