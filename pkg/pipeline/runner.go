package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/observability"
	"github.com/matzehuels/arbor/pkg/tree"
)

// Runner executes the pipeline with artifact caching.
//
// A Runner holds no per-run state, so one instance can serve concurrent runs
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer uses
// the DefaultKeyer and a nil logger uses log.Default().
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs load → compose → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	hooks := observability.Pipeline()
	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	hooks.OnLoadStart(ctx, opts.Source())
	root, data, err := Load(opts)
	result.Stats.LoadTime = time.Since(loadStart)
	if err != nil {
		hooks.OnLoadComplete(ctx, opts.Source(), 0, result.Stats.LoadTime, err)
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Tree = root
	result.DocHash = cache.Hash(data)
	result.Stats.TreeNodes = tree.Count(root)
	hooks.OnLoadComplete(ctx, opts.Source(), result.Stats.TreeNodes, result.Stats.LoadTime, nil)
	r.Logger.Debug("loaded document",
		"source", opts.Source(),
		"nodes", result.Stats.TreeNodes,
		"duration", result.Stats.LoadTime)

	// Stage 2: Compose
	composeStart := time.Now()
	hooks.OnComposeStart(ctx, result.Stats.TreeNodes)
	scene, h, state, err := Compose(root, opts)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	result.Scene = scene
	result.Hierarchy = h
	result.Stats.VisibleNodes = len(scene.Nodes)
	result.Stats.ComposeTime = time.Since(composeStart)
	hooks.OnComposeComplete(ctx, result.Stats.VisibleNodes, result.Stats.ComposeTime)
	if scene.Empty {
		r.Logger.Warn("container too small, rendering empty diagram",
			"width", opts.Width, "height", opts.Height)
	}
	r.Logger.Debug("composed scene",
		"visible", result.Stats.VisibleNodes,
		"links", len(scene.Links),
		"transform", scene.Transform.String(),
		"duration", result.Stats.ComposeTime)

	// Stage 3: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, info, err := r.render(ctx, Input{Scene: scene, Tree: root, Expansion: state}, result.DocHash, expansionKey(state), opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo = info
	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", info.Hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// render serves cached formats and renders the rest in one pass.
func (r *Runner) render(ctx context.Context, in Input, docHash, expansion string, opts Options) (map[string][]byte, CacheInfo, error) {
	cacheHooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	var info CacheInfo
	var missing []string

	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format, in.Scene, expansion))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				cacheHooks.OnCacheHit(ctx, key)
				artifacts[format] = data
				info.Hits = append(info.Hits, format)
				continue
			}
		}
		cacheHooks.OnCacheMiss(ctx, key)
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, info, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, in, renderOpts)
	if err != nil {
		return nil, info, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format, in.Scene, expansion))
		if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
		} else {
			cacheHooks.OnCacheSet(ctx, key, len(data))
		}
		artifacts[format] = data
	}
	info.Misses = missing
	return artifacts, info, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
