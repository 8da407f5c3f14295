package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/clusterpanel/pkg/cache"
	"github.com/matzehuels/clusterpanel/pkg/errors"
	"github.com/matzehuels/clusterpanel/pkg/frame"
	"github.com/matzehuels/clusterpanel/pkg/graph"
	"github.com/matzehuels/clusterpanel/pkg/ingest"
	"github.com/matzehuels/clusterpanel/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
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

// Execute runs the complete ingest → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, data frame.Data, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	dataHash, err := HashData(data)
	if err != nil {
		return nil, err
	}
	result := &Result{DataHash: dataHash}

	// Stage 1+2: Ingest and layout
	layoutStart := time.Now()
	l, ing, layoutHit, err := r.layout(ctx, data, dataHash, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = l.NodeCount()
	result.Stats.EdgeCount = len(l.Edges)
	result.Stats.ClusterCount = len(l.Clusters)
	result.CacheInfo.LayoutHit = layoutHit
	if ing != nil {
		result.Graph = ing.Graph
		result.Stats.Rows = ing.Rows
		result.Stats.SkippedRows = ing.Skipped
	}

	opts.Logger.Info("computed layout",
		"clusters", result.Stats.ClusterCount,
		"nodes", result.Stats.NodeCount,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// HashData returns the content hash of data used in layout cache keys.
func HashData(data frame.Data) (string, error) {
	raw, err := frame.Marshal(data)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "encode input data")
	}
	return cache.Hash(raw), nil
}

// Ingest builds the cluster graph of data and reports the stage to the
// pipeline hooks.
func (r *Runner) Ingest(ctx context.Context, data frame.Data, opts Options) *ingest.Result {
	r.applyLogger(&opts)
	hooks := observability.Pipeline()

	rows := 0
	if f, ok := data.First(); ok {
		rows = f.Rows()
	}
	hooks.OnIngestStart(ctx, rows)
	start := time.Now()
	res := ingest.Build(data, opts.ingestOptions())
	hooks.OnIngestComplete(ctx, res.Graph.NodeCount(), res.Graph.ClusterCount(), time.Since(start))

	if res.Skipped > 0 {
		opts.Logger.Warn("skipped rows without source", "skipped", res.Skipped, "rows", res.Rows)
	}
	return res
}

// LayoutWithCacheInfo ingests data and lays it out, using the cache when
// possible. The ingest result is nil on a cache hit.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, data frame.Data, opts Options) (graph.Layout, *ingest.Result, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return graph.Layout{}, nil, false, err
	}
	dataHash, err := HashData(data)
	if err != nil {
		return graph.Layout{}, nil, false, err
	}
	return r.layout(ctx, data, dataHash, opts)
}

// Layout is a convenience wrapper that discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, data frame.Data, opts Options) (graph.Layout, error) {
	l, _, _, err := r.LayoutWithCacheInfo(ctx, data, opts)
	return l, err
}

func (r *Runner) layout(ctx context.Context, data frame.Data, dataHash string, opts Options) (graph.Layout, *ingest.Result, bool, error) {
	cacheKey := r.Keyer.LayoutKey(dataHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if raw, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := graph.UnmarshalLayout(raw); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeLayout)
				return cached, nil, true, nil
			}
			opts.Logger.Debug("discarding unreadable cached layout", "key", cacheKey)
		} else if err != nil {
			opts.Logger.Warn("layout cache read failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
	}

	ing := r.Ingest(ctx, data, opts)

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, ing.Graph.NodeCount())
	start := time.Now()

	var l graph.Layout
	if ing.Empty() {
		opts.Logger.Info("no data series, rendering placeholder")
		l = graph.NoDataLayout(opts.Panel.Width, opts.Panel.Height)
	} else {
		l = graph.BuildLayout(ing.Graph, opts.Panel.Width, opts.Panel.Height, ing.SeriesCount, opts.Logger)
	}
	hooks.OnLayoutComplete(ctx, time.Since(start), nil)

	if raw, err := graph.MarshalLayout(l); err == nil {
		r.store(ctx, cacheKey, keyTypeLayout, raw, cache.TTLLayout, opts.Logger)
	}
	return l, ing, false, nil
}

// RenderWithCacheInfo produces every requested format from l. Cached
// artifacts are reused per format; the hit flag is set only when all of
// them came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	layoutData, err := graph.MarshalLayout(l)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	allHit := true
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if raw, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
				artifacts[format] = raw
				continue
			}
			observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
		}
		allHit = false

		raw, err := Render(ctx, l, opts, format)
		if err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, err
		}
		artifacts[format] = raw
		r.store(ctx, cacheKey, keyTypeArtifact, raw, cache.TTLArtifact, opts.Logger)
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, allHit && !opts.Refresh, nil
}

// store writes to the cache. Failures are logged, never returned: a broken
// cache degrades to recomputation.
func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration, logger *log.Logger) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
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
