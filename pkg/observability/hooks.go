// Package observability lets the panel pipeline, its caches and the HTTP
// service emit events without importing a metrics backend.
//
// Every hook defaults to a no-op. The binary swaps in a real implementation
// once at startup, usually the Prometheus registry from [metrics]:
//
//	reg := metrics.NewRegistry()
//	observability.SetPipelineHooks(reg)
//	observability.SetCacheHooks(reg)
//	observability.SetHTTPHooks(reg)
//
// Instrumented code fetches the current hooks at the call site:
//
//	observability.Pipeline().OnIngestStart(ctx, rows)
//
// [metrics]: github.com/matzehuels/clusterpanel/pkg/observability/metrics
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the panel pipeline.
type PipelineHooks interface {
	// Ingestion cannot fail, so it reports no error.
	OnIngestStart(ctx context.Context, rows int)
	OnIngestComplete(ctx context.Context, nodeCount, clusterCount int, duration time.Duration)

	OnLayoutStart(ctx context.Context, nodeCount int)
	OnLayoutComplete(ctx context.Context, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// keyType is "layout" or "artifact".
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the HTTP service.
type HTTPHooks interface {
	// route is the matched chi pattern, not the raw path.
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, route string, err error)
}

// NoopPipelineHooks discards pipeline events. Embed it to implement a subset.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnIngestStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnIngestComplete(context.Context, int, int, time.Duration)        {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, time.Duration, error)           {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// hookSet holds the active implementation of each hook family.
type hookSet struct {
	mu       sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var active = &hookSet{
	pipeline: NoopPipelineHooks{},
	cache:    NoopCacheHooks{},
	http:     NoopHTTPHooks{},
}

// SetPipelineHooks installs h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	active.mu.Lock()
	active.pipeline = h
	active.mu.Unlock()
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	active.mu.Lock()
	active.cache = h
	active.mu.Unlock()
}

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h == nil {
		return
	}
	active.mu.Lock()
	active.http = h
	active.mu.Unlock()
}

func Pipeline() PipelineHooks {
	active.mu.RLock()
	defer active.mu.RUnlock()
	return active.pipeline
}

func Cache() CacheHooks {
	active.mu.RLock()
	defer active.mu.RUnlock()
	return active.cache
}

func HTTP() HTTPHooks {
	active.mu.RLock()
	defer active.mu.RUnlock()
	return active.http
}

// Reset reinstalls the no-op hooks.
func Reset() {
	active.mu.Lock()
	defer active.mu.Unlock()
	active.pipeline = NoopPipelineHooks{}
	active.cache = NoopCacheHooks{}
	active.http = NoopHTTPHooks{}
}
