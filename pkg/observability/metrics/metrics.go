// Package metrics implements the observability hooks on top of Prometheus.
//
// A [Registry] owns its own prometheus.Registry so tests and embedded
// servers never collide on the global default registerer.
//
//	m := metrics.NewRegistry()
//	observability.SetPipelineHooks(m)
//	observability.SetCacheHooks(m)
//	observability.SetHTTPHooks(m)
//	http.Handle("/metrics", m.Handler())
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/clusterpanel/pkg/observability"
)

const namespace = "clusterpanel"

// Registry holds all metrics of the application.
type Registry struct {
	// Pipeline Metrics
	IngestRowsTotal    prometheus.Counter
	IngestNodes        prometheus.Histogram
	IngestClusters     prometheus.Histogram
	StageDuration      *prometheus.HistogramVec
	StageErrorsTotal   *prometheus.CounterVec
	RenderFormatsTotal *prometheus.CounterVec
	LayoutsInFlight    prometheus.Gauge

	// Cache Metrics
	CacheHitsTotal    *prometheus.CounterVec
	CacheMissesTotal  *prometheus.CounterVec
	CacheWrittenBytes *prometheus.CounterVec

	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	HTTPErrorsTotal      *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewRegistry creates a registry with every metric initialized, plus the Go
// runtime and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{registry: reg}
	r.initPipelineMetrics()
	r.initCacheMetrics()
	r.initHTTPMetrics()
	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Registry) initPipelineMetrics() {
	f := promauto.With(r.registry)

	r.IngestRowsTotal = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingest_rows_total",
		Help:      "Total number of data rows read by the ingest stage",
	})
	r.IngestNodes = f.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ingest_nodes",
		Help:      "Number of nodes per ingested panel",
		Buckets:   []float64{0, 1, 5, 10, 50, 100, 500, 1000},
	})
	r.IngestClusters = f.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ingest_clusters",
		Help:      "Number of clusters per ingested panel",
		Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
	})
	r.StageDuration = f.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Duration of pipeline stages in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stage"})
	r.StageErrorsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stage_errors_total",
		Help:      "Total number of failed pipeline stages",
	}, []string{"stage"})
	r.RenderFormatsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "render_formats_total",
		Help:      "Total number of artifacts requested per output format",
	}, []string{"format"})
	r.LayoutsInFlight = f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "layouts_in_flight",
		Help:      "Current number of layouts being computed",
	})
}

func (r *Registry) initCacheMetrics() {
	f := promauto.With(r.registry)

	r.CacheHitsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_hits_total",
		Help:      "Total number of cache hits",
	}, []string{"type"})
	r.CacheMissesTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_misses_total",
		Help:      "Total number of cache misses",
	}, []string{"type"})
	r.CacheWrittenBytes = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_written_bytes_total",
		Help:      "Total number of bytes written to the cache",
	}, []string{"type"})
}

func (r *Registry) initHTTPMetrics() {
	f := promauto.With(r.registry)

	r.HTTPRequestsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"method", "route", "status"})
	r.HTTPRequestDuration = f.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	r.HTTPRequestsInFlight = f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_requests_in_flight",
		Help:      "Current number of HTTP requests being processed",
	})
	r.HTTPErrorsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_errors_total",
		Help:      "Total number of HTTP requests that failed",
	}, []string{"method", "route"})
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

func (r *Registry) OnIngestStart(_ context.Context, rows int) {
	r.IngestRowsTotal.Add(float64(rows))
}

func (r *Registry) OnIngestComplete(_ context.Context, nodeCount, clusterCount int, d time.Duration) {
	r.IngestNodes.Observe(float64(nodeCount))
	r.IngestClusters.Observe(float64(clusterCount))
	r.StageDuration.WithLabelValues("ingest").Observe(d.Seconds())
}

func (r *Registry) OnLayoutStart(context.Context, int) {
	r.LayoutsInFlight.Inc()
}

func (r *Registry) OnLayoutComplete(_ context.Context, d time.Duration, err error) {
	r.LayoutsInFlight.Dec()
	r.observeStage("layout", d, err)
}

func (r *Registry) OnRenderStart(_ context.Context, formats []string) {
	for _, f := range formats {
		r.RenderFormatsTotal.WithLabelValues(f).Inc()
	}
}

func (r *Registry) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	r.observeStage("render", d, err)
}

func (r *Registry) observeStage(stage string, d time.Duration, err error) {
	r.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		r.StageErrorsTotal.WithLabelValues(stage).Inc()
	}
}

// =============================================================================
// Cache Hooks
// =============================================================================

func (r *Registry) OnCacheHit(_ context.Context, keyType string) {
	r.CacheHitsTotal.WithLabelValues(keyType).Inc()
}

func (r *Registry) OnCacheMiss(_ context.Context, keyType string) {
	r.CacheMissesTotal.WithLabelValues(keyType).Inc()
}

func (r *Registry) OnCacheSet(_ context.Context, keyType string, size int) {
	r.CacheWrittenBytes.WithLabelValues(keyType).Add(float64(size))
}

// =============================================================================
// HTTP Hooks
// =============================================================================

func (r *Registry) OnRequest(context.Context, string, string) {
	r.HTTPRequestsInFlight.Inc()
}

func (r *Registry) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	r.HTTPRequestsInFlight.Dec()
	code := strconv.Itoa(status)
	r.HTTPRequestsTotal.WithLabelValues(method, route, code).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route, code).Observe(d.Seconds())
}

func (r *Registry) OnError(_ context.Context, method, route string, _ error) {
	r.HTTPErrorsTotal.WithLabelValues(method, route).Inc()
}

var (
	_ observability.PipelineHooks = (*Registry)(nil)
	_ observability.CacheHooks    = (*Registry)(nil)
	_ observability.HTTPHooks     = (*Registry)(nil)
)
