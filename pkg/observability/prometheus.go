package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusHooks implements every hook interface on a private Prometheus
// registry. Serve the registry with [PrometheusHooks.Handler].
type PrometheusHooks struct {
	LoadsTotal        *prometheus.CounterVec
	LoadDuration      prometheus.Histogram
	CompilesTotal     prometheus.Counter
	CompileDuration   prometheus.Histogram
	CompiledNodes     prometheus.Histogram
	DiagnosticsTotal  prometheus.Counter
	PreviewsTotal     *prometheus.CounterVec
	CacheRequests     *prometheus.CounterVec
	CacheWrittenBytes *prometheus.CounterVec
	HTTPRequestsTotal *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewPrometheusHooks creates the metric set on a fresh registry.
func NewPrometheusHooks() *PrometheusHooks {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &PrometheusHooks{
		LoadsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "visualencer_graph_loads_total",
			Help: "Graph documents loaded, by result",
		}, []string{"status"}),
		LoadDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "visualencer_graph_load_duration_seconds",
			Help:    "Time spent decoding and validating graph documents",
			Buckets: prometheus.DefBuckets,
		}),
		CompilesTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "visualencer_compiles_total",
			Help: "Compile passes run",
		}),
		CompileDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "visualencer_compile_duration_seconds",
			Help:    "Compile pass latency in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}),
		CompiledNodes: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "visualencer_compile_nodes",
			Help:    "Nodes per compiled graph",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 1000},
		}),
		DiagnosticsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "visualencer_compile_diagnostics_total",
			Help: "Nodes dropped or flagged during compilation",
		}),
		PreviewsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "visualencer_previews_total",
			Help: "Graph previews rendered, by format and result",
		}, []string{"format", "status"}),
		CacheRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "visualencer_cache_requests_total",
			Help: "Cache lookups, by key type and result",
		}, []string{"key_type", "result"}),
		CacheWrittenBytes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "visualencer_cache_written_bytes_total",
			Help: "Bytes written to the cache, by key type",
		}, []string{"key_type"}),
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "visualencer_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "visualencer_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		registry: reg,
	}
}

// Registry returns the underlying Prometheus registry.
func (p *PrometheusHooks) Registry() *prometheus.Registry { return p.registry }

// Handler serves the registry in the Prometheus exposition format.
func (p *PrometheusHooks) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// OnLoad implements PipelineHooks.
func (p *PrometheusHooks) OnLoad(_ context.Context, _ string, _ int, d time.Duration, err error) {
	p.LoadsTotal.WithLabelValues(status(err)).Inc()
	p.LoadDuration.Observe(d.Seconds())
}

// OnCompile implements PipelineHooks.
func (p *PrometheusHooks) OnCompile(_ context.Context, nodes, _, diagnostics int, d time.Duration) {
	p.CompilesTotal.Inc()
	p.CompileDuration.Observe(d.Seconds())
	p.CompiledNodes.Observe(float64(nodes))
	p.DiagnosticsTotal.Add(float64(diagnostics))
}

// OnPreview implements PipelineHooks.
func (p *PrometheusHooks) OnPreview(_ context.Context, format string, _ time.Duration, err error) {
	p.PreviewsTotal.WithLabelValues(format, status(err)).Inc()
}

// OnCacheHit implements CacheHooks.
func (p *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	p.CacheRequests.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss implements CacheHooks.
func (p *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	p.CacheRequests.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet implements CacheHooks.
func (p *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	p.CacheWrittenBytes.WithLabelValues(keyType).Add(float64(size))
}

// OnRequest implements HTTPHooks.
func (p *PrometheusHooks) OnRequest(_ context.Context, method, route string, code int, d time.Duration) {
	p.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	p.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

var (
	_ PipelineHooks = (*PrometheusHooks)(nil)
	_ CacheHooks    = (*PrometheusHooks)(nil)
	_ HTTPHooks     = (*PrometheusHooks)(nil)
)
