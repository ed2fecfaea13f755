package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/conceptmap/pkg/observability"
)

// Metrics holds the Prometheus collectors for the server. Each instance owns
// its registry, so several servers (or tests) never collide.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	layouts        *prometheus.CounterVec
	layoutDuration *prometheus.HistogramVec
	layoutNodes    *prometheus.GaugeVec
	toggles        *prometheus.CounterVec
	resets         *prometheus.CounterVec

	storeOps   *prometheus.CounterVec
	storeBytes prometheus.Counter
}

// NewMetrics creates collectors under the given metric namespace.
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		layouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layouts_total",
			Help:      "Layout passes by view",
		}, []string{"view"}),
		layoutDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_duration_seconds",
			Help:      "Layout computation time by view",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}, []string{"view"}),
		layoutNodes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "layout_nodes",
			Help:      "Nodes placed by the most recent layout of each view",
		}, []string{"view"}),
		toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "toggles_total",
			Help:      "Known and collapse toggles by resulting value",
		}, []string{"kind", "value"}),
		resets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resets_total",
			Help:      "Bulk resets of known or collapse state",
		}, []string{"kind"}),
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Store loads and saves by outcome",
		}, []string{"op"}),
		storeBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_saved_bytes_total",
			Help:      "Bytes written to the store",
		}),
	}

	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.layouts,
		m.layoutDuration,
		m.layoutNodes,
		m.toggles,
		m.resets,
		m.storeOps,
		m.storeBytes,
	)
	return m
}

// Registry returns the registry backing /metrics.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Install routes engine and store events into m.
func (m *Metrics) Install() {
	observability.SetEngineHooks(engineHooks{m})
	observability.SetStoreHooks(storeHooks{m})
}

// Middleware records request counts and latency by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// =============================================================================
// Observability Hooks
// =============================================================================

type engineHooks struct{ m *Metrics }

func (h engineHooks) OnLayout(_ context.Context, view string, nodes int, d time.Duration) {
	h.m.layouts.WithLabelValues(view).Inc()
	h.m.layoutDuration.WithLabelValues(view).Observe(d.Seconds())
	h.m.layoutNodes.WithLabelValues(view).Set(float64(nodes))
}

func (h engineHooks) OnToggle(_ context.Context, kind string, value bool) {
	h.m.toggles.WithLabelValues(kind, strconv.FormatBool(value)).Inc()
}

func (h engineHooks) OnReset(_ context.Context, kind string) {
	h.m.resets.WithLabelValues(kind).Inc()
}

type storeHooks struct{ m *Metrics }

func (h storeHooks) OnHit(context.Context, string)  { h.m.storeOps.WithLabelValues("hit").Inc() }
func (h storeHooks) OnMiss(context.Context, string) { h.m.storeOps.WithLabelValues("miss").Inc() }

func (h storeHooks) OnSave(_ context.Context, _ string, size int) {
	h.m.storeOps.WithLabelValues("save").Inc()
	h.m.storeBytes.Add(float64(size))
}

func (h storeHooks) OnError(_ context.Context, op string, _ error) {
	h.m.storeOps.WithLabelValues(op + "_error").Inc()
}

var (
	_ observability.EngineHooks = engineHooks{}
	_ observability.StoreHooks  = storeHooks{}
)
