// Package metrics provides Prometheus metrics for the admin API.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "persona_admin"

// Metrics holds all Prometheus metrics and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP request metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// LLM call metrics
	LLMRequestsTotal   *prometheus.CounterVec
	LLMRequestDuration prometheus.Histogram

	// Analysis report cache
	CacheLookupsTotal *prometheus.CounterVec
}

// New creates a registry with the Go and process collectors and registers
// all application metrics on it.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{registry: reg}

	m.HTTPRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	m.HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	m.HTTPRequestsInFlight = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	m.LLMRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_total",
			Help:      "Total number of LLM completion calls",
		},
		[]string{"status"},
	)

	// LLM calls take seconds to minutes.
	m.LLMRequestDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_request_duration_seconds",
			Help:      "Duration of LLM completion calls in seconds",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	m.CacheLookupsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_cache_lookups_total",
			Help:      "Analysis report cache lookups by result",
		},
		[]string{"result"},
	)

	return m
}

// Registry returns the registry backing these metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records one served request.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordLLMRequest records one LLM call.
func (m *Metrics) RecordLLMRequest(status string, duration time.Duration) {
	m.LLMRequestsTotal.WithLabelValues(status).Inc()
	m.LLMRequestDuration.Observe(duration.Seconds())
}

// Middleware records request count and latency labelled by chi route pattern,
// so path parameters don't blow up label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.RecordHTTPRequest(r.Method, route, status, time.Since(start))
	})
}

// Completer is the LLM operation being instrumented.
type Completer interface {
	Complete(ctx context.Context, model, systemPrompt, userPrompt string) (string, error)
}

type instrumentedLLM struct {
	next    Completer
	metrics *Metrics
}

// InstrumentLLM wraps an LLM client so every call is counted and timed.
func (m *Metrics) InstrumentLLM(next Completer) Completer {
	return &instrumentedLLM{next: next, metrics: m}
}

func (c *instrumentedLLM) Complete(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	start := time.Now()
	reply, err := c.next.Complete(ctx, model, systemPrompt, userPrompt)
	status := "success"
	if err != nil {
		status = "error"
	}
	c.metrics.RecordLLMRequest(status, time.Since(start))
	return reply, err
}

// Cache is the report cache being instrumented.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, report string) error
}

type instrumentedCache struct {
	next    Cache
	metrics *Metrics
}

// InstrumentCache wraps a report cache and counts hits and misses.
func (m *Metrics) InstrumentCache(next Cache) Cache {
	return &instrumentedCache{next: next, metrics: m}
}

func (c *instrumentedCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, ok, err := c.next.Get(ctx, key)
	result := "miss"
	switch {
	case err != nil:
		result = "error"
	case ok:
		result = "hit"
	}
	c.metrics.CacheLookupsTotal.WithLabelValues(result).Inc()
	return val, ok, err
}

func (c *instrumentedCache) Set(ctx context.Context, key, report string) error {
	return c.next.Set(ctx, key, report)
}
