package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kirillkom/shopping-assistant/internal/core/domain"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry
	service  string

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	searchesTotal          *prometheus.CounterVec
	stageDuration          *prometheus.HistogramVec
	retrievalFallbackTotal *prometheus.CounterVec
	rankedProducts         *prometheus.HistogramVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shop",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shop",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "shop",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	searchesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shop",
			Subsystem: "search",
			Name:      "runs_total",
			Help:      "Total completed search runs by kind and outcome.",
		},
		[]string{"service", "kind", "outcome"},
	)
	stageDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shop",
			Subsystem: "search",
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "stage"},
	)
	retrievalFallbackTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shop",
			Subsystem: "search",
			Name:      "retrieval_fallback_total",
			Help:      "Total retrievals served by the fallback catalog.",
		},
		[]string{"service"},
	)
	rankedProducts := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shop",
			Subsystem: "search",
			Name:      "ranked_products",
			Help:      "Distribution of ranked products per completed run.",
			Buckets:   []float64{0, 1, 2, 3},
		},
		[]string{"service", "kind"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		searchesTotal,
		stageDuration,
		retrievalFallbackTotal,
		rankedProducts,
	)

	return &HTTPServerMetrics{
		registry:               registry,
		service:                service,
		requestTotal:           requestTotal,
		requestDuration:        requestDuration,
		requestInFlight:        requestInFlight,
		searchesTotal:          searchesTotal,
		stageDuration:          stageDuration,
		retrievalFallbackTotal: retrievalFallbackTotal,
		rankedProducts:         rankedProducts,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := r.URL.Path
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// StageCompleted and RetrievalFallback feed the pipeline observer hooks.
func (m *HTTPServerMetrics) StageCompleted(stage domain.Stage, duration time.Duration) {
	m.stageDuration.WithLabelValues(m.service, string(stage)).Observe(duration.Seconds())
}

func (m *HTTPServerMetrics) RetrievalFallback() {
	m.retrievalFallbackTotal.WithLabelValues(m.service).Inc()
}

func (m *HTTPServerMetrics) RecordSearchRun(kind string, rankedCount int, failed bool) {
	if kind == "" {
		kind = "unknown"
	}
	outcome := "success"
	if failed {
		outcome = "error"
	}
	m.searchesTotal.WithLabelValues(m.service, kind, outcome).Inc()
	m.rankedProducts.WithLabelValues(m.service, kind).Observe(float64(rankedCount))
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
