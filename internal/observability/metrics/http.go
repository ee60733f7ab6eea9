package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	questionsTotal     *prometheus.CounterVec
	questionDuration   *prometheus.HistogramVec
	answerRows         *prometheus.HistogramVec
	graphQueryDuration *prometheus.HistogramVec
	graphQueryErrors   *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pqa",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pqa",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pqa",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	questionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pqa",
			Subsystem: "qa",
			Name:      "questions_total",
			Help:      "Total answered questions by detected intent.",
		},
		[]string{"service", "intent"},
	)
	questionDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pqa",
			Subsystem: "qa",
			Name:      "question_duration_seconds",
			Help:      "End-to-end question answering duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "intent"},
	)
	answerRows := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pqa",
			Subsystem: "qa",
			Name:      "answer_rows",
			Help:      "Distribution of rows returned per answered question.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
		[]string{"service", "intent"},
	)
	graphQueryDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pqa",
			Subsystem: "graph",
			Name:      "query_duration_seconds",
			Help:      "Graph query duration in seconds by catalog tag.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "tag"},
	)
	graphQueryErrors := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pqa",
			Subsystem: "graph",
			Name:      "query_errors_total",
			Help:      "Total failed graph queries by catalog tag.",
		},
		[]string{"service", "tag"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		questionsTotal,
		questionDuration,
		answerRows,
		graphQueryDuration,
		graphQueryErrors,
	)

	return &HTTPServerMetrics{
		registry:           registry,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		questionsTotal:     questionsTotal,
		questionDuration:   questionDuration,
		answerRows:         answerRows,
		graphQueryDuration: graphQueryDuration,
		graphQueryErrors:   graphQueryErrors,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
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

func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/papers/"):
		return "/v1/papers/{paper_id}"
	default:
		return path
	}
}

func (m *HTTPServerMetrics) RecordQuestion(service, intent string, rows int, duration time.Duration) {
	if intent == "" {
		intent = "unknown"
	}
	m.questionsTotal.WithLabelValues(service, intent).Inc()
	m.questionDuration.WithLabelValues(service, intent).Observe(duration.Seconds())
	m.answerRows.WithLabelValues(service, intent).Observe(float64(rows))
}

func (m *HTTPServerMetrics) RecordGraphQuery(service, tag string, duration time.Duration, err error) {
	if tag == "" {
		tag = "unknown"
	}
	m.graphQueryDuration.WithLabelValues(service, tag).Observe(duration.Seconds())
	if err != nil {
		m.graphQueryErrors.WithLabelValues(service, tag).Inc()
	}
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
