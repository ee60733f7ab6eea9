package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	loadTotal    *prometheus.CounterVec
	loadDuration *prometheus.HistogramVec
	loadInFlight prometheus.Gauge
	queueLag     *prometheus.HistogramVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	loadTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pqa",
			Subsystem: "loader",
			Name:      "paper_load_total",
			Help:      "Total processed paper loads by status.",
		},
		[]string{"service", "status"},
	)
	loadDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pqa",
			Subsystem: "loader",
			Name:      "paper_load_duration_seconds",
			Help:      "Paper load duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	loadInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pqa",
			Subsystem: "loader",
			Name:      "paper_load_in_flight",
			Help:      "Number of in-flight paper loads.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pqa",
			Subsystem: "loader",
			Name:      "queue_lag_seconds",
			Help:      "Delay between paper upload and load start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)

	registry.MustRegister(loadTotal, loadDuration, loadInFlight, queueLag)

	return &WorkerMetrics{
		registry:     registry,
		loadTotal:    loadTotal,
		loadDuration: loadDuration,
		loadInFlight: loadInFlight,
		queueLag:     queueLag,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartLoad() {
	m.loadInFlight.Inc()
}

func (m *WorkerMetrics) FinishLoad(service string, duration time.Duration, err error) {
	m.loadInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.loadTotal.WithLabelValues(service, status).Inc()
	m.loadDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *WorkerMetrics) ObserveQueueLag(service string, lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.WithLabelValues(service).Observe(lag.Seconds())
}
