package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	screenTotal    *prometheus.CounterVec
	screenDuration *prometheus.HistogramVec
	screenInFlight prometheus.Gauge
	queueLag       *prometheus.HistogramVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	screenTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docgate",
			Subsystem: "worker",
			Name:      "document_screen_total",
			Help:      "Total screened documents by status.",
		},
		[]string{"service", "status"},
	)
	screenDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docgate",
			Subsystem: "worker",
			Name:      "document_screen_duration_seconds",
			Help:      "Document screening duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	screenInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docgate",
			Subsystem: "worker",
			Name:      "document_screen_in_flight",
			Help:      "Number of in-flight screening tasks.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docgate",
			Subsystem: "worker",
			Name:      "queue_lag_seconds",
			Help:      "Delay between document submission and screening start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)

	registry.MustRegister(screenTotal, screenDuration, screenInFlight, queueLag)

	return &WorkerMetrics{
		registry:       registry,
		screenTotal:    screenTotal,
		screenDuration: screenDuration,
		screenInFlight: screenInFlight,
		queueLag:       queueLag,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartDocument() {
	m.screenInFlight.Inc()
}

func (m *WorkerMetrics) FinishDocument(service string, duration time.Duration, err error) {
	m.screenInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.screenTotal.WithLabelValues(service, status).Inc()
	m.screenDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *WorkerMetrics) ObserveQueueLag(service string, lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.WithLabelValues(service).Observe(lag.Seconds())
}
