package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	requests    *prometheus.CounterVec
	errors      *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	batchSize   prometheus.Histogram
	connections prometheus.Gauge
	history     prometheus.Gauge
}

// New reg 为空时注册到 prometheus.DefaultRegisterer
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "viscosity_requests_total",
			Help: "Websocket requests handled, by message type.",
		}, []string{"type"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "viscosity_request_errors_total",
			Help: "Websocket requests answered with an error, by message type.",
		}, []string{"type"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "viscosity_request_duration_seconds",
			Help:    "Time spent handling a websocket request.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
		}, []string{"type"}),
		batchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "viscosity_batch_size",
			Help:    "Compositions per batch analysis request.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "viscosity_connections",
			Help: "Open websocket connections.",
		}),
		history: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "viscosity_history_records",
			Help: "History records held across all connections.",
		}),
	}
	reg.MustRegister(m.requests, m.errors, m.latency, m.batchSize, m.connections, m.history)
	return m
}

func (m *Metrics) ObserveRequest(msgType string, cost time.Duration, failed bool) {
	m.requests.WithLabelValues(msgType).Inc()
	m.latency.WithLabelValues(msgType).Observe(cost.Seconds())
	if failed {
		m.errors.WithLabelValues(msgType).Inc()
	}
}

func (m *Metrics) ObserveBatch(size int) {
	m.batchSize.Observe(float64(size))
}

func (m *Metrics) ConnectionOpened() {
	m.connections.Inc()
}

func (m *Metrics) ConnectionClosed() {
	m.connections.Dec()
}

// AddHistory delta 可以为负
func (m *Metrics) AddHistory(delta int) {
	m.history.Add(float64(delta))
}
