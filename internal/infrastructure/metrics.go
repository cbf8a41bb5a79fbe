package infrastructure

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the analysis service.
type Metrics struct {
	registry *prometheus.Registry

	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
	DatasetOrders    prometheus.Histogram
}

// NewMetrics builds a registry with process collectors plus the engine
// counters.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "salespulse_analyses_total",
			Help: "Analysis runs by outcome.",
		}, []string{"status"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "salespulse_analysis_duration_seconds",
			Help:    "End to end analysis duration.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		DatasetOrders: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "salespulse_dataset_orders",
			Help:    "Order header count per analyzed dataset.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12),
		}),
	}
	registry.MustRegister(m.AnalysesTotal, m.AnalysisDuration, m.DatasetOrders)
	return m
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
