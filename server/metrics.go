package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the session host.
type Metrics struct {
	FilesProcessed   prometheus.Counter
	FilesFailed      prometheus.Counter
	SessionsFinished prometheus.Counter
	SessionsActive   prometheus.Gauge
	FinishSeconds    prometheus.Histogram
}

// NewMetrics creates and registers the session host metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		FilesProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "roster_files_processed_total",
			Help: "Total export files successfully folded into an aggregate",
		}),
		FilesFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "roster_files_failed_total",
			Help: "Total export files that failed to decode or parse",
		}),
		SessionsFinished: factory.NewCounter(prometheus.CounterOpts{
			Name: "roster_sessions_finished_total",
			Help: "Total sessions that ran the extraction pipeline",
		}),
		SessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "roster_sessions_active",
			Help: "Sessions currently held by the host",
		}),
		FinishSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "roster_finish_seconds",
			Help:    "Time spent running the pipeline for one finish",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		}),
	}
}
