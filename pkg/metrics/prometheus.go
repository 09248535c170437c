package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	signalsAccepted *prometheus.CounterVec
	signalsRejected *prometheus.CounterVec
	providerErrors  *prometheus.CounterVec
	evaluatorErrors *prometheus.CounterVec
	scanDuration    prometheus.Histogram
	storeSize       prometheus.Gauge
	lastScan        prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		signalsAccepted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sigscan_signals_accepted_total",
				Help: "Signals accepted into the store",
			},
			[]string{"symbol", "category"},
		),
		signalsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sigscan_signals_rejected_total",
				Help: "Candidate signals rejected as duplicates",
			},
			[]string{"symbol", "category"},
		),
		providerErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sigscan_provider_errors_total",
				Help: "Snapshot provider failures per symbol",
			},
			[]string{"symbol"},
		),
		evaluatorErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sigscan_evaluator_errors_total",
				Help: "Evaluator failures per category",
			},
			[]string{"category"},
		),
		scanDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sigscan_scan_duration_seconds",
				Help:    "Duration of a full universe scan",
				Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
			},
		),
		storeSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "sigscan_store_signals",
				Help: "Live signals currently in the store",
			},
		),
		lastScan: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "sigscan_last_scan_timestamp_seconds",
				Help: "Unix time of the last scan cycle start",
			},
		),
	}
}

func (r *Recorder) RecordSignalAccepted(symbol, category string) {
	r.signalsAccepted.WithLabelValues(symbol, category).Inc()
}

func (r *Recorder) RecordSignalRejected(symbol, category string) {
	r.signalsRejected.WithLabelValues(symbol, category).Inc()
}

func (r *Recorder) RecordProviderError(symbol string) {
	r.providerErrors.WithLabelValues(symbol).Inc()
}

func (r *Recorder) RecordEvaluatorError(category string) {
	r.evaluatorErrors.WithLabelValues(category).Inc()
}

func (r *Recorder) RecordScanDuration(seconds float64) {
	r.scanDuration.Observe(seconds)
}

func (r *Recorder) SetStoreSize(n int) {
	r.storeSize.Set(float64(n))
}

func (r *Recorder) SetLastScan(unixSeconds float64) {
	r.lastScan.Set(unixSeconds)
}
