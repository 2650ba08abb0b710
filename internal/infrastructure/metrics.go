package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/yourusername/download-it/internal/domain"
)

const metricsNamespace = "download_it"

// Metrics collects prometheus series for finished and running downloads
type Metrics struct {
	downloadsTotal  *prometheus.CounterVec
	bytesTotal      prometheus.Counter
	inFlight        prometheus.Gauge
	durationSeconds *prometheus.HistogramVec
}

// NewMetrics creates the download metrics and registers them with reg.
// A nil reg uses the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		downloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "downloads_total",
				Help:      "Finished downloads by outcome",
			},
			[]string{"status"},
		),
		bytesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "bytes_written_total",
				Help:      "Bytes written to destination files",
			},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "in_flight",
				Help:      "Transfers currently running",
			},
		),
		durationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "duration_seconds",
				Help:      "Elapsed transfer time",
				Buckets:   prometheus.ExponentialBuckets(0.05, 4, 8),
			},
			[]string{"status"},
		),
	}

	reg.MustRegister(m.downloadsTotal, m.bytesTotal, m.inFlight, m.durationSeconds)
	return m
}

// SetInFlight mirrors the in-flight counter
func (m *Metrics) SetInFlight(n int64) {
	if m == nil {
		return
	}
	m.inFlight.Set(float64(n))
}

// ObserveOutcome records a finished workflow run
func (m *Metrics) ObserveOutcome(outcome *domain.DownloadOutcome) {
	if m == nil || outcome == nil {
		return
	}

	status := string(outcome.State.Status())
	m.downloadsTotal.WithLabelValues(status).Inc()
	if outcome.Succeeded() {
		m.bytesTotal.Add(float64(outcome.BytesWritten))
	}
	if outcome.Elapsed > 0 {
		m.durationSeconds.WithLabelValues(status).Observe(outcome.Elapsed.Seconds())
	}
}
