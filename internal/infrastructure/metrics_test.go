package infrastructure

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/yourusername/download-it/internal/domain"
)

func TestMetrics_ObserveOutcome(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveOutcome(&domain.DownloadOutcome{State: domain.StateDone, BytesWritten: 2048, Elapsed: time.Second})
	m.ObserveOutcome(&domain.DownloadOutcome{State: domain.StateDone, BytesWritten: 1024, Elapsed: time.Second})
	m.ObserveOutcome(&domain.DownloadOutcome{State: domain.StateFailed, Err: errors.New("boom"), Elapsed: time.Millisecond})
	m.ObserveOutcome(&domain.DownloadOutcome{State: domain.StateCancelled})

	assert.Equal(t, float64(2), testutil.ToFloat64(m.downloadsTotal.WithLabelValues("completed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.downloadsTotal.WithLabelValues("failed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.downloadsTotal.WithLabelValues("cancelled")))
	assert.Equal(t, float64(3072), testutil.ToFloat64(m.bytesTotal))
}

func TestMetrics_InFlightAndNil(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.SetInFlight(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(m.inFlight))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() {
		nilMetrics.SetInFlight(1)
		nilMetrics.ObserveOutcome(&domain.DownloadOutcome{State: domain.StateDone})
	})
}
