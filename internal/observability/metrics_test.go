package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics("test", reg)
	require.NoError(t, err)

	m.RecordBooking("ok", 4)
	m.RecordBooking("insufficient_credit", 4)
	m.RecordCancellation(true, false)
	m.RecordCancellation(false, true)
	m.RecordAttendance("no_show")
	m.RecordCreditRestored(2)
	m.RecordReschedule(true)
	m.RecordCreditsAllocated(5)
	m.RecordCreditsAllocated(0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookings.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookings.WithLabelValues("insufficient_credit")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.sessionsBooked))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cancellations.WithLabelValues("true", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.attendance.WithLabelValues("no_show")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.creditsRestored))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reschedules.WithLabelValues("true")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.creditsGranted))
}

func TestMetricsReuseRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewMetrics("test", reg)
	require.NoError(t, err)
	second, err := NewMetrics("test", reg)
	require.NoError(t, err)

	second.RecordBooking("ok", 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(first.sessionsBooked))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordBooking("ok", 1)
		m.RecordCancellation(true, true)
		m.RecordAttendance("present")
		m.RecordCreditRestored(1)
		m.RecordReschedule(false)
		m.RecordCreditsAllocated(1)
	})
}

func TestNewLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: "warn", Format: "json", Output: &buf})

	logger.Info("hidden")
	logger.Warn("shown", "session_id", 9)

	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"))
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"session_id":9`)
}
