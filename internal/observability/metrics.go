package observability

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts booking activity. A nil *Metrics records nothing.
type Metrics struct {
	bookings        *prometheus.CounterVec
	sessionsBooked  prometheus.Counter
	cancellations   *prometheus.CounterVec
	attendance      *prometheus.CounterVec
	creditsRestored prometheus.Counter
	reschedules     *prometheus.CounterVec
	creditsGranted  prometheus.Counter
}

// NewMetrics registers the booking collectors on reg, reusing collectors
// that are already registered under the same name.
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	if namespace == "" {
		namespace = "trainer_scheduler"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_total",
			Help:      "Booking requests by outcome.",
		}, []string{"outcome"}),
		sessionsBooked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_booked_total",
			Help:      "Sessions created by successful bookings.",
		}),
		cancellations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cancellations_total",
			Help:      "Cancelled sessions by lateness and credit outcome.",
		}, []string{"late", "credit_restored"}),
		attendance: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attendance_total",
			Help:      "Attendance records by status.",
		}, []string{"status"}),
		creditsRestored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credits_restored_total",
			Help:      "Session credits returned to clients.",
		}),
		reschedules: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reschedules_total",
			Help:      "Rescheduled sessions by lateness.",
		}, []string{"late"}),
		creditsGranted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credits_allocated_total",
			Help:      "Session credits allocated by admins.",
		}),
	}

	var err error
	if m.bookings, err = register(reg, m.bookings); err != nil {
		return nil, err
	}
	if m.sessionsBooked, err = register(reg, m.sessionsBooked); err != nil {
		return nil, err
	}
	if m.cancellations, err = register(reg, m.cancellations); err != nil {
		return nil, err
	}
	if m.attendance, err = register(reg, m.attendance); err != nil {
		return nil, err
	}
	if m.creditsRestored, err = register(reg, m.creditsRestored); err != nil {
		return nil, err
	}
	if m.reschedules, err = register(reg, m.reschedules); err != nil {
		return nil, err
	}
	if m.creditsGranted, err = register(reg, m.creditsGranted); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, fmt.Errorf("register booking metric: %w", err)
	}
	return c, nil
}

// RecordBooking counts one booking request; outcome is "ok" or an error code.
func (m *Metrics) RecordBooking(outcome string, sessions int) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(outcome).Inc()
	if outcome == "ok" {
		m.sessionsBooked.Add(float64(sessions))
	}
}

func (m *Metrics) RecordCancellation(late, creditRestored bool) {
	if m == nil {
		return
	}
	m.cancellations.WithLabelValues(strconv.FormatBool(late), strconv.FormatBool(creditRestored)).Inc()
	if creditRestored {
		m.creditsRestored.Inc()
	}
}

func (m *Metrics) RecordAttendance(status string) {
	if m == nil {
		return
	}
	m.attendance.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordCreditRestored(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.creditsRestored.Add(float64(n))
}

func (m *Metrics) RecordReschedule(late bool) {
	if m == nil {
		return
	}
	m.reschedules.WithLabelValues(strconv.FormatBool(late)).Inc()
}

func (m *Metrics) RecordCreditsAllocated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.creditsGranted.Add(float64(n))
}
