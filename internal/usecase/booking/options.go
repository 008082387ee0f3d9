package booking

import (
	"log/slog"
	"time"

	"github.com/BruksfildServices01/trainer-scheduler/internal/observability"
	"github.com/BruksfildServices01/trainer-scheduler/internal/timezone"
)

type options struct {
	now             func() time.Time
	metrics         *observability.Metrics
	logger          *slog.Logger
	defaultDuration time.Duration
}

type Option func(*options)

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithDefaultDuration sets the session length used when a request names none.
func WithDefaultDuration(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.defaultDuration = d
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		now:             timezone.Now,
		logger:          observability.NopLogger(),
		defaultDuration: 60 * time.Minute,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
