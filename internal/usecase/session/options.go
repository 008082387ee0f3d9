package session

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
	"github.com/BruksfildServices01/trainer-scheduler/internal/observability"
	"github.com/BruksfildServices01/trainer-scheduler/internal/timezone"
)

type options struct {
	now     func() time.Time
	metrics *observability.Metrics
	logger  *slog.Logger
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

func buildOptions(opts []Option) options {
	o := options{
		now:    timezone.Now,
		logger: observability.NopLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// lostRace reports a failed compare-and-swap as a retryable conflict.
func lostRace(err error, sessionID uint) error {
	if errors.Is(err, domain.ErrConflictingState) {
		return fmt.Errorf("%w: session %d was changed by another request", domain.ErrConflict, sessionID)
	}
	return err
}
