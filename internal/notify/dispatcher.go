package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	defaultBufferSize = 100
	deliverTimeout    = 5 * time.Second
)

type Dispatcher struct {
	logger *slog.Logger
	sinks  []Sink
	queue  chan Event
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(logger *slog.Logger, bufferSize int, sinks ...Sink) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	d := &Dispatcher{
		logger: logger,
		sinks:  sinks,
		queue:  make(chan Event, bufferSize),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		for _, sink := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
			if err := sink.Deliver(ctx, ev); err != nil {
				d.logger.Warn("notification delivery failed",
					"sink", sink.Name(),
					"event", ev.Type,
					"error", err,
				)
			}
			cancel()
		}
	}
}

// Emit queues the event. A full queue or a closed dispatcher drops it.
func (d *Dispatcher) Emit(eventType string, payload any) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("notification dispatcher closed, dropping event", "event", eventType)
		return
	}

	select {
	case d.queue <- Event{Type: eventType, Payload: payload, OccurredAt: time.Now().UTC()}:
	default:
		// fila cheia → descartamos (nunca quebrar a operação)
		d.logger.Warn("notification queue full, dropping event", "event", eventType)
	}
}

// Close stops accepting events and waits until the queued ones are
// delivered or ctx ends.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
