package alerting

import (
	"context"
	"log/slog"
	"time"

	"modelgate/pkg/metrics"
)

const sendTimeout = 5 * time.Second

// Dispatcher queues alerts and delivers them to the sink from a single
// background loop. Enqueueing never blocks: when the queue is full the
// alert is dropped, counted and logged rather than stalling a check cycle.
type Dispatcher struct {
	sink  Sink
	queue chan Alert
}

// NewDispatcher creates a dispatcher with the given queue capacity.
func NewDispatcher(sink Sink, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Dispatcher{
		sink:  sink,
		queue: make(chan Alert, queueSize),
	}
}

// Alert enqueues a message without blocking. Implements health.Alerter.
func (d *Dispatcher) Alert(severity, message string) {
	alert := Alert{
		Severity:   severity,
		Message:    message,
		Source:     "health_check",
		OccurredAt: time.Now().UTC(),
	}

	select {
	case d.queue <- alert:
	default:
		metrics.AlertsDroppedTotal.Inc()
		slog.Warn("alert queue full, dropping alert",
			slog.String("severity", severity),
			slog.String("message", message))
	}
}

// Run delivers queued alerts until the context is cancelled, then drains
// what is already queued before closing the sink.
func (d *Dispatcher) Run(ctx context.Context) error {
	defer func() {
		if err := d.sink.Close(); err != nil {
			slog.Error("failed to close alert sink", slog.Any("error", err))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			d.drain()
			return ctx.Err()
		case alert := <-d.queue:
			d.deliver(alert)
		}
	}
}

func (d *Dispatcher) drain() {
	for {
		select {
		case alert := <-d.queue:
			d.deliver(alert)
		default:
			return
		}
	}
}

// deliver uses its own timeout so shutdown still flushes queued alerts.
func (d *Dispatcher) deliver(alert Alert) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := d.sink.Send(ctx, alert); err != nil {
		slog.Error("failed to deliver alert",
			slog.String("severity", alert.Severity),
			slog.Any("error", err))
	}
}
