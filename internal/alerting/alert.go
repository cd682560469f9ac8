// Package alerting hands health alerts to an external delivery sink through
// a bounded queue so the serving path never blocks on delivery.
package alerting

import (
	"context"
	"time"
)

// Alert is one notification message with its severity.
type Alert struct {
	Severity   string    `json:"severity"`
	Message    string    `json:"message"`
	Source     string    `json:"source"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Sink delivers alerts to an external system.
type Sink interface {
	Send(ctx context.Context, alert Alert) error
	Close() error
}

// NopSink discards alerts; used when no broker is configured.
type NopSink struct{}

func (NopSink) Send(context.Context, Alert) error { return nil }
func (NopSink) Close() error                      { return nil }
