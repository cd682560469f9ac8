package health

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"modelgate/pkg/metrics"
)

// Alerter receives a message about an endpoint state change. Implementations
// must not block the caller; delivery is best-effort.
type Alerter interface {
	Alert(severity, message string)
}

// NopAlerter discards alerts.
type NopAlerter struct{}

func (NopAlerter) Alert(string, string) {}

// Scheduler periodically re-runs the orchestrator over the full endpoint
// list and republishes the result as the process-wide last-known report.
type Scheduler struct {
	orch      *Orchestrator
	endpoints []Endpoint
	interval  time.Duration
	alerter   Alerter

	mu        sync.RWMutex
	last      *Report
	unhealthy map[string]bool
}

// NewScheduler creates a background scheduler. The initial last-known report
// is empty so queries served before the first cycle still get a complete
// report.
func NewScheduler(orch *Orchestrator, endpoints []Endpoint, interval time.Duration, alerter Alerter) *Scheduler {
	if alerter == nil {
		alerter = NopAlerter{}
	}
	return &Scheduler{
		orch:      orch,
		endpoints: endpoints,
		interval:  interval,
		alerter:   alerter,
		last:      NewReport(nil),
		unhealthy: make(map[string]bool),
	}
}

// Run executes one cycle immediately and then on every tick until the
// context is cancelled. A failing cycle is logged and skipped; the loop
// itself never terminates on cycle failure.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cycle(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("background health checks stopped")
			return ctx.Err()
		case <-ticker.C:
			s.cycle(ctx)
		}
	}
}

// Latest returns the last published report. Never nil.
func (s *Scheduler) Latest() *Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

func (s *Scheduler) cycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			metrics.BackgroundCyclesTotal.WithLabelValues("panic").Inc()
			slog.Error("background health check cycle panicked",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
		}
	}()

	report := s.orch.Run(ctx, s.endpoints, "")

	s.publish(report)
	metrics.BackgroundCyclesTotal.WithLabelValues("ok").Inc()
	slog.Debug("background health check cycle finished",
		slog.Int("healthy", report.HealthyCount),
		slog.Int("unhealthy", report.UnhealthyCount))
}

// publish swaps the last-known report and alerts on endpoints that turned
// unhealthy since the previous cycle.
func (s *Scheduler) publish(report *Report) {
	s.mu.Lock()
	s.last = report

	current := make(map[string]bool, report.UnhealthyCount)
	for _, o := range report.Unhealthy {
		current[o.Model] = true
		if !s.unhealthy[o.Model] {
			s.alerter.Alert("high", fmt.Sprintf("endpoint %s is unhealthy (%s): %s", o.Model, o.Kind, o.Error))
		}
	}
	for _, o := range report.Healthy {
		if s.unhealthy[o.Model] {
			s.alerter.Alert("low", fmt.Sprintf("endpoint %s recovered", o.Model))
		}
	}
	s.unhealthy = current
	s.mu.Unlock()
}
