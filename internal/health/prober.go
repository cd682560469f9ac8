package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"modelgate/pkg/metrics"
)

// Prober performs one bounded-time check against one endpoint.
type Prober struct {
	backend Backend
}

// NewProber creates a prober over the given backend capability.
func NewProber(backend Backend) *Prober {
	return &Prober{backend: backend}
}

// Probe races one backend call against the deadline and converts every
// possible failure into an Outcome. It never returns an error and never
// panics past this boundary.
func (p *Prober) Probe(ctx context.Context, ep Endpoint, deadline time.Duration) Outcome {
	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	out := Outcome{
		Model:    ep.Model,
		Provider: ep.Provider,
		Mode:     ep.Mode,
		Params:   RedactParams(ep.Params),
	}

	start := time.Now()
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("probe panic: %v", r)
			}
		}()
		done <- p.backend.Probe(ctx, ep)
	}()

	select {
	case <-ctx.Done():
		// The backend call is abandoned; its late result lands in the
		// buffered channel and is discarded.
		out.Latency = time.Since(start)
		out.Kind = KindTimeout
		out.Error = fmt.Sprintf("health check timed out after %s", deadline)
	case err := <-done:
		out.Latency = time.Since(start)
		switch {
		case err == nil:
			out.Kind = KindSuccess
		case errors.Is(err, context.DeadlineExceeded):
			out.Kind = KindTimeout
			out.Error = fmt.Sprintf("health check timed out after %s", deadline)
		default:
			out.Kind = KindFailure
			out.Error = err.Error()
		}
	}
	out.LatencyMS = float64(out.Latency) / float64(time.Millisecond)

	metrics.ProbeDuration.WithLabelValues(ep.Model, string(ep.Mode), string(out.Kind)).
		Observe(out.Latency.Seconds())
	metrics.ProbesTotal.WithLabelValues(ep.Model, string(ep.Mode), string(out.Kind)).Inc()

	return out
}
