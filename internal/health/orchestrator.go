package health

import (
	"context"
	"sync"
	"time"
)

// Orchestrator fans a health check out across configured endpoints.
type Orchestrator struct {
	prober  *Prober
	timeout time.Duration
}

// NewOrchestrator creates an orchestrator with a per-probe timeout.
func NewOrchestrator(prober *Prober, timeout time.Duration) *Orchestrator {
	return &Orchestrator{prober: prober, timeout: timeout}
}

// Run probes every endpoint concurrently and returns the partitioned report.
// Each endpoint produces exactly one outcome; report order matches input
// order regardless of completion order. There is no global deadline shorter
// than the per-probe one, so total wall time tracks the slowest probe.
//
// A non-empty model filter restricts the run to matching endpoints; an
// unmatched filter yields an empty report, not an error.
func (o *Orchestrator) Run(ctx context.Context, endpoints []Endpoint, model string) *Report {
	if model != "" {
		filtered := make([]Endpoint, 0, len(endpoints))
		for _, ep := range endpoints {
			if ep.Model == model {
				filtered = append(filtered, ep)
			}
		}
		endpoints = filtered
	}

	// Results are index-addressed so a straggling goroutine can never
	// corrupt another endpoint's slot.
	results := make([]Outcome, len(endpoints))
	var wg sync.WaitGroup

	for i, ep := range endpoints {
		wg.Add(1)
		go func(idx int, ep Endpoint) {
			defer wg.Done()
			results[idx] = o.prober.Probe(ctx, ep, o.timeout)
		}(i, ep)
	}

	wg.Wait()

	return NewReport(results)
}
