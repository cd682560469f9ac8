package health

import "time"

// OutcomeKind classifies a single probe result.
type OutcomeKind string

const (
	KindSuccess OutcomeKind = "success"
	KindFailure OutcomeKind = "failure"
	KindTimeout OutcomeKind = "timeout"
)

// Outcome is the immutable result of one probe invocation.
// Params is the redacted snapshot; the raw endpoint parameters never leave
// the prober.
type Outcome struct {
	Model     string            `json:"model"`
	Provider  string            `json:"provider,omitempty"`
	Mode      ProbeMode         `json:"mode"`
	Kind      OutcomeKind       `json:"kind"`
	Error     string            `json:"error,omitempty"`
	LatencyMS float64           `json:"latency_ms"`
	Params    map[string]string `json:"params"`

	// Latency duplicates LatencyMS for callers that want a duration.
	Latency time.Duration `json:"-"`
}

// Healthy reports whether the probe succeeded.
func (o Outcome) Healthy() bool {
	return o.Kind == KindSuccess
}
