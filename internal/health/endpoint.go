// Package health implements backend endpoint probing, readiness caching and
// the health query surface of the proxy.
package health

import (
	"context"
	"fmt"
)

// ProbeMode selects the representative payload used to exercise a backend.
type ProbeMode string

const (
	ModeChat       ProbeMode = "chat"
	ModeCompletion ProbeMode = "completion"
	ModeEmbedding  ProbeMode = "embedding"
	ModeRerank     ProbeMode = "rerank"
)

// ParseProbeMode validates a mode string. Empty input defaults to chat.
func ParseProbeMode(s string) (ProbeMode, error) {
	switch ProbeMode(s) {
	case "":
		return ModeChat, nil
	case ModeChat, ModeCompletion, ModeEmbedding, ModeRerank:
		return ProbeMode(s), nil
	default:
		return "", fmt.Errorf("unknown probe mode %q", s)
	}
}

// Endpoint identifies one backend model deployment to probe.
// It is owned by configuration and read-only to this package.
type Endpoint struct {
	Model    string
	Provider string
	Mode     ProbeMode
	// Params holds the opaque connection parameters (api_base, api_key, ...).
	Params map[string]string
}

// Backend is the external capability that exercises one endpoint.
// Implementations must honor the context deadline and return an error
// describing any failure; they must not retry.
type Backend interface {
	Probe(ctx context.Context, ep Endpoint) error
}
