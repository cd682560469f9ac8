package health

import (
	"context"
	"time"

	"modelgate/internal/apperror"
)

// LivenessPayload is the fixed liveness response body.
const LivenessPayload = "I'm alive!"

// Pinger checks connectivity of one process dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CachePinger describes the optional response cache dependency.
type CachePinger interface {
	Pinger
	Type() string
}

// CacheInfo is the readiness descriptor of the response cache.
type CacheInfo struct {
	Type   string `json:"type"`
	Status string `json:"status"`
}

// ReadinessResponse aggregates dependency statuses for the readiness probe.
type ReadinessResponse struct {
	Status      string     `json:"status"`
	DB          string     `json:"db"`
	Cache       *CacheInfo `json:"cache"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
}

// Service answers liveness, readiness and on-demand health queries.
type Service struct {
	endpoints []Endpoint
	cliModel  string
	orch      *Orchestrator
	sched     *Scheduler // nil unless background checks are enabled
	readiness *ReadinessCache
	db        Pinger      // nil when the proxy runs database-less
	cache     CachePinger // nil when no response cache is configured
}

// NewService wires the query façade. sched may be nil (background checks
// disabled), as may db and cache.
func NewService(
	endpoints []Endpoint,
	cliModel string,
	orch *Orchestrator,
	sched *Scheduler,
	readiness *ReadinessCache,
	db Pinger,
	cache CachePinger,
) *Service {
	return &Service{
		endpoints: endpoints,
		cliModel:  cliModel,
		orch:      orch,
		sched:     sched,
		readiness: readiness,
		db:        db,
		cache:     cache,
	}
}

// Liveness reports that the process schedules requests at all.
// Constant time, no I/O, no dependency access.
func (s *Service) Liveness() string {
	return LivenessPayload
}

// Readiness aggregates dependency statuses. A dependency check error is
// returned to the caller so the boundary can answer 503 instead of masking
// an outage with a stale status.
func (s *Service) Readiness(ctx context.Context) (ReadinessResponse, error) {
	resp := ReadinessResponse{Status: "healthy", DB: "Not connected"}

	if s.cache != nil {
		info := &CacheInfo{Type: s.cache.Type(), Status: "connected"}
		if err := s.cache.Ping(ctx); err != nil {
			info.Status = "error: " + err.Error()
		}
		resp.Cache = info
	}

	if s.db == nil {
		return resp, nil
	}

	rec, err := s.readiness.Refresh(ctx, s.db.Ping)
	if err != nil {
		return ReadinessResponse{}, err
	}
	if rec.Status == StatusConnected {
		resp.DB = "connected"
	}
	resp.LastUpdated = &rec.LastUpdated

	return resp, nil
}

// CheckNow returns the current health report.
//
// With background checks enabled it returns the last cached report; the
// model filter is ignored on that path. This mirrors the historical
// behavior and is a documented limitation, not an accident.
//
// Otherwise it runs a fresh orchestration over the configured endpoint
// list, or over the single CLI model when no list is configured.
func (s *Service) CheckNow(ctx context.Context, model string) (*Report, error) {
	if s.sched != nil {
		return s.sched.Latest(), nil
	}

	endpoints := s.endpoints
	if len(endpoints) == 0 {
		if s.cliModel == "" {
			return nil, apperror.ErrNoBackendsConfigured
		}
		endpoints = []Endpoint{{Model: s.cliModel, Mode: ModeChat, Params: map[string]string{"model": s.cliModel}}}
		// CLI fallback ignores the filter: there is only one model.
		model = ""
	}

	return s.orch.Run(ctx, endpoints, model), nil
}

// TestConnection runs exactly one probe against caller-supplied connection
// parameters and returns the redacted outcome.
func (s *Service) TestConnection(ctx context.Context, ep Endpoint) Outcome {
	return s.orch.prober.Probe(ctx, ep, s.orch.timeout)
}
