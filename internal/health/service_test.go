package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"modelgate/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err   error
	calls int
}

func (p *stubPinger) Ping(context.Context) error {
	p.calls++
	return p.err
}

type stubCache struct {
	stubPinger
}

func (stubCache) Type() string { return "redis" }

func okOrchestrator() *Orchestrator {
	return NewOrchestrator(NewProber(stubBackend{fn: func(context.Context, Endpoint) error { return nil }}), time.Second)
}

func TestService_Liveness(t *testing.T) {
	t.Parallel()

	s := NewService(nil, "", okOrchestrator(), nil, NewReadinessCache(time.Minute), nil, nil)

	assert.Equal(t, "I'm alive!", s.Liveness())
}

func TestService_Readiness(t *testing.T) {
	t.Parallel()

	t.Run("no database configured", func(t *testing.T) {
		s := NewService(nil, "", okOrchestrator(), nil, NewReadinessCache(time.Minute), nil, nil)

		resp, err := s.Readiness(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "Not connected", resp.DB)
		assert.Nil(t, resp.Cache)
	})

	t.Run("database connected", func(t *testing.T) {
		db := &stubPinger{}
		s := NewService(nil, "", okOrchestrator(), nil, NewReadinessCache(time.Minute), db, nil)

		resp, err := s.Readiness(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "connected", resp.DB)
		require.NotNil(t, resp.LastUpdated)
		assert.False(t, resp.LastUpdated.IsZero())
	})

	t.Run("database ping is cached across calls", func(t *testing.T) {
		db := &stubPinger{}
		s := NewService(nil, "", okOrchestrator(), nil, NewReadinessCache(time.Minute), db, nil)

		_, err := s.Readiness(context.Background())
		require.NoError(t, err)
		_, err = s.Readiness(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, db.calls)
	})

	t.Run("failing dependency check surfaces as an error", func(t *testing.T) {
		db := &stubPinger{err: errors.New("db unreachable")}
		s := NewService(nil, "", okOrchestrator(), nil, NewReadinessCache(time.Minute), db, nil)

		_, err := s.Readiness(context.Background())

		assert.ErrorContains(t, err, "db unreachable")
	})

	t.Run("cache descriptor is included when configured", func(t *testing.T) {
		cache := &stubCache{}
		s := NewService(nil, "", okOrchestrator(), nil, NewReadinessCache(time.Minute), nil, cache)

		resp, err := s.Readiness(context.Background())

		require.NoError(t, err)
		require.NotNil(t, resp.Cache)
		assert.Equal(t, "redis", resp.Cache.Type)
		assert.Equal(t, "connected", resp.Cache.Status)
	})

	t.Run("cache ping failure does not fail readiness", func(t *testing.T) {
		cache := &stubCache{stubPinger: stubPinger{err: errors.New("redis down")}}
		s := NewService(nil, "", okOrchestrator(), nil, NewReadinessCache(time.Minute), nil, cache)

		resp, err := s.Readiness(context.Background())

		require.NoError(t, err)
		assert.Contains(t, resp.Cache.Status, "redis down")
	})
}

func TestService_CheckNow(t *testing.T) {
	t.Parallel()

	endpoints := []Endpoint{
		{Model: "gpt-4o", Mode: ModeChat},
		{Model: "claude", Mode: ModeChat},
	}

	t.Run("runs a fresh orchestration when background mode is off", func(t *testing.T) {
		s := NewService(endpoints, "", okOrchestrator(), nil, NewReadinessCache(time.Minute), nil, nil)

		report, err := s.CheckNow(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, 2, report.HealthyCount)
	})

	t.Run("applies the model filter when background mode is off", func(t *testing.T) {
		s := NewService(endpoints, "", okOrchestrator(), nil, NewReadinessCache(time.Minute), nil, nil)

		report, err := s.CheckNow(context.Background(), "claude")

		require.NoError(t, err)
		require.Equal(t, 1, report.HealthyCount)
		assert.Equal(t, "claude", report.Healthy[0].Model)
	})

	t.Run("background mode returns the cached report untouched", func(t *testing.T) {
		orch := okOrchestrator()
		sched := NewScheduler(orch, endpoints, time.Minute, nil)
		sched.cycle(context.Background())
		cached := sched.Latest()

		s := NewService(endpoints, "", orch, sched, NewReadinessCache(time.Minute), nil, nil)

		report, err := s.CheckNow(context.Background(), "")
		require.NoError(t, err)
		assert.Same(t, cached, report)

		// Known limitation: the filter is ignored on the cached path.
		filtered, err := s.CheckNow(context.Background(), "claude")
		require.NoError(t, err)
		assert.Same(t, cached, filtered)
	})

	t.Run("no endpoints and no CLI model is a configuration error", func(t *testing.T) {
		s := NewService(nil, "", okOrchestrator(), nil, NewReadinessCache(time.Minute), nil, nil)

		_, err := s.CheckNow(context.Background(), "")

		assert.ErrorIs(t, err, apperror.ErrNoBackendsConfigured)
	})

	t.Run("CLI model fallback probes a one-element list", func(t *testing.T) {
		s := NewService(nil, "ollama/llama2", okOrchestrator(), nil, NewReadinessCache(time.Minute), nil, nil)

		report, err := s.CheckNow(context.Background(), "")

		require.NoError(t, err)
		require.Equal(t, 1, report.HealthyCount)
		assert.Equal(t, "ollama/llama2", report.Healthy[0].Model)
	})
}

func TestService_TestConnection(t *testing.T) {
	t.Parallel()

	orch := NewOrchestrator(NewProber(stubBackend{fn: func(context.Context, Endpoint) error {
		return errors.New("401 invalid api key")
	}}), time.Second)
	s := NewService(nil, "", orch, nil, NewReadinessCache(time.Minute), nil, nil)

	out := s.TestConnection(context.Background(), Endpoint{
		Model: "gpt-4o",
		Mode:  ModeChat,
		Params: map[string]string{
			"api_base": "https://api.openai.com/v1",
			"api_key":  "sk-bad",
		},
	})

	assert.Equal(t, KindFailure, out.Kind)
	assert.Contains(t, out.Error, "invalid api key")
	assert.Equal(t, "*****", out.Params["api_key"])
}

func TestParseProbeMode(t *testing.T) {
	t.Parallel()

	mode, err := ParseProbeMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeChat, mode)

	for _, valid := range []string{"chat", "completion", "embedding", "rerank"} {
		mode, err := ParseProbeMode(valid)
		require.NoError(t, err)
		assert.Equal(t, ProbeMode(valid), mode)
	}

	_, err = ParseProbeMode("audio_speech_v2")
	assert.Error(t, err)
}
