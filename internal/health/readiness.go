package health

import (
	"context"
	"sync"
	"time"
)

// DependencyStatus is the cached state of one process dependency.
type DependencyStatus string

const (
	StatusUnknown      DependencyStatus = "unknown"
	StatusConnected    DependencyStatus = "connected"
	StatusDisconnected DependencyStatus = "disconnected"
)

// ReadinessRecord is the cached dependency status with its refresh time.
type ReadinessRecord struct {
	Status      DependencyStatus `json:"status"`
	LastUpdated time.Time        `json:"last_updated"`
}

// ReadinessCache memoizes a dependency probe for a staleness window so
// repeated readiness queries do not hit the dependency on every call.
type ReadinessCache struct {
	window time.Duration

	mu  sync.Mutex
	rec ReadinessRecord
}

// NewReadinessCache creates a cache with the given staleness window.
// The record starts as unknown, forcing a probe on first use.
func NewReadinessCache(window time.Duration) *ReadinessCache {
	return &ReadinessCache{
		window: window,
		rec:    ReadinessRecord{Status: StatusUnknown, LastUpdated: time.Now()},
	}
}

// Refresh returns the cached record when it is fresh; otherwise it invokes
// check exactly once, caches the result and returns it.
//
// A check error propagates to the caller and leaves the cache untouched: a
// failing dependency must surface, not hide behind a stale "connected".
//
// Concurrent callers may race past the freshness test and probe twice
// inside one window; that duplication is accepted, the check itself runs
// outside the lock so a slow dependency never blocks readers of other
// caches.
func (c *ReadinessCache) Refresh(ctx context.Context, check func(context.Context) error) (ReadinessRecord, error) {
	c.mu.Lock()
	rec := c.rec
	c.mu.Unlock()

	if rec.Status != StatusUnknown && time.Since(rec.LastUpdated) < c.window {
		return rec, nil
	}

	if check == nil {
		rec = ReadinessRecord{Status: StatusDisconnected, LastUpdated: time.Now()}
		c.store(rec)
		return rec, nil
	}

	if err := check(ctx); err != nil {
		return ReadinessRecord{}, err
	}

	rec = ReadinessRecord{Status: StatusConnected, LastUpdated: time.Now()}
	c.store(rec)
	return rec, nil
}

func (c *ReadinessCache) store(rec ReadinessRecord) {
	c.mu.Lock()
	c.rec = rec
	c.mu.Unlock()
}
