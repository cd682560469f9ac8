package health

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingCheck(calls *atomic.Int32, err error) func(context.Context) error {
	return func(context.Context) error {
		calls.Add(1)
		return err
	}
}

func TestReadinessCache_Refresh(t *testing.T) {
	t.Parallel()

	t.Run("second call within the window does not re-probe", func(t *testing.T) {
		var calls atomic.Int32
		cache := NewReadinessCache(time.Minute)

		first, err := cache.Refresh(context.Background(), countingCheck(&calls, nil))
		require.NoError(t, err)
		second, err := cache.Refresh(context.Background(), countingCheck(&calls, nil))
		require.NoError(t, err)

		assert.Equal(t, int32(1), calls.Load())
		assert.Equal(t, StatusConnected, first.Status)
		assert.Equal(t, first, second)
	})

	t.Run("probe runs again after the window elapses", func(t *testing.T) {
		var calls atomic.Int32
		cache := NewReadinessCache(30 * time.Millisecond)

		_, err := cache.Refresh(context.Background(), countingCheck(&calls, nil))
		require.NoError(t, err)

		time.Sleep(50 * time.Millisecond)

		_, err = cache.Refresh(context.Background(), countingCheck(&calls, nil))
		require.NoError(t, err)

		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("check error propagates and is not cached", func(t *testing.T) {
		var calls atomic.Int32
		cache := NewReadinessCache(time.Minute)
		dbDown := errors.New("db unreachable")

		_, err := cache.Refresh(context.Background(), countingCheck(&calls, dbDown))
		assert.ErrorIs(t, err, dbDown)

		// The failure must not leave a fake "connected" behind: the next
		// call probes again instead of serving a cached status.
		_, err = cache.Refresh(context.Background(), countingCheck(&calls, nil))
		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("nil check function caches disconnected", func(t *testing.T) {
		cache := NewReadinessCache(time.Minute)

		rec, err := cache.Refresh(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, StatusDisconnected, rec.Status)
	})

	t.Run("concurrent callers after warm-up hit the cache", func(t *testing.T) {
		var calls atomic.Int32
		cache := NewReadinessCache(time.Minute)

		_, err := cache.Refresh(context.Background(), countingCheck(&calls, nil))
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 32; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				rec, err := cache.Refresh(context.Background(), countingCheck(&calls, nil))
				assert.NoError(t, err)
				assert.Equal(t, StatusConnected, rec.Status)
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
	})
}
