package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/beka-birhanu/lightning-maze/service/i"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker(t *testing.T) {
	ctx := context.Background()

	t.Run("second TryLock on a held key fails", func(t *testing.T) {
		l := NewLocalLocker()
		held, err := l.TryLock(ctx, "a")
		require.NoError(t, err)

		_, err = l.TryLock(ctx, "a")
		assert.ErrorIs(t, err, i.ErrLockTaken)

		other, err := l.TryLock(ctx, "b")
		require.NoError(t, err)
		assert.NoError(t, other.Unlock(ctx))
		assert.NoError(t, held.Unlock(ctx))
	})

	t.Run("key is free again after Unlock", func(t *testing.T) {
		l := NewLocalLocker()
		held, err := l.TryLock(ctx, "a")
		require.NoError(t, err)
		require.NoError(t, held.Unlock(ctx))

		again, err := l.TryLock(ctx, "a")
		require.NoError(t, err)
		assert.NoError(t, again.Unlock(ctx))
	})

	t.Run("double Unlock", func(t *testing.T) {
		l := NewLocalLocker()
		held, err := l.TryLock(ctx, "a")
		require.NoError(t, err)
		require.NoError(t, held.Unlock(ctx))
		assert.ErrorIs(t, held.Unlock(ctx), ErrNotHeld)
	})

	t.Run("cancelled context", func(t *testing.T) {
		l := NewLocalLocker()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := l.TryLock(cctx, "a")
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("one winner among concurrent callers", func(t *testing.T) {
		l := NewLocalLocker()
		var wins atomic.Int32
		var wg sync.WaitGroup
		start := make(chan struct{})
		for n := 0; n < 16; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				if _, err := l.TryLock(ctx, "race"); err == nil {
					wins.Add(1)
				}
			}()
		}
		close(start)
		wg.Wait()
		assert.Equal(t, int32(1), wins.Load())
	})
}
