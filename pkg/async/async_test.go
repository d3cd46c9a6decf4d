package async_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailforge/pkg/async"
)

func TestAsync(t *testing.T) {
	t.Parallel()

	f := async.Async(context.Background(), 21, func(_ context.Context, n int) (string, error) {
		return fmt.Sprintf("n=%d", n*2), nil
	})
	got, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, "n=42", got)
	assert.True(t, f.IsComplete())
}

func TestAsync_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var called atomic.Bool
	f := async.Async(ctx, 1, func(context.Context, int) (int, error) {
		called.Store(true)
		return 1, nil
	})
	_, err := f.Await()
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called.Load())
}

func TestFuture_AwaitContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)

	f := async.Async(context.Background(), 0, func(context.Context, int) (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := f.AwaitContext(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, f.IsComplete())
}

func TestMap_BoundsConcurrency(t *testing.T) {
	t.Parallel()

	var inFlight, peak atomic.Int32
	items := make([]int, 20)
	for i := range items {
		items[i] = i
	}

	futures := async.Map(context.Background(), items, 3, func(_ context.Context, n int) (int, error) {
		cur := inFlight.Add(1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return n * n, nil
	})

	outcomes := async.WaitAll(futures...)
	require.Len(t, outcomes, len(items))
	for i, o := range outcomes {
		require.NoError(t, o.Err)
		assert.Equal(t, i*i, o.Value)
	}
	assert.LessOrEqual(t, peak.Load(), int32(3))
	assert.NoError(t, async.FirstError(outcomes))
}

func TestWaitAll_KeepsEveryOutcome(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	futures := async.Map(context.Background(), []int{1, 2, 3}, 0, func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n, nil
	})

	outcomes := async.WaitAll(futures...)
	assert.Equal(t, 1, outcomes[0].Value)
	assert.ErrorIs(t, outcomes[1].Err, boom)
	assert.Equal(t, 3, outcomes[2].Value)
	assert.ErrorIs(t, async.FirstError(outcomes), boom)
}
