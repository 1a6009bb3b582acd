package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRemember_LoadsOnceThenHits(t *testing.T) {
	c := newSimple()
	var calls int32
	load := func(context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return []int{1, 2}, nil
	}

	v, err := c.Remember(context.Background(), "nums", time.Minute, load)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, v)

	v.([]int)[0] = 100
	v, err = c.Remember(context.Background(), "nums", time.Minute, load)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, v)
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestRemember_ConcurrentMissesShareOneLoad(t *testing.T) {
	c := newSimple()
	var calls int32
	release := make(chan struct{})
	load := func(context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "v", nil
	}

	var wg sync.WaitGroup
	results := make([]any, 8)
	errs := make([]error, len(results))
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = c.Remember(context.Background(), "shared", nil, load)
		}()
	}
	// Give every goroutine a chance to join the flight before the load returns.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
	for i, v := range results {
		require.NoError(t, errs[i])
		require.Equal(t, "v", v)
	}
}

func TestRemember_LoadErrorStoresNothing(t *testing.T) {
	c := newSimple()
	boom := errors.New("boom")

	_, err := c.Remember(context.Background(), "k", nil, func(context.Context) (any, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, c.store.Len())
}

func TestRemember_ValidatesBeforeLoading(t *testing.T) {
	c := newSimple()
	load := func(context.Context) (any, error) {
		t.Fatal("load must not run")
		return nil, nil
	}

	_, err := c.Remember(context.Background(), "a:b", nil, load)
	require.ErrorIs(t, err, ErrInvalidKey)

	_, err = c.Remember(context.Background(), "ok", "1m", load)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRemember_ContextCanceled(t *testing.T) {
	c := newSimple()
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)

	go func() {
		<-started
		cancel()
	}()

	_, err := c.Remember(ctx, "slow", nil, func(context.Context) (any, error) {
		close(started)
		<-release
		return "late", nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRemember_OneCallerCancelingLeavesOthersWaiting(t *testing.T) {
	c := newSimple()
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	load := func(ctx context.Context) (any, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		select {
		case <-release:
			return "v", nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := c.Remember(ctxA, "shared", nil, load)
		errA <- err
	}()
	<-started

	type result struct {
		v   any
		err error
	}
	resB := make(chan result, 1)
	go func() {
		v, err := c.Remember(context.Background(), "shared", nil, load)
		resB <- result{v, err}
	}()
	// Let the second caller join the running load before the first one leaves.
	time.Sleep(50 * time.Millisecond)

	cancelA()
	require.ErrorIs(t, <-errA, context.Canceled)

	close(release)
	b := <-resB
	require.NoError(t, b.err)
	require.Equal(t, "v", b.v)
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))

	v, err := c.Get("shared", nil)
	require.NoError(t, err)
	require.Equal(t, "v", v)
}
