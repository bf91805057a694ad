package dispatch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"healthbot/internal/domain"
	"healthbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_PreservesPerUserOrder(t *testing.T) {
	s := NewScheduler(context.Background(), Options{Workers: 4, QueueSize: 100}, testutil.NewTestLogger())

	var (
		mu  sync.Mutex
		got []int
	)
	for i := 0; i < 50; i++ {
		i := i
		require.NoError(t, s.Submit("42", func(ctx context.Context) {
			time.Sleep(100 * time.Microsecond)
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		}))
	}
	s.Close()

	require.Len(t, got, 50)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestScheduler_NeverRunsSameUserConcurrently(t *testing.T) {
	s := NewScheduler(context.Background(), Options{Workers: 8, QueueSize: 100}, testutil.NewTestLogger())

	var inFlight, maxInFlight int32
	for i := 0; i < 30; i++ {
		require.NoError(t, s.Submit("42", func(ctx context.Context) {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				m := atomic.LoadInt32(&maxInFlight)
				if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
					break
				}
			}
			time.Sleep(50 * time.Microsecond)
			atomic.AddInt32(&inFlight, -1)
		}))
	}
	s.Close()

	assert.Equal(t, int32(1), maxInFlight)
}

func TestScheduler_UsersRunConcurrently(t *testing.T) {
	s := NewScheduler(context.Background(), Options{Workers: 2, QueueSize: 4}, testutil.NewTestLogger())

	release := make(chan struct{})
	started := make(chan domain.UserID, 2)
	for _, id := range []domain.UserID{"a", "b"} {
		id := id
		require.NoError(t, s.Submit(id, func(ctx context.Context) {
			started <- id
			<-release
		}))
	}

	for i := 0; i < 2; i++ {
		select {
		case <-started:
		case <-time.After(time.Second):
			t.Fatal("users were not served concurrently")
		}
	}
	close(release)
	s.Close()
}

func TestScheduler_QueueFull(t *testing.T) {
	s := NewScheduler(context.Background(), Options{Workers: 1, QueueSize: 1}, testutil.NewTestLogger())

	release := make(chan struct{})
	running := make(chan struct{})
	require.NoError(t, s.Submit("42", func(ctx context.Context) {
		close(running)
		<-release
	}))
	<-running

	require.NoError(t, s.Submit("42", func(ctx context.Context) {}))
	err := s.Submit("42", func(ctx context.Context) {})
	assert.ErrorIs(t, err, ErrQueueFull)

	assert.NoError(t, s.Submit("other", func(ctx context.Context) {}))

	close(release)
	s.Close()
	assert.Equal(t, 0, s.Pending())
}

func TestScheduler_RecoversPanics(t *testing.T) {
	s := NewScheduler(context.Background(), Options{}, testutil.NewTestLogger())

	var ran atomic.Bool
	require.NoError(t, s.Submit("42", func(ctx context.Context) { panic("boom") }))
	require.NoError(t, s.Submit("42", func(ctx context.Context) { ran.Store(true) }))
	s.Close()

	assert.True(t, ran.Load())
}

func TestScheduler_SubmitAfterClose(t *testing.T) {
	s := NewScheduler(context.Background(), Options{}, testutil.NewTestLogger())
	s.Close()

	err := s.Submit("42", func(ctx context.Context) {})
	assert.ErrorIs(t, err, ErrClosed)
}

func ExampleScheduler() {
	s := NewScheduler(context.Background(), Options{Workers: 1}, testutil.NewTestLogger())
	for i := 1; i <= 3; i++ {
		i := i
		_ = s.Submit("42", func(ctx context.Context) { fmt.Println("event", i) })
	}
	s.Close()
	// Output:
	// event 1
	// event 2
	// event 3
}
