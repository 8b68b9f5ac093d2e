package dispatch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startQueue(t *testing.T) (*Queue, context.CancelFunc) {
	t.Helper()
	q := New(0)
	ctx, cancel := context.WithCancel(context.Background())
	go q.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-q.Stopped()
	})
	return q, cancel
}

func TestJobsRunInPostOrder(t *testing.T) {
	q, _ := startQueue(t)

	var got []int
	for i := 0; i < 50; i++ {
		require.NoError(t, q.Post(func() { got = append(got, i) }))
	}
	require.NoError(t, q.Do(context.Background(), func() {}))

	want := make([]int, 50)
	for i := range want {
		want[i] = i
	}
	assert.Equal(t, want, got)
}

func TestJobsNeverOverlap(t *testing.T) {
	q, _ := startQueue(t)

	var (
		wg      sync.WaitGroup
		running int
		maxSeen int
	)
	for p := 0; p < 8; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				_ = q.Post(func() {
					running++
					if running > maxSeen {
						maxSeen = running
					}
					time.Sleep(50 * time.Microsecond)
					running--
				})
			}
		}()
	}
	wg.Wait()
	require.NoError(t, q.Do(context.Background(), func() {}))

	assert.Equal(t, 1, maxSeen)
}

func TestPanickingJobDoesNotStopQueue(t *testing.T) {
	q, _ := startQueue(t)

	require.NoError(t, q.Post(func() { panic("boom") }))
	ran := false
	require.NoError(t, q.Do(context.Background(), func() { ran = true }))
	assert.True(t, ran)
}

func TestPostAfterStop(t *testing.T) {
	q, cancel := startQueue(t)
	cancel()
	<-q.Stopped()

	assert.ErrorIs(t, q.Post(func() {}), ErrStopped)
	assert.ErrorIs(t, q.Do(context.Background(), func() {}), ErrStopped)
}

func TestRunReturnsContextError(t *testing.T) {
	q := New(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, q.Run(ctx), context.Canceled)
}
