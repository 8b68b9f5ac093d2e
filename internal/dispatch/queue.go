// Package dispatch provides the single logical thread that owns gesture and
// posture state. Producers on any goroutine post jobs; Run executes them
// one at a time in post order.
package dispatch

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"
)

// ErrStopped is returned when posting to a queue whose Run has returned
var ErrStopped = errors.New("dispatch queue stopped")

// DefaultSize is the job buffer used by New when size is not positive
const DefaultSize = 256

// Queue is a serial job queue
type Queue struct {
	jobs     chan func()
	stopped  chan struct{}
	stopOnce sync.Once
}

// New creates a queue buffering up to size pending jobs
func New(size int) *Queue {
	if size <= 0 {
		size = DefaultSize
	}
	return &Queue{
		jobs:    make(chan func(), size),
		stopped: make(chan struct{}),
	}
}

// Post enqueues job. It blocks while the buffer is full and fails once the
// queue has stopped.
func (q *Queue) Post(job func()) error {
	select {
	case <-q.stopped:
		return ErrStopped
	default:
	}

	select {
	case q.jobs <- job:
		return nil
	case <-q.stopped:
		return ErrStopped
	}
}

// Do posts job and waits for it to finish
func (q *Queue) Do(ctx context.Context, job func()) error {
	done := make(chan struct{})
	if err := q.Post(func() {
		defer close(done)
		job()
	}); err != nil {
		return err
	}

	select {
	case <-done:
		return nil
	case <-q.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes jobs until ctx is done. Jobs still buffered at that point
// are dropped.
func (q *Queue) Run(ctx context.Context) error {
	defer q.stopOnce.Do(func() { close(q.stopped) })

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case job := <-q.jobs:
			q.run(job)
		}
	}
}

func (q *Queue) run(job func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Dispatch: job panicked: %v", r)
		}
	}()
	job()
}

// Stopped is closed once Run returns
func (q *Queue) Stopped() <-chan struct{} {
	return q.stopped
}
