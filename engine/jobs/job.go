package jobs

import (
	"context"
	"sync"
	"sync/atomic"
)

const (
	statePending int32 = iota
	stateRunning
	stateRemoved
)

// Job is the handle of one unit of work submitted to a Queue.
// It carries cooperative cancellation and a completion signal.
type Job struct {
	id     uint64
	ctx    context.Context
	cancel context.CancelFunc

	state    atomic.Int32
	done     chan struct{}
	doneOnce sync.Once
}

func newJob(id uint64) *Job {
	ctx, cancel := context.WithCancel(context.Background())
	return &Job{
		id:     id,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// ID returns the queue-unique job number.
func (j *Job) ID() uint64 {
	return j.id
}

// Cancel requests cancellation. Work already running is expected to poll
// Cancelled and return early; nothing is interrupted forcibly.
// Safe to call more than once and on a nil job.
func (j *Job) Cancel() {
	if j == nil {
		return
	}
	j.cancel()
}

// Cancelled reports whether Cancel has been called.
func (j *Job) Cancelled() bool {
	if j == nil {
		return false
	}
	return j.ctx.Err() != nil
}

// Context returns a context that is cancelled together with the job.
func (j *Job) Context() context.Context {
	return j.ctx
}

// Done returns a channel closed when the job has finished, was removed before
// running, or was dropped by Close.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Started reports whether a worker has begun executing the job.
func (j *Job) Started() bool {
	return j.state.Load() == stateRunning
}

// Removed reports whether the job was taken out of the queue before it ran.
func (j *Job) Removed() bool {
	return j.state.Load() == stateRemoved
}

func (j *Job) finish() {
	j.doneOnce.Do(func() {
		close(j.done)
	})
}
