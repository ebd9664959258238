// Package jobs provides the background job queue render passes run on.
// It sits on top of the automation dynamic worker pool and adds per-job
// handles, removal of not-yet-started work, waiting and panic isolation.
package jobs

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-view/common"
)

// Queue runs submitted work on a bounded set of reusable goroutines.
// Submission never blocks: a full or closed queue refuses work instead.
type Queue interface {
	// Add submits work and returns its handle immediately.
	// The work receives its own handle so it can poll cancellation.
	//
	// Parameters:
	//   - work: the function to run on a worker goroutine
	//
	// Returns:
	//   - *Job: the job handle, or nil if work is nil or the queue is full or closed
	Add(work func(job *Job)) *Job

	// Remove takes a job out of the queue if no worker has started it yet.
	// Removed jobs never run; their Done channel is closed when a worker dequeues them.
	//
	// Parameters:
	//   - job: the job to remove
	//
	// Returns:
	//   - bool: true if the job was pending and is now removed
	Remove(job *Job) bool

	// Wait blocks until the job has finished or was dropped.
	// Returns immediately for a nil job.
	//
	// Parameters:
	//   - job: the job to wait for
	Wait(job *Job)

	// Pending returns the number of submitted jobs that have not finished yet,
	// running jobs included.
	//
	// Returns:
	//   - int: the pending job count
	Pending() int

	// Close cancels every pending job, refuses further work and returns once
	// every worker goroutine has exited. Running jobs are cancelled and waited
	// for; jobs that never started are finished without running. Close must not
	// be called from inside a job.
	Close()
}

type queue struct {
	mu sync.Mutex

	pool        worker.DynamicWorkerPool
	workers     int
	queueSize   int
	idleTimeout time.Duration

	nextID  atomic.Uint64
	pending map[*Job]struct{}
	closed  bool
}

var _ Queue = &queue{}

// NewQueue creates a job queue and starts its worker pool.
//
// Parameters:
//   - options: functional options (worker count, queue size, idle timeout)
//
// Returns:
//   - Queue: the running queue
func NewQueue(options ...QueueBuilderOption) Queue {
	q := &queue{
		workers:     max(runtime.NumCPU()-1, 1),
		queueSize:   256,
		idleTimeout: 1 * time.Second,
		pending:     make(map[*Job]struct{}),
	}
	for _, opt := range options {
		opt(q)
	}

	// The pool's task channel has the same capacity as the pending limit, so
	// SubmitTask can never block once Add has admitted a job.
	q.pool = worker.NewDynamicWorkerPool(q.workers, q.queueSize, q.idleTimeout)
	common.Logger().Info("jobs: queue started", "workers", q.workers, "queueSize", q.queueSize)
	return q
}

func (q *queue) Add(work func(job *Job)) *Job {
	if work == nil {
		return nil
	}

	q.mu.Lock()
	if q.closed || len(q.pending) >= q.queueSize {
		q.mu.Unlock()
		common.Logger().Debug("jobs: submission refused", "closed", q.closed)
		return nil
	}
	job := newJob(q.nextID.Add(1))
	q.pending[job] = struct{}{}
	q.mu.Unlock()

	q.pool.SubmitTask(worker.Task{
		ID:      int(job.id),
		Payload: job,
		Do: func() (any, error) {
			q.run(job, work)
			return nil, nil
		},
	})
	return job
}

func (q *queue) Remove(job *Job) bool {
	if job == nil {
		return false
	}
	return job.state.CompareAndSwap(statePending, stateRemoved)
}

func (q *queue) Wait(job *Job) {
	if job == nil {
		return
	}
	<-job.done
}

func (q *queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (q *queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	jobs := make([]*Job, 0, len(q.pending))
	for j := range q.pending {
		jobs = append(jobs, j)
	}
	q.mu.Unlock()

	for _, j := range jobs {
		j.Cancel()
		q.Remove(j)
	}

	// The pool's Stop hands stop signals to whichever worker reads first, so a
	// worker can miss its own and run forever. Instead every worker goroutine
	// takes one retire task from the queue, behind all queued jobs, and exits.
	n := q.pool.GetMaxWorkers()
	var retired sync.WaitGroup
	retired.Add(n)
	for i := 0; i < n; i++ {
		q.pool.SubmitTask(worker.Task{
			ID: -1 - i,
			Do: func() (any, error) {
				retired.Done()
				runtime.Goexit()
				return nil, nil
			},
		})
	}
	retired.Wait()
	q.pool.Stop()
	q.pool.ClearTaskQueue()

	// A job admitted just before Close may have been queued behind the retire tasks.
	for _, j := range jobs {
		if j.Removed() {
			q.finish(j)
		}
	}
	common.Logger().Info("jobs: queue closed", "dropped", len(jobs), "workers", n)
}

// run executes one job on a worker goroutine. A panic in work is recovered so the
// worker survives; the job still finishes.
func (q *queue) run(job *Job, work func(job *Job)) {
	defer q.finish(job)
	defer func() {
		if r := recover(); r != nil {
			common.Logger().Warn("jobs: job panicked", "job", job.id, "panic", r)
		}
	}()

	if !job.state.CompareAndSwap(statePending, stateRunning) {
		return
	}
	work(job)
}

func (q *queue) finish(job *Job) {
	q.mu.Lock()
	delete(q.pending, job)
	q.mu.Unlock()
	job.finish()
}
