package jobs

import "time"

// QueueBuilderOption is a functional option for configuring a Queue.
// Use the With* functions to create options.
type QueueBuilderOption func(q *queue)

// WithWorkers sets the maximum number of worker goroutines.
// Values <= 0 are treated as 1.
//
// Parameters:
//   - n: maximum workers
//
// Returns:
//   - QueueBuilderOption: option function to apply
func WithWorkers(n int) QueueBuilderOption {
	return func(q *queue) {
		q.workers = max(n, 1)
	}
}

// WithQueueSize sets how many jobs may be pending (queued or running) at once.
// Add refuses work beyond this limit. Values <= 0 are treated as 1.
//
// Parameters:
//   - n: pending job limit
//
// Returns:
//   - QueueBuilderOption: option function to apply
func WithQueueSize(n int) QueueBuilderOption {
	return func(q *queue) {
		q.queueSize = max(n, 1)
	}
}

// WithIdleTimeout sets the idle timeout handed to the worker pool.
//
// Parameters:
//   - d: idle timeout
//
// Returns:
//   - QueueBuilderOption: option function to apply
func WithIdleTimeout(d time.Duration) QueueBuilderOption {
	return func(q *queue) {
		q.idleTimeout = d
	}
}
