// File: workq/workq.go
// Package workq implements a bounded work queue with explicit
// start/stop/drain lifecycle.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A Queue owns one worker goroutine that executes submitted items in
// order. It starts stopped: Submit before Start (or after Stop) fails
// with ErrQueueStopped, and a full submission ring fails with
// ErrQueueFull rather than blocking the submitter. Stop is terminal for
// the queue instance; queued items still present at Stop are executed
// before the worker exits.

package workq

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/momentics/hioload-ipc/api"
)

// Task is a unit of work to execute.
type Task func()

// Queue manages a single worker goroutine over a bounded task ring.
type Queue struct {
	tasks  chan Task
	stopCh chan struct{}
	doneCh chan struct{}
	log    *zap.Logger

	state int32 // 0 idle, 1 running, 2 stopped

	// quiet is signaled whenever a task completes or the worker exits,
	// so Drain can wait for quiescence without polling.
	quietMu sync.Mutex
	quiet   *sync.Cond

	// statistics
	submitted int64
	completed int64
	panicked  int64
}

const (
	stateIdle int32 = iota
	stateRunning
	stateStopped
)

// New creates a stopped queue with the given submission depth.
// If depth <= 0, a default of 64 is used. A nil logger disables logging.
func New(depth int, log *zap.Logger) *Queue {
	if depth <= 0 {
		depth = 64
	}
	if log == nil {
		log = zap.NewNop()
	}
	q := &Queue{
		tasks:  make(chan Task, depth),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
		log:    log,
	}
	q.quiet = sync.NewCond(&q.quietMu)
	return q
}

// Start launches the worker. Starting a running or stopped queue fails
// with ErrAlreadyExists / ErrQueueStopped respectively.
func (q *Queue) Start() error {
	if !atomic.CompareAndSwapInt32(&q.state, stateIdle, stateRunning) {
		if atomic.LoadInt32(&q.state) == stateStopped {
			return api.ErrQueueStopped
		}
		return api.ErrAlreadyExists
	}
	go q.run()
	return nil
}

// Submit enqueues a task. Never blocks: a full ring fails with
// ErrQueueFull and the caller decides its retry policy. An accepted
// task is always executed, even when the enqueue races Stop.
func (q *Queue) Submit(t Task) error {
	if atomic.LoadInt32(&q.state) != stateRunning {
		return api.ErrQueueStopped
	}
	select {
	case q.tasks <- t:
	default:
		return api.ErrQueueFull
	}
	atomic.AddInt64(&q.submitted, 1)
	if atomic.LoadInt32(&q.state) != stateRunning {
		// The enqueue may have landed after the worker's stop-flush
		// drained the ring; run whatever is still buffered here so no
		// accepted task is stranded.
		q.flush()
	}
	return nil
}

// Drain blocks until every already-submitted task has completed or the
// worker has exited. Tasks submitted while draining extend the wait.
func (q *Queue) Drain() {
	q.quietMu.Lock()
	defer q.quietMu.Unlock()
	for atomic.LoadInt64(&q.completed) < atomic.LoadInt64(&q.submitted) {
		select {
		case <-q.doneCh:
			return
		default:
		}
		q.quiet.Wait()
	}
}

// Stop stops accepting work, executes what is already queued, and joins
// the worker. Stopping a never-started or already-stopped queue fails
// with ErrQueueStopped.
func (q *Queue) Stop() error {
	if !atomic.CompareAndSwapInt32(&q.state, stateRunning, stateStopped) {
		return api.ErrQueueStopped
	}
	close(q.stopCh)
	<-q.doneCh
	// Catch submissions that raced the state change past the worker's
	// stop-flush.
	q.flush()
	return nil
}

// Running reports whether the worker is active.
func (q *Queue) Running() bool {
	return atomic.LoadInt32(&q.state) == stateRunning
}

// Stats returns basic queue metrics.
func (q *Queue) Stats() map[string]int64 {
	submitted := atomic.LoadInt64(&q.submitted)
	completed := atomic.LoadInt64(&q.completed)
	return map[string]int64{
		"submitted": submitted,
		"completed": completed,
		"pending":   submitted - completed,
		"panicked":  atomic.LoadInt64(&q.panicked),
	}
}

// run is the worker main loop.
func (q *Queue) run() {
	defer func() {
		close(q.doneCh)
		q.quietMu.Lock()
		q.quiet.Broadcast()
		q.quietMu.Unlock()
	}()
	for {
		select {
		case t := <-q.tasks:
			q.execute(t)
		case <-q.stopCh:
			// Flush what was accepted before the stop.
			q.flush()
			return
		}
	}
}

// flush runs every task currently buffered in the ring.
func (q *Queue) flush() {
	for {
		select {
		case t := <-q.tasks:
			q.execute(t)
		default:
			return
		}
	}
}

// execute runs one task, recovering from panics to keep the worker alive.
func (q *Queue) execute(t Task) {
	defer func() {
		if r := recover(); r != nil {
			atomic.AddInt64(&q.panicked, 1)
			q.log.Error("work item panicked", zap.Any("panic", r))
		}
		atomic.AddInt64(&q.completed, 1)
		q.quietMu.Lock()
		q.quiet.Broadcast()
		q.quietMu.Unlock()
	}()
	t()
}
