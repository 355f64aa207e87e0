// File: internal/waitq/waitq.go
// Package waitq implements arrival-ordered wait lists for blocking IPC
// primitives.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A Queue holds callers parked on one condition (data-available or
// space-available). Every method must be invoked with the owning mutex
// held; Waiter.Wait releases and re-acquires that mutex around the
// suspension itself, which is what makes the check-then-sleep sequence
// race-free.

package waitq

import (
	"sync"
	"time"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-ipc/api"
)

// Outcome classifies why a parked caller resumed.
type Outcome int

const (
	// TimedOut means the wait budget expired before any signal arrived.
	TimedOut Outcome = iota
	// Signaled means a transfer at the opposite end woke this waiter.
	Signaled
	// Cancelled means a reset drained the wait lists.
	Cancelled
	// Closed means the pipe was closed while waiting.
	Closed
)

func (o Outcome) String() string {
	switch o {
	case Signaled:
		return "signaled"
	case Cancelled:
		return "cancelled"
	case Closed:
		return "closed"
	default:
		return "timed-out"
	}
}

// Waiter is a single parked caller with a one-shot outcome channel.
type Waiter struct {
	owner     *Queue
	ch        chan Outcome
	abandoned bool
}

// Queue is an arrival-ordered list of parked callers.
type Queue struct {
	q    *queue.Queue
	live int
}

// New creates an empty wait list.
func New() *Queue {
	return &Queue{q: queue.New()}
}

// Len returns the number of live (not timed-out) waiters.
func (wq *Queue) Len() int { return wq.live }

// Add enqueues a new waiter at the back of the list.
func (wq *Queue) Add() *Waiter {
	w := &Waiter{owner: wq, ch: make(chan Outcome, 1)}
	wq.q.Add(w)
	wq.live++
	return w
}

// WakeOne delivers the outcome to the oldest live waiter, skipping
// entries abandoned by timed-out callers. Reports whether anyone was woken.
func (wq *Queue) WakeOne(o Outcome) bool {
	for wq.q.Length() > 0 {
		w := wq.q.Remove().(*Waiter)
		if w.abandoned {
			continue
		}
		wq.live--
		w.ch <- o
		return true
	}
	return false
}

// WakeAll drains the list, delivering the outcome to every live waiter,
// and returns the number woken.
func (wq *Queue) WakeAll(o Outcome) int {
	n := 0
	for wq.WakeOne(o) {
		n++
	}
	return n
}

// Wait atomically releases mu and suspends until a wake or the budget
// expires, then re-acquires mu before returning. Must be called with mu
// held and only once per Waiter.
//
// A wake racing with the timer is resolved under the re-acquired lock:
// if the outcome was already delivered, the wake wins; otherwise the
// waiter marks itself abandoned so later wakes skip its queue entry.
func (w *Waiter) Wait(mu *sync.Mutex, timeout api.Timeout) Outcome {
	mu.Unlock()

	var out Outcome
	if timeout.IsForever() {
		out = <-w.ch
	} else {
		t := time.NewTimer(timeout.Duration())
		select {
		case out = <-w.ch:
			t.Stop()
		case <-t.C:
			out = TimedOut
		}
	}

	mu.Lock()
	if out == TimedOut {
		select {
		case out = <-w.ch:
			// A wake consumed our queue entry before we re-acquired
			// the lock; honor it over the timeout.
		default:
			w.abandoned = true
			w.owner.live--
		}
	}
	return out
}
