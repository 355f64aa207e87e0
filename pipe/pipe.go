// File: pipe/pipe.go
// Package pipe implements the fixed-capacity blocking byte pipe.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A Pipe is a circular buffer with blocking producer/consumer semantics
// for moving ordered bytes between cooperating goroutines. One short-held
// mutex serializes all state transitions; it is never held across a
// suspension. Suspension is an atomic release-lock-then-park,
// re-acquire-on-wake sequence provided by the wait list.
//
// Partial transfers are the documented norm: a call moves as many bytes
// as currently fit (or are available), never more than one wait per call,
// and the caller resubmits the remainder.

package pipe

import (
	"sync"

	"github.com/momentics/hioload-ipc/api"
	"github.com/momentics/hioload-ipc/internal/waitq"
	"github.com/momentics/hioload-ipc/ring"
)

// Pipe is the fixed-capacity circular-buffer IPC primitive.
// The zero value is not usable; construct with New.
type Pipe struct {
	mu sync.Mutex

	buf ring.Buffer

	open      bool
	resetting bool
	waiting   int // callers currently parked on either wait list

	data  *waitq.Queue // readers waiting for data
	space *waitq.Queue // writers waiting for space

	obs api.PipeObserver
}

// Ensure compliance with the Pipe contract.
var _ api.Pipe = (*Pipe)(nil)

// New creates an open pipe over caller-supplied storage. The caller owns
// the storage and must keep it alive for the pipe's lifetime; the pipe
// never allocates or frees it.
func New(storage []byte) *Pipe {
	p := &Pipe{
		open:  true,
		data:  waitq.New(),
		space: waitq.New(),
	}
	p.buf.Init(storage)
	return p
}

// SetObserver installs an optional transfer observer (e.g. a metrics
// collector). Must be called before the pipe is shared.
func (p *Pipe) SetObserver(obs api.PipeObserver) { p.obs = obs }

// waitFor parks the caller on q until cond no longer holds, the budget
// expires, or the pipe is reset or closed. Called with p.mu held;
// re-acquired on every return path. A reset in progress always wins over
// a fresh wait attempt.
func (p *Pipe) waitFor(q *waitq.Queue, cond func() bool, timeout api.Timeout) error {
	if timeout.IsNoWait() || p.resetting {
		return api.ErrWouldBlock
	}

	p.waiting++
	w := q.Add()
	out := w.Wait(&p.mu, timeout)
	p.waiting--

	switch {
	case !p.open:
		return api.ErrPipeClosed
	case p.resetting:
		// The reset is fully drained once the last pending waiter has
		// observed it.
		if p.waiting == 0 {
			p.resetting = false
		}
		return api.ErrCanceled
	case !cond():
		return nil
	case out == waitq.TimedOut:
		if p.obs != nil {
			p.obs.PipeWaitTimeout()
		}
		return api.ErrTimeout
	default:
		// Woken, but another caller claimed the capacity first.
		return api.ErrWouldBlock
	}
}

// Write copies up to len(data) bytes into the pipe. If the pipe is full
// it waits once within the budget for space, then transfers whatever
// fits and returns the count. See the package comment for the partial
// transfer contract.
func (p *Pipe) Write(data []byte, timeout api.Timeout) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.buf.Initialized() {
		return 0, api.ErrNotInitialized
	}
	if !p.open {
		return 0, api.ErrPipeClosed
	}
	if len(data) == 0 {
		return 0, nil
	}

	if p.buf.Full() {
		if err := p.waitFor(p.space, p.buf.Full, timeout); err != nil {
			return 0, err
		}
	}

	n := p.buf.Put(data)
	if n > 0 {
		p.data.WakeOne(waitq.Signaled)
		if p.obs != nil {
			p.obs.PipeWrote(n)
		}
	}
	return n, nil
}

// Read copies up to len(out) buffered bytes out of the pipe. If the pipe
// is empty and open it waits once within the budget for data. A closed
// pipe yields residual bytes first; only emptiness and closedness
// together signal end-of-stream with ErrPipeClosed.
func (p *Pipe) Read(out []byte, timeout api.Timeout) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.buf.Initialized() {
		return 0, api.ErrNotInitialized
	}
	if len(out) == 0 {
		return 0, nil
	}

	if p.buf.Empty() && p.open {
		err := p.waitFor(p.data, p.buf.Empty, timeout)
		if err != nil && err != api.ErrPipeClosed {
			return 0, err
		}
		// ErrPipeClosed falls through: bytes written between the wake
		// and the close are still delivered below.
	}

	if p.buf.Empty() && !p.open {
		return 0, api.ErrPipeClosed
	}

	n := p.buf.Get(out)
	if n > 0 {
		p.space.WakeOne(waitq.Signaled)
		if p.obs != nil {
			p.obs.PipeRead(n)
		}
	}
	return n, nil
}

// Reset discards all buffered content and cancels every pending waiter
// with ErrCanceled. Destructive but non-terminal: the pipe stays open.
// A reset with no waiters leaves no flag latched for future callers.
func (p *Pipe) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.buf.Initialized() {
		return api.ErrNotInitialized
	}

	p.buf.Reset()
	if p.waiting > 0 {
		p.resetting = true
		p.data.WakeAll(waitq.Cancelled)
		p.space.WakeAll(waitq.Cancelled)
	}
	if p.obs != nil {
		p.obs.PipeReset()
	}
	return nil
}

// Close permanently disables the pipe and wakes every pending waiter
// with a terminal outcome. One-shot: a second Close fails with
// ErrAlreadyClosed. Buffered bytes remain readable until drained.
func (p *Pipe) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.buf.Initialized() {
		return api.ErrNotInitialized
	}
	if !p.open {
		return api.ErrAlreadyClosed
	}

	p.open = false
	p.resetting = false
	p.data.WakeAll(waitq.Closed)
	p.space.WakeAll(waitq.Closed)
	return nil
}

// Len returns the number of buffered, unread bytes.
func (p *Pipe) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buf.Len()
}

// Cap returns the fixed buffer capacity.
func (p *Pipe) Cap() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buf.Cap()
}

// Stats returns a snapshot of pipe state for debug probes.
func (p *Pipe) Stats() api.PipeStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return api.PipeStats{
		Capacity:     p.buf.Cap(),
		Utilization:  p.buf.Len(),
		DataWaiters:  p.data.Len(),
		SpaceWaiters: p.space.Len(),
		Open:         p.open,
		Resetting:    p.resetting,
	}
}
