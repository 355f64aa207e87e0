// File: api/pipe.go
// Package api defines the Pipe contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pipe is a fixed-capacity circular byte buffer with blocking
// producer/consumer semantics. Partial transfers are the documented norm:
// a call may move fewer bytes than requested without that being an error.

package api

// Pipe moves ordered bytes between cooperating goroutines.
type Pipe interface {
	// Write copies up to len(data) bytes into the pipe, suspending within
	// the given budget while the pipe is full. Returns the number of
	// bytes actually written; a successful unblock guarantees at least one.
	Write(data []byte, timeout Timeout) (int, error)

	// Read copies up to len(out) buffered bytes out of the pipe,
	// suspending within the given budget while the pipe is empty and open.
	// A closed pipe yields residual bytes first; emptiness and closedness
	// together signal end-of-stream via ErrPipeClosed.
	Read(out []byte, timeout Timeout) (int, error)

	// Reset discards all buffered content and cancels every pending
	// waiter with ErrCanceled. The pipe remains open and usable.
	Reset() error

	// Close permanently disables the pipe. One-shot: a second Close
	// fails with ErrAlreadyClosed.
	Close() error

	// Len returns the number of buffered, unread bytes.
	Len() int

	// Cap returns the fixed buffer capacity.
	Cap() int
}

// PipeObserver receives transfer notifications from a pipe. All methods
// may be called with the pipe lock held and must not call back into the
// pipe. Implementations must be safe for concurrent use.
type PipeObserver interface {
	PipeWrote(n int)
	PipeRead(n int)
	PipeWaitTimeout()
	PipeReset()
}

// PipeStats is a point-in-time snapshot of pipe state for probes.
type PipeStats struct {
	Capacity     int
	Utilization  int
	DataWaiters  int
	SpaceWaiters int
	Open         bool
	Resetting    bool
}
