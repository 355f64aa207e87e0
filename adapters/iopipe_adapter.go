// File: adapters/iopipe_adapter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
// Description:
//   Adapter exposing an api.Pipe as a standard io.ReadWriteCloser so
//   pipes compose with io.Copy, bufio, and friends.
//
// Package adapters provides glue code between the core API contracts
// and the standard library's io surfaces.

package adapters

import (
	"io"

	"github.com/momentics/hioload-ipc/api"
)

// IOPipeAdapter wraps a pipe with blocking io semantics. Reads and
// writes use an unbounded wait budget; reset cancellations are retried
// internally so callers only observe io-level outcomes.
type IOPipeAdapter struct {
	pipe api.Pipe
}

// Ensure compliance with the io contract.
var _ io.ReadWriteCloser = (*IOPipeAdapter)(nil)

// NewIOPipeAdapter wraps p.
func NewIOPipeAdapter(p api.Pipe) *IOPipeAdapter {
	return &IOPipeAdapter{pipe: p}
}

// Read fills p with buffered bytes, blocking while the pipe is empty
// and open. A drained, closed pipe reads as io.EOF.
func (a *IOPipeAdapter) Read(p []byte) (int, error) {
	for {
		n, err := a.pipe.Read(p, api.Forever)
		switch err {
		case nil:
			return n, nil
		case api.ErrCanceled, api.ErrWouldBlock:
			continue
		case api.ErrPipeClosed:
			return 0, io.EOF
		default:
			return 0, err
		}
	}
}

// Write pushes all of p into the pipe, looping over partial transfers
// per the io.Writer full-write contract. A closed pipe surfaces as
// io.ErrClosedPipe.
func (a *IOPipeAdapter) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		n, err := a.pipe.Write(p[written:], api.Forever)
		written += n
		switch err {
		case nil, api.ErrCanceled, api.ErrWouldBlock:
		case api.ErrPipeClosed:
			return written, io.ErrClosedPipe
		default:
			return written, err
		}
	}
	return written, nil
}

// Close closes the underlying pipe. A second Close is a no-op, per the
// io.Closer convention.
func (a *IOPipeAdapter) Close() error {
	if err := a.pipe.Close(); err != nil && err != api.ErrAlreadyClosed {
		return err
	}
	return nil
}
