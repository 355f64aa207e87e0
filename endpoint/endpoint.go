// File: endpoint/endpoint.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package endpoint

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/momentics/hioload-ipc/api"
	"github.com/momentics/hioload-ipc/pipe"
)

// Endpoint is one side of a named channel. Bytes sent here land in the
// peer's receive pipe and are delivered to the peer's handler.
type Endpoint struct {
	id      string
	name    string
	handler api.Handler

	rx   *pipe.Pipe // receive side, drained by the registry dispatcher
	peer atomic.Pointer[Endpoint]

	closed atomic.Bool
}

func newEndpoint(name string, h api.Handler, r *Registry) *Endpoint {
	return &Endpoint{
		id:      uuid.NewString(),
		name:    name,
		handler: h,
		rx:      pipe.New(make([]byte, r.cfg.PipeCapacity)),
	}
}

// ID returns the endpoint's unique identifier.
func (e *Endpoint) ID() string { return e.id }

// Name returns the channel name the endpoint registered under.
func (e *Endpoint) Name() string { return e.name }

// IsBound reports whether the remote side has completed registration.
func (e *Endpoint) IsBound() bool { return e.peer.Load() != nil }

// Status reports the endpoint lifecycle state.
func (e *Endpoint) Status() api.EndpointStatus {
	switch {
	case e.closed.Load():
		return api.EndpointClosed
	case e.IsBound():
		return api.EndpointBound
	default:
		return api.EndpointRegistered
	}
}

// Send writes data toward the peer within the given wait budget and
// returns the number of bytes accepted. Partial sends follow the pipe
// contract; ErrNotBound is returned until the remote side registers.
func (e *Endpoint) Send(data []byte, timeout api.Timeout) (int, error) {
	if e.closed.Load() {
		return 0, api.ErrPipeClosed
	}
	peer := e.peer.Load()
	if peer == nil {
		return 0, api.ErrNotBound
	}
	return peer.rx.Write(data, timeout)
}

// bind wires the peer. Called under the registry lock, before Start.
func (e *Endpoint) bind(peer *Endpoint) {
	e.peer.Store(peer)
}

// close shuts the receive pipe, waking its dispatcher.
func (e *Endpoint) close() {
	if e.closed.CompareAndSwap(false, true) {
		e.rx.Close()
	}
}
