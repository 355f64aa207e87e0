// File: endpoint/registry.go
// Package endpoint implements name-to-endpoint binding with callback
// dispatch over pipes.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A Registry holds a fixed number of endpoint slots. Both sides of a
// channel register under the same name; the second registration binds
// the pair, after which each side's Send feeds the peer's receive pipe
// and a dispatcher delivers arriving bytes to the peer's handler.
// Registration is only possible before Start: once dispatch has begun,
// further registration fails with ErrBindingInProgress.

package endpoint

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/momentics/hioload-ipc/api"
	"github.com/momentics/hioload-ipc/pool"
	"github.com/momentics/hioload-ipc/workq"
)

// DispatchObserver receives delivery telemetry. Satisfied by
// control.Metrics; nil disables reporting.
type DispatchObserver interface {
	DispatchDelivered(n int)
	DispatchFailed()
}

// Config holds registry construction parameters.
type Config struct {
	Slots         int // maximum registered endpoints; 0 means 16
	PipeCapacity  int // per-endpoint receive buffer size; 0 means 4 KiB
	DispatchDepth int // work queue submission depth; 0 means 64

	Logger   *zap.Logger
	Observer DispatchObserver
	PipeObs  api.PipeObserver // optional transfer observer for endpoint pipes
}

// Registry is the endpoint naming and dispatch façade.
type Registry struct {
	mu        sync.Mutex
	cfg       Config
	log       *zap.Logger
	endpoints map[string][]*Endpoint
	count     int
	started   bool
	closed    bool

	wq      *workq.Queue
	scratch *pool.BytePool
	readers sync.WaitGroup
}

// NewRegistry creates an empty registry.
func NewRegistry(cfg Config) *Registry {
	if cfg.Slots <= 0 {
		cfg.Slots = 16
	}
	if cfg.PipeCapacity <= 0 {
		cfg.PipeCapacity = 4 * 1024
	}
	if cfg.DispatchDepth <= 0 {
		cfg.DispatchDepth = 64
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		cfg:       cfg,
		log:       log,
		endpoints: make(map[string][]*Endpoint),
		wq:        workq.New(cfg.DispatchDepth, log),
		scratch:   pool.NewBytePool(cfg.PipeCapacity),
	}
}

// Register installs a named endpoint with its receive handler. The first
// registration of a name creates an unbound endpoint; the second binds
// the pair. The same call registers both sides.
func (r *Registry) Register(name string, h api.Handler) (*Endpoint, error) {
	if name == "" || h == nil {
		return nil, api.NewError(api.ErrCodeInternal, "endpoint name and handler are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, api.ErrPipeClosed
	}
	if r.started {
		return nil, api.ErrBindingInProgress
	}
	if r.count >= r.cfg.Slots {
		return nil, api.ErrNoEndpointSlots
	}

	peers := r.endpoints[name]
	if len(peers) >= 2 {
		return nil, api.ErrAlreadyExists
	}

	ept := newEndpoint(name, h, r)
	if r.cfg.PipeObs != nil {
		ept.rx.SetObserver(r.cfg.PipeObs)
	}
	r.endpoints[name] = append(peers, ept)
	r.count++

	if len(peers) == 1 {
		remote := peers[0]
		ept.bind(remote)
		remote.bind(ept)
		r.log.Debug("endpoint bound",
			zap.String("name", name),
			zap.String("local", ept.ID()),
			zap.String("remote", remote.ID()))
	}
	return ept, nil
}

// Start begins callback dispatch for every bound endpoint. Further
// registration is rejected after this point.
func (r *Registry) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return api.ErrPipeClosed
	}
	if r.started {
		return api.ErrAlreadyExists
	}
	if err := r.wq.Start(); err != nil {
		return fmt.Errorf("start dispatch queue: %w", err)
	}
	r.started = true

	for _, pair := range r.endpoints {
		for _, ept := range pair {
			if !ept.IsBound() {
				continue
			}
			r.readers.Add(1)
			go r.dispatchLoop(ept)
		}
	}
	return nil
}

// Close tears down all endpoints, stops the dispatcher, and waits for
// reader goroutines to exit. One-shot.
func (r *Registry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return api.ErrAlreadyClosed
	}
	r.closed = true
	started := r.started
	for _, pair := range r.endpoints {
		for _, ept := range pair {
			ept.close()
		}
	}
	r.mu.Unlock()

	r.readers.Wait()
	if started {
		r.wq.Drain()
		if err := r.wq.Stop(); err != nil && err != api.ErrQueueStopped {
			return err
		}
	}
	return nil
}

// Lookup returns the registered endpoints for a name (0, 1, or 2).
func (r *Registry) Lookup(name string) []*Endpoint {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Endpoint, len(r.endpoints[name]))
	copy(out, r.endpoints[name])
	return out
}

// Pair returns both sides of a bound channel. Fails with ErrNotFound
// for an unknown name and ErrNotBound while only one side is registered.
func (r *Registry) Pair(name string) (*Endpoint, *Endpoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pair := r.endpoints[name]
	switch len(pair) {
	case 0:
		return nil, nil, api.ErrNotFound
	case 1:
		return nil, nil, api.ErrNotBound
	default:
		return pair[0], pair[1], nil
	}
}

// Stats summarizes registry state for debug probes.
func (r *Registry) Stats() map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	bound := 0
	for _, pair := range r.endpoints {
		for _, ept := range pair {
			if ept.IsBound() {
				bound++
			}
		}
	}
	return map[string]any{
		"endpoints": r.count,
		"bound":     bound,
		"slots":     r.cfg.Slots,
		"started":   r.started,
		"dispatch":  r.wq.Stats(),
	}
}

// dispatchLoop drains one endpoint's receive pipe and hands chunks to
// its handler via the work queue.
func (r *Registry) dispatchLoop(ept *Endpoint) {
	defer r.readers.Done()
	for {
		buf := r.scratch.GetBuffer()
		n, err := ept.rx.Read(buf, api.Forever)
		switch err {
		case nil:
		case api.ErrCanceled:
			// Reset drained the pipe; keep serving.
			r.scratch.PutBuffer(buf)
			continue
		default:
			r.scratch.PutBuffer(buf)
			return
		}

		data := buf[:n]
		deliver := func() {
			defer r.scratch.PutBuffer(buf)
			if herr := ept.handler.Handle(data); herr != nil {
				if r.cfg.Observer != nil {
					r.cfg.Observer.DispatchFailed()
				}
				r.log.Warn("endpoint handler failed",
					zap.String("name", ept.Name()),
					zap.String("endpoint", ept.ID()),
					zap.Error(herr))
				return
			}
			if r.cfg.Observer != nil {
				r.cfg.Observer.DispatchDelivered(n)
			}
		}
		if serr := r.wq.Submit(deliver); serr != nil {
			// Queue full or stopping: deliver in the reader's context
			// rather than dropping bytes.
			deliver()
		}
	}
}
