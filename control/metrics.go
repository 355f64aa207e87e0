// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus-backed transfer telemetry for pipes and endpoint dispatch.
// Metrics implements api.PipeObserver so a pipe can report transfers
// without the core depending on any metrics library.

package control

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/momentics/hioload-ipc/api"
)

// Metrics aggregates the module's Prometheus collectors.
type Metrics struct {
	writes       prometheus.Counter
	reads        prometheus.Counter
	bytesWritten prometheus.Counter
	bytesRead    prometheus.Counter
	waitTimeouts prometheus.Counter
	resets       prometheus.Counter

	dispatches     prometheus.Counter
	dispatchErrors prometheus.Counter
	dispatchBytes  prometheus.Counter
}

// Ensure compliance with the observer contract.
var _ api.PipeObserver = (*Metrics)(nil)

// NewMetrics builds the collector set and registers it on reg.
// A nil Registerer skips registration (useful in tests).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		writes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hioipc_pipe_writes_total",
			Help: "Completed nonzero pipe writes.",
		}),
		reads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hioipc_pipe_reads_total",
			Help: "Completed nonzero pipe reads.",
		}),
		bytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hioipc_pipe_bytes_written_total",
			Help: "Bytes accepted into pipes.",
		}),
		bytesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hioipc_pipe_bytes_read_total",
			Help: "Bytes drained from pipes.",
		}),
		waitTimeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hioipc_pipe_wait_timeouts_total",
			Help: "Bounded waits that expired with the condition still held.",
		}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hioipc_pipe_resets_total",
			Help: "Pipe resets.",
		}),
		dispatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hioipc_endpoint_dispatch_total",
			Help: "Endpoint callback invocations.",
		}),
		dispatchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hioipc_endpoint_dispatch_errors_total",
			Help: "Endpoint callbacks that returned an error.",
		}),
		dispatchBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hioipc_endpoint_dispatch_bytes_total",
			Help: "Bytes delivered to endpoint callbacks.",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.writes, m.reads, m.bytesWritten, m.bytesRead,
			m.waitTimeouts, m.resets,
			m.dispatches, m.dispatchErrors, m.dispatchBytes,
		)
	}
	return m
}

// PipeWrote implements api.PipeObserver.
func (m *Metrics) PipeWrote(n int) {
	m.writes.Inc()
	m.bytesWritten.Add(float64(n))
}

// PipeRead implements api.PipeObserver.
func (m *Metrics) PipeRead(n int) {
	m.reads.Inc()
	m.bytesRead.Add(float64(n))
}

// PipeWaitTimeout implements api.PipeObserver.
func (m *Metrics) PipeWaitTimeout() { m.waitTimeouts.Inc() }

// PipeReset implements api.PipeObserver.
func (m *Metrics) PipeReset() { m.resets.Inc() }

// DispatchDelivered records one callback invocation of n bytes.
func (m *Metrics) DispatchDelivered(n int) {
	m.dispatches.Inc()
	m.dispatchBytes.Add(float64(n))
}

// DispatchFailed records a callback error.
func (m *Metrics) DispatchFailed() { m.dispatchErrors.Inc() }
