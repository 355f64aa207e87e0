// control/control_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package control

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SnapshotIsolation(t *testing.T) {
	cs := NewConfigStore()
	cs.SetConfig(map[string]any{"pipe.capacity": 4096})

	snap := cs.GetSnapshot()
	snap["pipe.capacity"] = 1

	assert.Equal(t, 4096, cs.GetInt("pipe.capacity", 0))
}

func TestConfigStore_TypedReads(t *testing.T) {
	cs := NewConfigStore()
	cs.SetConfig(map[string]any{"metrics": true, "depth": int64(32)})

	assert.True(t, cs.GetBool("metrics", false))
	assert.Equal(t, 32, cs.GetInt("depth", 0))
	assert.Equal(t, 7, cs.GetInt("missing", 7))
	assert.False(t, cs.GetBool("missing", false))
}

func TestConfigStore_ReloadListener(t *testing.T) {
	cs := NewConfigStore()
	reloaded := make(chan struct{}, 1)
	cs.OnReload(func() { reloaded <- struct{}{} })

	cs.SetConfig(map[string]any{"k": "v"})

	select {
	case <-reloaded:
	case <-time.After(time.Second):
		t.Fatal("reload listener not invoked")
	}
}

func TestController_ProbesAndStats(t *testing.T) {
	c := NewController()
	c.RegisterDebugProbe("pipe.test", func() any { return 42 })

	stats := c.Stats()
	assert.Equal(t, 42, stats["pipe.test"])
	assert.Contains(t, stats, "runtime.cpus")
}

func TestMetrics_RegistersAndCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.PipeWrote(10)
	m.PipeRead(4)
	m.PipeWaitTimeout()
	m.PipeReset()
	m.DispatchDelivered(4)
	m.DispatchFailed()

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := make(map[string]float64)
	for _, f := range families {
		byName[f.GetName()] = f.GetMetric()[0].GetCounter().GetValue()
	}
	assert.Equal(t, float64(10), byName["hioipc_pipe_bytes_written_total"])
	assert.Equal(t, float64(1), byName["hioipc_pipe_reads_total"])
	assert.Equal(t, float64(1), byName["hioipc_pipe_wait_timeouts_total"])
	assert.Equal(t, float64(1), byName["hioipc_endpoint_dispatch_errors_total"])
}

func TestMetrics_NilRegisterer(t *testing.T) {
	m := NewMetrics(nil)
	m.PipeWrote(1) // must not panic without registration
}
