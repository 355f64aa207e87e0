// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime configuration, metrics, and debug introspection layer for
// hioload-ipc. Provides concurrent-safe state handling primitives:
//   - Immutable snapshot config reads and atomic updates
//   - Runtime observers for hot-reload
//   - Prometheus-backed transfer telemetry
//   - Debug hooks and probe registration
package control
