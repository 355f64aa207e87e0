// Package pool
// Author: momentics <momentics@gmail.com>
//
// Reusable buffer and object pools for hioload-ipc. Supplies scratch
// buffers for endpoint dispatch and backing storage for pipes without
// per-transfer allocation.
package pool
