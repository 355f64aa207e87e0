// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations, DTOs, and constants.

package api

import "time"

// EndpointStatus enumerates the binding state of an endpoint.
type EndpointStatus int

const (
	EndpointUnknown EndpointStatus = iota
	EndpointRegistered
	EndpointBound
	EndpointClosed
)

func (s EndpointStatus) String() string {
	switch s {
	case EndpointRegistered:
		return "registered"
	case EndpointBound:
		return "bound"
	case EndpointClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ServiceInfo exposes descriptive build- and runtime info for external tools.
type ServiceInfo struct {
	Name      string
	Version   string
	Build     string
	StartedAt time.Time
}
