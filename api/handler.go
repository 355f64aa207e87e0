// File: api/handler.go
// Package api defines Handler interface.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Handler processes payloads delivered to a bound endpoint.
type Handler interface {
	Handle(data []byte) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(data []byte) error

// Handle implements Handler.
func (f HandlerFunc) Handle(data []byte) error { return f(data) }
