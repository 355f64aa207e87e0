// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error taxonomy for hioload-ipc primitives.

package api

import "fmt"

// Common errors used across the library.
var (
	// ErrWouldBlock reports a zero-wait call on an unmet capacity condition.
	ErrWouldBlock = fmt.Errorf("operation would block")
	// ErrTimeout reports a bounded wait that expired with the condition still held.
	ErrTimeout = fmt.Errorf("operation timed out")
	// ErrCanceled reports a wait interrupted by a pipe reset. No data moved.
	ErrCanceled = fmt.Errorf("operation canceled by reset")
	// ErrPipeClosed reports a closed pipe: terminal for writers, end-of-stream
	// for readers once buffered bytes are drained.
	ErrPipeClosed = fmt.Errorf("pipe is closed")
	// ErrAlreadyClosed reports a second Close on the same pipe. Advisory only.
	ErrAlreadyClosed = fmt.Errorf("pipe already closed")
	// ErrNotInitialized reports an operation on a pipe that was never given storage.
	ErrNotInitialized = fmt.Errorf("pipe not initialized")

	ErrNotBound          = fmt.Errorf("endpoint not bound")
	ErrBindingInProgress = fmt.Errorf("endpoint binding already in progress")
	ErrNoEndpointSlots   = fmt.Errorf("no endpoint slots available")
	ErrAlreadyExists     = fmt.Errorf("resource already exists")
	ErrNotFound          = fmt.Errorf("resource not found")

	ErrQueueStopped = fmt.Errorf("work queue is stopped")
	ErrQueueFull    = fmt.Errorf("work queue is full")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeWouldBlock
	ErrCodeTimeout
	ErrCodeCanceled
	ErrCodeClosed
	ErrCodeAlreadyExists
	ErrCodeNotFound
	ErrCodeInternal
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
