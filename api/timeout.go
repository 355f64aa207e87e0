// File: api/timeout.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Wait budget for blocking pipe operations. Three legal shapes: poll
// (NoWait), bounded duration (After), and unbounded wait (Forever).

package api

import "time"

// Timeout is the wait budget accepted by every blocking operation.
type Timeout time.Duration

const (
	// NoWait polls: the call never suspends, failing with ErrWouldBlock
	// if the capacity condition is not already met.
	NoWait Timeout = 0
	// Forever suspends until the condition is met or the pipe is
	// reset or closed.
	Forever Timeout = -1
)

// After returns a bounded wait budget. Non-positive durations degrade
// to NoWait.
func After(d time.Duration) Timeout {
	if d <= 0 {
		return NoWait
	}
	return Timeout(d)
}

// IsNoWait reports whether the budget forbids suspension.
func (t Timeout) IsNoWait() bool { return t == NoWait }

// IsForever reports whether the budget is unbounded.
func (t Timeout) IsForever() bool { return t < 0 }

// Duration returns the bounded budget as a time.Duration.
// Only meaningful when neither IsNoWait nor IsForever holds.
func (t Timeout) Duration() time.Duration { return time.Duration(t) }
