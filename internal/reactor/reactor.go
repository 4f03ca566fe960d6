// File: internal/reactor/reactor.go
// License: Apache-2.0
//
// Platform-neutral event types.

package reactor

import "strings"

// EventType is a set of readiness conditions.
type EventType uint8

const (
	EventRead EventType = 1 << iota
	EventWrite
	EventError
)

func (e EventType) String() string {
	var parts []string
	if e&EventRead != 0 {
		parts = append(parts, "read")
	}
	if e&EventWrite != 0 {
		parts = append(parts, "write")
	}
	if e&EventError != 0 {
		parts = append(parts, "error")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Callback receives the descriptor and the conditions that became ready.
type Callback func(fd int, ev EventType)
