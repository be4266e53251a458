// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package syncflag

import (
	"sync/atomic"
)

// State represents the lifecycle state of a [Flag].
//
// State Machine:
//
//	StateUnopened (0) → StateOpen (1)   [Init()]
//	StateOpen (1)     → StateClosed (2) [Close(), even if the release fails]
//	StateClosed (2)   → (terminal)
//
// A failed Init leaves the flag in StateUnopened.
type State uint32

const (
	// StateUnopened indicates no kernel resource has been allocated.
	StateUnopened State = iota
	// StateOpen indicates exactly one live kernel resource is held.
	StateOpen
	// StateClosed indicates the resource was released (or its release
	// failed), and the descriptor must not be used again.
	StateClosed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateUnopened:
		return "Unopened"
	case StateOpen:
		return "Open"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// flagState is the atomic holder for a State. Transitions happen under the
// owning Flag's write lock, Load is safe from anywhere.
type flagState struct {
	v atomic.Uint32
}

func (s *flagState) Load() State {
	return State(s.v.Load())
}

func (s *flagState) Store(state State) {
	s.v.Store(uint32(state))
}

// TryTransition attempts to atomically transition from one state to another.
func (s *flagState) TryTransition(from, to State) bool {
	return s.v.CompareAndSwap(uint32(from), uint32(to))
}
