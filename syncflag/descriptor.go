// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package syncflag

import (
	"time"
)

// Descriptor is the raw, process-local handle of an open flag: a file
// descriptor on unix, a HANDLE value on Windows. It is an opaque token to
// everything except this package and whatever multiplexer waits on it.
//
// Copies of a Descriptor confer no ownership: they may be used with [Signal]
// (and, by the waiting side, [Poll] and [Drain]), but only the owner may
// [Close] it.
type Descriptor int

// InvalidDescriptor is the value of the descriptor of an unopened or closed
// [Flag].
const InvalidDescriptor Descriptor = -1

// Open allocates a new event, with its counter at 0, not inherited by
// subprocesses. It is the unsynchronised form of [Flag.Init], and fails with
// a [*ResourceAllocationError].
func Open() (Descriptor, error) {
	return openEvent()
}

// Signal increments the event's counter, waking any waiter blocked on the
// descriptor's readability. It is safe to call concurrently, from any
// goroutine. Signals that arrive before the waiter drains coalesce.
//
// Failures, including use of a closed descriptor, are reported as an
// [*IOError]. Nothing is retried.
func Signal(d Descriptor) error {
	return signalEvent(d)
}

// Drain consumes any pending signals, resetting the counter to 0, without
// blocking. It reports whether any signal was pending.
func Drain(d Descriptor) (bool, error) {
	return drainEvent(d)
}

// Poll reports whether the descriptor is readable (has pending signals),
// without consuming them. A zero timeout does not block, a negative timeout
// blocks until readable. An interrupted wait reports false.
func Poll(d Descriptor, timeout time.Duration) (bool, error) {
	return pollEvent(d, timeout)
}

// Close releases the event. It must be called exactly once per opened
// descriptor, and must not race any [Signal], [Drain], or [Poll] on the same
// descriptor, which is the caller's responsibility. On failure, an [*IOError]
// is returned and the descriptor must still be considered released.
func Close(d Descriptor) error {
	return closeEvent(d)
}

// timeoutMillis converts a timeout to poll(2) style milliseconds, rounding up
// so that a short positive timeout never degrades into a non-blocking check.
func timeoutMillis(timeout time.Duration) int {
	switch {
	case timeout < 0:
		return -1
	case timeout == 0:
		return 0
	}
	ms := (timeout + time.Millisecond - 1) / time.Millisecond
	if ms > 1<<31-1 {
		return 1<<31 - 1
	}
	return int(ms)
}
