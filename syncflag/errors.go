// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package syncflag

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState is matched (via [errors.Is]) by every
	// [*InvalidStateError].
	ErrInvalidState = errors.New("syncflag: invalid state")

	// ErrBadDescriptor is returned, wrapped in an [*IOError], by backends
	// that track descriptors themselves, when given an unknown or stale
	// descriptor. Backends that defer to the kernel report the OS error
	// (e.g. EBADF) instead.
	ErrBadDescriptor = errors.New("syncflag: bad descriptor")
)

// ResourceAllocationError is returned by [Flag.Init] (and [Open]) when the
// OS cannot allocate the event resource, e.g. due to descriptor limits.
type ResourceAllocationError struct {
	// Err is the underlying OS error.
	Err error
	// Op is the name of the failed system call.
	Op string
}

// Error implements the error interface.
func (e *ResourceAllocationError) Error() string {
	return fmt.Sprintf("syncflag: resource allocation failed: %s: %s", e.Op, e.Reason())
}

// Reason returns the OS-reported reason string.
func (e *ResourceAllocationError) Reason() string {
	return reason(e.Err)
}

// Unwrap returns the underlying cause for use with [errors.Is] and [errors.As].
func (e *ResourceAllocationError) Unwrap() error {
	return e.Err
}

// IOError is returned when signalling, draining, polling, or closing a
// descriptor fails. Use against a stale (already closed) descriptor is a
// usage error, which is reported this way when the OS can detect it.
type IOError struct {
	// Err is the underlying OS error.
	Err error
	// Op is the name of the failed operation.
	Op string
	// Descriptor is the descriptor the operation was attempted on.
	Descriptor Descriptor
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("syncflag: %s fd=%d: %s", e.Op, e.Descriptor, e.Reason())
}

// Reason returns the OS-reported reason string.
func (e *IOError) Reason() string {
	return reason(e.Err)
}

// Unwrap returns the underlying cause for use with [errors.Is] and [errors.As].
func (e *IOError) Unwrap() error {
	return e.Err
}

// InvalidStateError indicates a [Flag] method was called in a lifecycle state
// that does not permit it, e.g. [Flag.Init] on an already open flag. These are
// programming errors, never transient conditions.
type InvalidStateError struct {
	// Op is the attempted operation.
	Op string
	// State is the state the flag was in.
	State State
}

// Error implements the error interface.
func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("syncflag: invalid state: cannot %s a flag that is %s", e.Op, e.State)
}

// Is reports true for [ErrInvalidState].
func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

// Reason returns a human-readable reason string.
func (e *InvalidStateError) Reason() string {
	return fmt.Sprintf("flag is %s", e.State)
}

func reason(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
