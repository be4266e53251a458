// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package syncflag

import (
	"sync"
)

// Flag owns at most one event descriptor, and enforces its lifecycle:
// Init once, Signal any number of times, Close once.
//
// The zero value is an unopened flag with logging disabled; use [New] to
// configure options.
type Flag struct {
	log   *flagLogger
	mu    sync.RWMutex
	state flagState
	fd    Descriptor
}

// New returns an unopened Flag, configured by the given options.
func New(opts ...Option) (*Flag, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	log, err := newFlagLogger(cfg)
	if err != nil {
		return nil, err
	}
	return &Flag{log: log, fd: InvalidDescriptor}, nil
}

// Init allocates the flag's event descriptor and returns it. The flag must be
// unopened: a second Init, with or without an intervening Close, fails with
// an [*InvalidStateError].
//
// If the OS cannot allocate the resource, a [*ResourceAllocationError] is
// returned and the flag remains unopened, so Init may be retried later.
func (f *Flag) Init() (Descriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if state := f.state.Load(); state != StateUnopened {
		return InvalidDescriptor, &InvalidStateError{Op: "init", State: state}
	}

	fd, err := openEvent()
	if err != nil {
		f.log.initFailed(err)
		return InvalidDescriptor, err
	}

	f.fd = fd
	f.state.Store(StateOpen)
	f.log.opened(fd)
	return fd, nil
}

// Signal signals the flag's descriptor, see [Signal]. It fails with an
// [*InvalidStateError] unless the flag is open.
func (f *Flag) Signal() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if state := f.state.Load(); state != StateOpen {
		return &InvalidStateError{Op: "signal", State: state}
	}

	if err := signalEvent(f.fd); err != nil {
		f.log.signalFailed(f.fd, err)
		return err
	}
	return nil
}

// Drain consumes pending signals on the flag's descriptor, see [Drain].
func (f *Flag) Drain() (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if state := f.state.Load(); state != StateOpen {
		return false, &InvalidStateError{Op: "drain", State: state}
	}

	return drainEvent(f.fd)
}

// Close releases the flag's descriptor. It waits for in-flight calls to
// [Flag.Signal] and [Flag.Drain], and fails with an [*InvalidStateError]
// unless the flag is open.
//
// The flag is closed even if the release fails, in which case an [*IOError]
// is returned, and the descriptor must not be reused.
func (f *Flag) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.state.TryTransition(StateOpen, StateClosed) {
		return &InvalidStateError{Op: "close", State: f.state.Load()}
	}

	fd := f.fd
	f.fd = InvalidDescriptor
	err := closeEvent(fd)
	f.log.closed(fd, err)
	return err
}

// Descriptor returns the flag's descriptor, or [InvalidDescriptor] unless the
// flag is open.
func (f *Flag) Descriptor() Descriptor {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.state.Load() != StateOpen {
		return InvalidDescriptor
	}
	return f.fd
}

// State returns the flag's current lifecycle state.
func (f *Flag) State() State {
	return f.state.Load()
}
