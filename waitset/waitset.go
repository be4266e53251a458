// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package waitset multiplexes readability of [syncflag.Descriptor] values,
// blocking until one or more flags are signalled, and dispatching callbacks
// for each.
//
// It is the waiting side that the syncflag package deliberately leaves out:
// epoll on Linux, poll(2) on other unix, and WaitForMultipleObjects on
// Windows. Other platforms return [ErrNotSupported].
//
// Descriptors are level-triggered, so a callback should [syncflag.Drain] its
// descriptor, or it will be dispatched again on the next [Set.Poll].
package waitset

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeycumines/go-syncflag/syncflag"
	"github.com/joeycumines/logiface"
)

// Standard errors.
var (
	ErrAlreadyRegistered = errors.New("waitset: descriptor already registered")
	ErrNotRegistered     = errors.New("waitset: descriptor not registered")
	ErrInvalidDescriptor = errors.New("waitset: invalid descriptor")
	ErrNilCallback       = errors.New("waitset: nil callback")
	ErrClosed            = errors.New("waitset: closed")
	ErrNotSupported      = errors.New("waitset: not supported on this platform")
)

// Callback is invoked, inline from [Set.Poll], for each readable descriptor.
type Callback func(d syncflag.Descriptor)

// Set waits on a set of descriptors. Register, Unregister, and Wake are safe
// to call concurrently with Poll. Poll itself must not be called
// concurrently.
type Set struct {
	logger    *logiface.Logger[logiface.Event]
	wake      *syncflag.Flag
	callbacks map[syncflag.Descriptor]Callback
	ready     []syncflag.Descriptor
	poller    poller
	wakeFd    syncflag.Descriptor
	mu        sync.RWMutex
	closed    atomic.Bool
}

// New creates a Set, including the internal flag used by [Set.Wake].
func New(opts ...Option) (*Set, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	s := &Set{
		logger:    cfg.logger,
		callbacks: make(map[syncflag.Descriptor]Callback),
		ready:     make([]syncflag.Descriptor, 0, cfg.maxEvents),
	}

	if err := s.poller.init(cfg.maxEvents); err != nil {
		return nil, err
	}

	s.wake, err = syncflag.New(syncflag.WithLogger(cfg.logger))
	if err == nil {
		s.wakeFd, err = s.wake.Init()
	}
	if err != nil {
		_ = s.poller.close()
		return nil, err
	}

	if err := s.poller.add(s.wakeFd); err != nil {
		_ = s.wake.Close()
		_ = s.poller.close()
		return nil, err
	}

	return s, nil
}

// Register starts monitoring d for readability, calling cb from Poll while d
// is readable.
func (s *Set) Register(d syncflag.Descriptor, cb Callback) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if d < 0 {
		return ErrInvalidDescriptor
	}
	if cb == nil {
		return ErrNilCallback
	}

	s.mu.Lock()
	if _, ok := s.callbacks[d]; ok || d == s.wakeFd {
		s.mu.Unlock()
		return ErrAlreadyRegistered
	}
	s.callbacks[d] = cb
	s.mu.Unlock()

	if err := s.poller.add(d); err != nil {
		s.mu.Lock()
		delete(s.callbacks, d) // Rollback
		s.mu.Unlock()
		return err
	}

	s.logger.Debug().
		Int("fd", int(d)).
		Log("waitset: registered")
	return nil
}

// Unregister stops monitoring d. It must be called before d is closed.
//
// A callback already copied by an in-flight Poll may still run after
// Unregister returns.
func (s *Set) Unregister(d syncflag.Descriptor) error {
	if s.closed.Load() {
		return ErrClosed
	}

	s.mu.Lock()
	if _, ok := s.callbacks[d]; !ok {
		s.mu.Unlock()
		return ErrNotRegistered
	}
	delete(s.callbacks, d)
	s.mu.Unlock()

	s.logger.Debug().
		Int("fd", int(d)).
		Log("waitset: unregistered")
	return s.poller.remove(d)
}

// Poll waits up to timeout for registered descriptors to become readable,
// and calls their callbacks. A negative timeout blocks until a descriptor is
// readable or [Set.Wake] is called, zero does not block.
//
// Returns the number of callbacks dispatched. Wake-ups, and interrupted
// waits, dispatch nothing.
func (s *Set) Poll(timeout time.Duration) (int, error) {
	if s.closed.Load() {
		return 0, ErrClosed
	}

	ready, err := s.poller.wait(timeout, s.ready[:0])
	if err != nil {
		s.logger.Err().
			Err(err).
			Log("waitset: poll failed")
		return 0, err
	}
	s.ready = ready[:0]

	var n int
	for _, d := range ready {
		if d == s.wakeFd {
			if _, err := s.wake.Drain(); err != nil {
				return n, err
			}
			continue
		}

		// Copy callback under read lock, call outside
		s.mu.RLock()
		cb := s.callbacks[d]
		s.mu.RUnlock()

		if cb != nil {
			cb(d)
			n++
		}
	}

	return n, nil
}

// Wake interrupts a blocked (or the next) Poll. Safe to call from any
// goroutine.
func (s *Set) Wake() error {
	return s.wake.Signal()
}

// Run calls Poll until ctx is done, returning ctx.Err(), or the first Poll
// error.
func (s *Set) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = s.Wake()
	})
	defer stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.Poll(-1); err != nil {
			return err
		}
	}
}

// Close releases the Set, and its wake flag. Registered descriptors are not
// closed. Close must not be called concurrently with Poll.
func (s *Set) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	return errors.Join(s.wake.Close(), s.poller.close())
}

// timeoutMillis converts a timeout to poll(2) style milliseconds, rounding
// positive values up.
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
