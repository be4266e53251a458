// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build !unix && !windows

package syncflag

import (
	"sync"
	"time"
)

// emulatedEvent is the in-process stand-in for a kernel event, for platforms
// without one. ready is closed while the event is set, and replaced on drain.
type emulatedEvent struct {
	ready  chan struct{}
	closed chan struct{}
	mu     sync.Mutex
	set    bool
}

var emulated struct {
	events map[Descriptor]*emulatedEvent
	mu     sync.Mutex
	next   Descriptor
}

func lookupEvent(d Descriptor) *emulatedEvent {
	emulated.mu.Lock()
	defer emulated.mu.Unlock()
	return emulated.events[d]
}

// openEvent allocates a token. Tokens are never reused, so a stale
// descriptor is always detected.
func openEvent() (Descriptor, error) {
	emulated.mu.Lock()
	defer emulated.mu.Unlock()
	if emulated.events == nil {
		emulated.events = make(map[Descriptor]*emulatedEvent)
		emulated.next = 3
	}
	d := emulated.next
	emulated.next++
	emulated.events[d] = &emulatedEvent{
		ready:  make(chan struct{}),
		closed: make(chan struct{}),
	}
	return d, nil
}

func signalEvent(d Descriptor) error {
	e := lookupEvent(d)
	if e == nil {
		return &IOError{Op: "signal", Descriptor: d, Err: ErrBadDescriptor}
	}
	e.mu.Lock()
	if !e.set {
		e.set = true
		close(e.ready)
	}
	e.mu.Unlock()
	return nil
}

func drainEvent(d Descriptor) (bool, error) {
	e := lookupEvent(d)
	if e == nil {
		return false, &IOError{Op: "drain", Descriptor: d, Err: ErrBadDescriptor}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.set {
		return false, nil
	}
	e.set = false
	e.ready = make(chan struct{})
	return true, nil
}

func pollEvent(d Descriptor, timeout time.Duration) (bool, error) {
	e := lookupEvent(d)
	if e == nil {
		return false, &IOError{Op: "poll", Descriptor: d, Err: ErrBadDescriptor}
	}
	e.mu.Lock()
	ready := e.ready
	e.mu.Unlock()

	var expired <-chan time.Time
	switch {
	case timeout == 0:
		select {
		case <-ready:
			return true, nil
		default:
			return false, nil
		}
	case timeout > 0:
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case <-ready:
		return true, nil
	case <-expired:
		return false, nil
	case <-e.closed:
		return false, &IOError{Op: "poll", Descriptor: d, Err: ErrBadDescriptor}
	}
}

func closeEvent(d Descriptor) error {
	emulated.mu.Lock()
	e := emulated.events[d]
	delete(emulated.events, d)
	emulated.mu.Unlock()
	if e == nil {
		return &IOError{Op: "close", Descriptor: d, Err: ErrBadDescriptor}
	}
	close(e.closed)
	return nil
}
