// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build darwin || freebsd

package syncflag

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// userIdent is the ident of the single EVFILT_USER event per kqueue.
const userIdent = 0

// openEvent creates a kqueue holding one EVFILT_USER event. EV_CLEAR resets
// the trigger once it is retrieved, which gives the same coalescing, drain
// to reset behavior as an eventfd. The kqueue descriptor itself is readable
// while the event is triggered.
func openEvent() (Descriptor, error) {
	// hold ForkLock so a concurrent fork+exec cannot inherit kq before it is
	// marked close-on-exec (darwin has no kqueue1)
	syscall.ForkLock.RLock()
	kq, err := unix.Kqueue()
	if err == nil {
		unix.CloseOnExec(kq)
	}
	syscall.ForkLock.RUnlock()
	if err != nil {
		return InvalidDescriptor, &ResourceAllocationError{Op: "kqueue", Err: err}
	}

	var changes [1]unix.Kevent_t
	unix.SetKevent(&changes[0], userIdent, unix.EVFILT_USER, unix.EV_ADD|unix.EV_CLEAR)
	if _, err := unix.Kevent(kq, changes[:], nil, nil); err != nil {
		_ = unix.Close(kq)
		return InvalidDescriptor, &ResourceAllocationError{Op: "kevent", Err: err}
	}

	return Descriptor(kq), nil
}

func signalEvent(d Descriptor) error {
	var changes [1]unix.Kevent_t
	unix.SetKevent(&changes[0], userIdent, unix.EVFILT_USER, 0)
	changes[0].Fflags = unix.NOTE_TRIGGER
	if _, err := unix.Kevent(int(d), changes[:], nil, nil); err != nil {
		return &IOError{Op: "signal", Descriptor: d, Err: err}
	}
	return nil
}

// drainEvent retrieves the event without blocking, clearing the trigger.
func drainEvent(d Descriptor) (bool, error) {
	var (
		events  [1]unix.Kevent_t
		timeout unix.Timespec
	)
	for {
		n, err := unix.Kevent(int(d), nil, events[:], &timeout)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, &IOError{Op: "drain", Descriptor: d, Err: err}
		}
		return n > 0, nil
	}
}

func closeEvent(d Descriptor) error {
	if err := unix.Close(int(d)); err != nil {
		return &IOError{Op: "close", Descriptor: d, Err: err}
	}
	return nil
}
