// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build windows

package syncflag

import (
	"time"

	"golang.org/x/sys/windows"
)

// openEvent creates an unnamed, manual-reset event, initially non-signalled.
// Manual reset keeps it level-triggered (waits do not consume it), and nil
// security attributes make the handle non-inheritable.
func openEvent() (Descriptor, error) {
	h, err := windows.CreateEvent(nil, 1, 0, nil)
	if err != nil {
		return InvalidDescriptor, &ResourceAllocationError{Op: "CreateEvent", Err: err}
	}
	return Descriptor(h), nil
}

func signalEvent(d Descriptor) error {
	if err := windows.SetEvent(windows.Handle(d)); err != nil {
		return &IOError{Op: "signal", Descriptor: d, Err: err}
	}
	return nil
}

func drainEvent(d Descriptor) (bool, error) {
	ready, err := pollEvent(d, 0)
	if err != nil || !ready {
		return false, err
	}
	if err := windows.ResetEvent(windows.Handle(d)); err != nil {
		return false, &IOError{Op: "drain", Descriptor: d, Err: err}
	}
	return true, nil
}

func pollEvent(d Descriptor, timeout time.Duration) (bool, error) {
	ms := uint32(windows.INFINITE)
	if timeout >= 0 {
		ms = uint32(timeoutMillis(timeout))
	}
	ev, err := windows.WaitForSingleObject(windows.Handle(d), ms)
	switch ev {
	case windows.WAIT_OBJECT_0:
		return true, nil
	case uint32(windows.WAIT_TIMEOUT):
		return false, nil
	default:
		if err == nil {
			err = ErrBadDescriptor
		}
		return false, &IOError{Op: "poll", Descriptor: d, Err: err}
	}
}

func closeEvent(d Descriptor) error {
	if err := windows.CloseHandle(windows.Handle(d)); err != nil {
		return &IOError{Op: "close", Descriptor: d, Err: err}
	}
	return nil
}
