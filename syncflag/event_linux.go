// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build linux

package syncflag

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	efdCloexec  = unix.EFD_CLOEXEC
	efdNonblock = unix.EFD_NONBLOCK
)

// openEvent creates an eventfd, with its counter at 0.
// Non-blocking, so that draining an empty counter never parks the caller.
func openEvent() (Descriptor, error) {
	fd, err := unix.Eventfd(0, efdCloexec|efdNonblock)
	if err != nil {
		return InvalidDescriptor, &ResourceAllocationError{Op: "eventfd", Err: err}
	}
	return Descriptor(fd), nil
}

// signalEvent adds 1 to the eventfd counter. EAGAIN indicates the counter
// would overflow, which is reported like any other failure.
func signalEvent(d Descriptor) error {
	// native endianness, as required by eventfd(2)
	var one uint64 = 1
	buf := (*[8]byte)(unsafe.Pointer(&one))[:]

	if _, err := unix.Write(int(d), buf); err != nil {
		return &IOError{Op: "signal", Descriptor: d, Err: err}
	}
	return nil
}

// drainEvent reads (and so resets) the eventfd counter.
func drainEvent(d Descriptor) (bool, error) {
	var buf [8]byte
	if _, err := unix.Read(int(d), buf[:]); err != nil {
		if err == unix.EAGAIN {
			return false, nil
		}
		return false, &IOError{Op: "drain", Descriptor: d, Err: err}
	}
	return true, nil
}

func closeEvent(d Descriptor) error {
	if err := unix.Close(int(d)); err != nil {
		return &IOError{Op: "close", Descriptor: d, Err: err}
	}
	return nil
}
