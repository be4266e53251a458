// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build unix && !linux && !darwin && !freebsd

package syncflag

import (
	"sync"
	"syscall"

	"golang.org/x/sys/unix"
)

// writeEnds maps the read end of each open pipe (the Descriptor) to its
// write end. Signal only has the Descriptor, so the write end lives here.
var writeEnds sync.Map // map[Descriptor]int

// openEvent creates a non-blocking, close-on-exec self-pipe. The read end is
// the descriptor, the write end is tracked in writeEnds.
func openEvent() (Descriptor, error) {
	var fds [2]int

	syscall.ForkLock.RLock()
	err := syscall.Pipe(fds[:])
	if err == nil {
		syscall.CloseOnExec(fds[0])
		syscall.CloseOnExec(fds[1])
	}
	syscall.ForkLock.RUnlock()
	if err != nil {
		return InvalidDescriptor, &ResourceAllocationError{Op: "pipe", Err: err}
	}

	// on failure, close both pipe ends to avoid a leak
	cleanup := func() {
		_ = syscall.Close(fds[0])
		_ = syscall.Close(fds[1])
	}
	if err := syscall.SetNonblock(fds[0], true); err != nil {
		cleanup()
		return InvalidDescriptor, &ResourceAllocationError{Op: "fcntl", Err: err}
	}
	if err := syscall.SetNonblock(fds[1], true); err != nil {
		cleanup()
		return InvalidDescriptor, &ResourceAllocationError{Op: "fcntl", Err: err}
	}

	writeEnds.Store(Descriptor(fds[0]), fds[1])
	return Descriptor(fds[0]), nil
}

// signalEvent writes one byte. A full pipe (EAGAIN) is already readable, so
// the signal has coalesced, and that is not an error.
func signalEvent(d Descriptor) error {
	w, ok := writeEnds.Load(d)
	if !ok {
		return &IOError{Op: "signal", Descriptor: d, Err: ErrBadDescriptor}
	}
	if _, err := unix.Write(w.(int), []byte{1}); err != nil && err != unix.EAGAIN {
		return &IOError{Op: "signal", Descriptor: d, Err: err}
	}
	return nil
}

func drainEvent(d Descriptor) (bool, error) {
	var (
		buf     [64]byte
		drained bool
	)
	for {
		n, err := unix.Read(int(d), buf[:])
		if n > 0 {
			drained = true
		}
		switch {
		case err == unix.EINTR:
			continue
		case err == unix.EAGAIN:
			return drained, nil
		case err != nil:
			return drained, &IOError{Op: "drain", Descriptor: d, Err: err}
		case n < len(buf):
			return drained, nil
		}
	}
}

func closeEvent(d Descriptor) error {
	w, ok := writeEnds.LoadAndDelete(d)
	if !ok {
		return &IOError{Op: "close", Descriptor: d, Err: ErrBadDescriptor}
	}
	errW := unix.Close(w.(int))
	errR := unix.Close(int(d))
	if errR != nil {
		return &IOError{Op: "close", Descriptor: d, Err: errR}
	}
	if errW != nil {
		return &IOError{Op: "close", Descriptor: d, Err: errW}
	}
	return nil
}
