// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build unix

package syncflag

import (
	"time"

	"golang.org/x/sys/unix"
)

// pollEvent waits for POLLIN on the descriptor. On the kqueue and pipe
// backends the descriptor is also the readable side, so this is shared.
func pollEvent(d Descriptor, timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(d), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, timeoutMillis(timeout))
	if err != nil {
		if err == unix.EINTR {
			return false, nil
		}
		return false, &IOError{Op: "poll", Descriptor: d, Err: err}
	}
	if n == 0 {
		return false, nil
	}
	if fds[0].Revents&unix.POLLNVAL != 0 {
		return false, &IOError{Op: "poll", Descriptor: d, Err: unix.EBADF}
	}
	return fds[0].Revents&unix.POLLIN != 0, nil
}
