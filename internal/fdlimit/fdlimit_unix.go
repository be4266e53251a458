// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build linux || darwin || netbsd || openbsd

package fdlimit

import (
	"golang.org/x/sys/unix"
)

func lower(n uint64) (func() error, error) {
	var prev unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &prev); err != nil {
		return nil, err
	}
	next := prev
	next.Cur = min(n, prev.Max)
	if err := unix.Setrlimit(unix.RLIMIT_NOFILE, &next); err != nil {
		return nil, err
	}
	return func() error {
		return unix.Setrlimit(unix.RLIMIT_NOFILE, &prev)
	}, nil
}
