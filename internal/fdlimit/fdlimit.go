// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package fdlimit adjusts the process descriptor limit (RLIMIT_NOFILE), to
// simulate resource exhaustion.
package fdlimit

import (
	"errors"
)

// ErrNotSupported is returned on platforms without RLIMIT_NOFILE support.
var ErrNotSupported = errors.New("fdlimit: not supported on this platform")

// Lower sets the soft descriptor limit to n (capped at the hard limit), and
// returns a function restoring the previous limit. Descriptors already open
// above the new limit stay valid, but no new ones can be allocated.
//
// The limit is process wide: callers must not run concurrently with other
// code that allocates descriptors, unless that code expects to fail.
func Lower(n uint64) (restore func() error, err error) {
	return lower(n)
}
