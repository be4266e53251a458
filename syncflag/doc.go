// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package syncflag provides a payload-free, cross-goroutine wake primitive,
// backed by an OS-level event descriptor.
//
// A [Flag] owns at most one descriptor. The owner calls [Flag.Init] once, and
// may hand the raw [Descriptor] to any number of goroutines, which call
// [Signal] to mark the flag readable. Blocking on readability is left to an
// external multiplexer (see the waitset package, or any poll/epoll/kqueue
// loop), which consumes pending signals via [Drain]. Eventually the owner
// calls [Flag.Close].
//
// # Semantics
//
// Signals coalesce: any number of [Signal] calls before a [Drain] produce a
// single readable transition. Descriptors are level-triggered, and are
// created close-on-exec, so they never leak into subprocesses.
//
// # Platform Support
//
//   - Linux: eventfd
//   - macOS, FreeBSD: kqueue with an EVFILT_USER event
//   - Other unix: non-blocking self-pipe (the descriptor is the read end)
//   - Windows: manual-reset, non-inheritable event object
//   - Other (js/wasm, wasip1, plan9): in-process emulation, no OS object
//
// # Errors
//
// OS failures are reported as [*ResourceAllocationError] (from
// [Flag.Init]) or [*IOError] (everything else), each carrying the OS reason
// string. Lifecycle misuse of a [Flag], such as calling [Flag.Init] twice,
// returns [*InvalidStateError], matching [ErrInvalidState].
//
// # Thread Safety
//
// [Signal] may be called concurrently from any goroutine. The package-level
// [Close] is not synchronised against [Signal]: callers must ensure no signal
// or wait is in flight. The methods of [Flag] are synchronised, so that
// [Flag.Signal] after [Flag.Close] fails with [*InvalidStateError] rather
// than touching a possibly reused descriptor number.
package syncflag
