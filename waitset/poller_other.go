// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build !unix && !windows

package waitset

import (
	"time"

	"github.com/joeycumines/go-syncflag/syncflag"
)

type poller struct{}

func (*poller) init(int) error { return ErrNotSupported }

func (*poller) add(syncflag.Descriptor) error { return ErrNotSupported }

func (*poller) remove(syncflag.Descriptor) error { return ErrNotSupported }

func (*poller) wait(_ time.Duration, ready []syncflag.Descriptor) ([]syncflag.Descriptor, error) {
	return ready, ErrNotSupported
}

func (*poller) close() error { return nil }
