// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build windows

package waitset

import (
	"errors"
	"sync"
	"time"

	"github.com/joeycumines/go-syncflag/syncflag"
	"golang.org/x/sys/windows"
)

// maxWaitObjects is MAXIMUM_WAIT_OBJECTS, the WaitForMultipleObjects limit.
const maxWaitObjects = 64

var errTooManyHandles = errors.New("waitset: too many handles (max 64)")

// poller manages readability registration using WaitForMultipleObjects.
type poller struct {
	handles   []windows.Handle
	scratch   []windows.Handle
	maxEvents int
	mu        sync.Mutex
}

func (p *poller) init(maxEvents int) error {
	p.maxEvents = maxEvents
	return nil
}

func (p *poller) add(d syncflag.Descriptor) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.handles) >= maxWaitObjects {
		return errTooManyHandles
	}
	p.handles = append(p.handles, windows.Handle(d))
	return nil
}

func (p *poller) remove(d syncflag.Descriptor) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, h := range p.handles {
		if h == windows.Handle(d) {
			p.handles = append(p.handles[:i], p.handles[i+1:]...)
			return nil
		}
	}
	return ErrNotRegistered
}

// wait blocks until any handle is signalled, then checks the rest without
// blocking, since WaitForMultipleObjects only reports the lowest index.
func (p *poller) wait(timeout time.Duration, ready []syncflag.Descriptor) ([]syncflag.Descriptor, error) {
	p.mu.Lock()
	p.scratch = append(p.scratch[:0], p.handles...)
	p.mu.Unlock()

	ms := uint32(windows.INFINITE)
	if timeout >= 0 {
		ms = uint32(timeoutMillis(timeout))
	}
	ev, err := windows.WaitForMultipleObjects(p.scratch, false, ms)
	switch {
	case ev == uint32(windows.WAIT_TIMEOUT):
		return ready, nil
	case ev >= windows.WAIT_OBJECT_0 && ev < windows.WAIT_OBJECT_0+uint32(len(p.scratch)):
	default:
		if err == nil {
			err = syncflag.ErrBadDescriptor
		}
		return ready, err
	}

	first := int(ev - windows.WAIT_OBJECT_0)
	ready = append(ready, syncflag.Descriptor(p.scratch[first]))
	for _, h := range p.scratch[first+1:] {
		if len(ready) >= p.maxEvents {
			break
		}
		if ev, _ := windows.WaitForSingleObject(h, 0); ev == windows.WAIT_OBJECT_0 {
			ready = append(ready, syncflag.Descriptor(h))
		}
	}
	return ready, nil
}

func (p *poller) close() error {
	return nil
}
