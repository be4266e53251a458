// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build unix && !linux

package waitset

import (
	"sync"
	"time"

	"github.com/joeycumines/go-syncflag/syncflag"
	"golang.org/x/sys/unix"
)

// poller manages readability registration using poll(2). The pollfd set is
// copied per wait, so registration never blocks on a sleeping poller.
type poller struct {
	index     map[syncflag.Descriptor]int
	fds       []unix.PollFd
	scratch   []unix.PollFd
	maxEvents int
	mu        sync.Mutex
}

func (p *poller) init(maxEvents int) error {
	p.index = make(map[syncflag.Descriptor]int)
	p.maxEvents = maxEvents
	return nil
}

func (p *poller) add(d syncflag.Descriptor) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.index[d]; ok {
		return ErrAlreadyRegistered
	}
	p.index[d] = len(p.fds)
	p.fds = append(p.fds, unix.PollFd{Fd: int32(d), Events: unix.POLLIN})
	return nil
}

func (p *poller) remove(d syncflag.Descriptor) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	i, ok := p.index[d]
	if !ok {
		return ErrNotRegistered
	}
	last := len(p.fds) - 1
	if i != last {
		p.fds[i] = p.fds[last]
		p.index[syncflag.Descriptor(p.fds[i].Fd)] = i
	}
	p.fds = p.fds[:last]
	delete(p.index, d)
	return nil
}

func (p *poller) wait(timeout time.Duration, ready []syncflag.Descriptor) ([]syncflag.Descriptor, error) {
	p.mu.Lock()
	p.scratch = append(p.scratch[:0], p.fds...)
	p.mu.Unlock()

	n, err := unix.Poll(p.scratch, timeoutMillis(timeout))
	if err != nil {
		if err == unix.EINTR {
			return ready, nil
		}
		return ready, err
	}
	for i := 0; i < len(p.scratch) && n > 0; i++ {
		if p.scratch[i].Revents == 0 {
			continue
		}
		n--
		if len(ready) < p.maxEvents {
			ready = append(ready, syncflag.Descriptor(p.scratch[i].Fd))
		}
	}
	return ready, nil
}

func (p *poller) close() error {
	return nil
}
