// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build linux

package waitset

import (
	"time"

	"github.com/joeycumines/go-syncflag/syncflag"
	"golang.org/x/sys/unix"
)

// poller manages readability registration using epoll, level-triggered.
type poller struct {
	events []unix.EpollEvent // preallocated, sized by max events
	epfd   int
}

func (p *poller) init(maxEvents int) error {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return err
	}
	p.epfd = epfd
	p.events = make([]unix.EpollEvent, maxEvents)
	return nil
}

func (p *poller) add(d syncflag.Descriptor) error {
	ev := &unix.EpollEvent{
		Events: unix.EPOLLIN,
		Fd:     int32(d),
	}
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, int(d), ev)
}

func (p *poller) remove(d syncflag.Descriptor) error {
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, int(d), nil)
}

// wait appends ready descriptors to ready. Error and hangup conditions count
// as ready, so the callback observes them when it drains.
func (p *poller) wait(timeout time.Duration, ready []syncflag.Descriptor) ([]syncflag.Descriptor, error) {
	n, err := unix.EpollWait(p.epfd, p.events, timeoutMillis(timeout))
	if err != nil {
		if err == unix.EINTR {
			return ready, nil
		}
		return ready, err
	}
	for i := 0; i < n; i++ {
		if p.events[i].Events&(unix.EPOLLIN|unix.EPOLLERR|unix.EPOLLHUP) != 0 {
			ready = append(ready, syncflag.Descriptor(p.events[i].Fd))
		}
	}
	return ready, nil
}

func (p *poller) close() error {
	return unix.Close(p.epfd)
}
