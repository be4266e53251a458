// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package syncflag

import (
	"fmt"
	"time"

	"github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
)

// flagLogger wraps the optional logger with per-descriptor rate limiting of
// failure events. The zero value (and nil) logs nothing.
type flagLogger struct {
	logger  *logiface.Logger[logiface.Event]
	limiter *catrate.Limiter
}

func newFlagLogger(cfg *flagOptions) (l *flagLogger, err error) {
	l = &flagLogger{logger: cfg.logger}
	if cfg.logger == nil || len(cfg.rateLimits) == 0 {
		return l, nil
	}
	defer func() {
		if r := recover(); r != nil {
			l, err = nil, fmt.Errorf("syncflag: invalid failure rate limits: %v", r)
		}
	}()
	l.limiter = catrate.NewLimiter(cfg.rateLimits)
	return l, nil
}

func (l *flagLogger) opened(d Descriptor) {
	if l == nil {
		return
	}
	l.logger.Debug().
		Int("fd", int(d)).
		Log("syncflag: opened")
}

func (l *flagLogger) closed(d Descriptor, err error) {
	if l == nil {
		return
	}
	if err != nil {
		l.logger.Err().
			Int("fd", int(d)).
			Err(err).
			Log("syncflag: close failed")
		return
	}
	l.logger.Debug().
		Int("fd", int(d)).
		Log("syncflag: closed")
}

func (l *flagLogger) initFailed(err error) {
	if l == nil {
		return
	}
	l.logger.Err().
		Err(err).
		Log("syncflag: init failed")
}

// signalFailed logs at most as often as the configured limits allow, per
// descriptor, since a broken descriptor tends to fail on every signal.
func (l *flagLogger) signalFailed(d Descriptor, err error) {
	if l == nil {
		return
	}
	next, ok := l.limiter.Allow(d)
	if !ok {
		return
	}
	b := l.logger.Err().
		Int("fd", int(d)).
		Err(err)
	if next != (time.Time{}) {
		b = b.Dur("suppressed_for", time.Until(next))
	}
	b.Log("syncflag: signal failed")
}
