// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package syncflag

import (
	"errors"
	"time"

	"github.com/joeycumines/logiface"
)

// flagOptions holds configuration options for Flag creation.
type flagOptions struct {
	logger     *logiface.Logger[logiface.Event]
	rateLimits map[time.Duration]int
}

// Option configures a Flag instance.
type Option interface {
	applyFlag(*flagOptions) error
}

// optionImpl implements Option.
type optionImpl struct {
	applyFlagFunc func(*flagOptions) error
}

func (o *optionImpl) applyFlag(opts *flagOptions) error {
	return o.applyFlagFunc(opts)
}

// WithLogger attaches a structured logger. Lifecycle events are logged at
// debug, failures at error. A nil logger (the default) disables logging.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{func(opts *flagOptions) error {
		opts.logger = logger
		return nil
	}}
}

// WithFailureRateLimit configures the sliding windows used to rate limit
// logging of repeated signal failures, per descriptor. See
// [catrate.NewLimiter] for the constraints on rates. A nil map disables rate
// limiting, and every failure is logged.
//
// Defaults to 1 per second and 10 per minute.
func WithFailureRateLimit(rates map[time.Duration]int) Option {
	return &optionImpl{func(opts *flagOptions) error {
		for window, count := range rates {
			if window <= 0 || count <= 0 {
				return errors.New("syncflag: failure rate limits must be positive")
			}
		}
		opts.rateLimits = rates
		return nil
	}}
}

// resolveOptions applies Option instances to flagOptions.
func resolveOptions(opts []Option) (*flagOptions, error) {
	cfg := &flagOptions{
		rateLimits: map[time.Duration]int{
			time.Second: 1,
			time.Minute: 10,
		},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyFlag(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
