// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package waitset

import (
	"errors"

	"github.com/joeycumines/logiface"
)

// DefaultMaxEvents is the default number of ready descriptors collected per
// Poll.
const DefaultMaxEvents = 64

type setOptions struct {
	logger    *logiface.Logger[logiface.Event]
	maxEvents int
}

// Option configures a Set.
type Option interface {
	applySet(*setOptions) error
}

type optionImpl struct {
	applySetFunc func(*setOptions) error
}

func (o *optionImpl) applySet(opts *setOptions) error {
	return o.applySetFunc(opts)
}

// WithLogger attaches a structured logger, which is also passed to the
// internal wake flag.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{func(opts *setOptions) error {
		opts.logger = logger
		return nil
	}}
}

// WithMaxEvents sets the maximum number of ready descriptors collected by a
// single Poll. Further ready descriptors are picked up by the next Poll.
func WithMaxEvents(n int) Option {
	return &optionImpl{func(opts *setOptions) error {
		if n <= 0 {
			return errors.New("waitset: max events must be positive")
		}
		opts.maxEvents = n
		return nil
	}}
}

func resolveOptions(opts []Option) (*setOptions, error) {
	cfg := &setOptions{
		maxEvents: DefaultMaxEvents,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applySet(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
