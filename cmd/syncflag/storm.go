// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/joeycumines/go-syncflag/syncflag"
	"github.com/joeycumines/go-syncflag/waitset"
	"github.com/joeycumines/logiface"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type stormResult struct {
	Signals int
	Wakeups int
	Rounds  int
}

func newStormCmd(root *rootOptions) *cobra.Command {
	var (
		signalers int
		rounds    int
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "storm",
		Short: "Signal one flag from many goroutines, and count wakeups.",
		Long: `Signal one flag from many goroutines, and count wakeups.

Each round, every signaler signals the flag once, concurrently. The waiting
side then polls, and drains. Signals coalesce, so each round should produce
exactly one wakeup, however many signalers there are.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if signalers <= 0 || rounds <= 0 {
				return fmt.Errorf("signalers and rounds must be positive")
			}
			logger, err := root.logger()
			if err != nil {
				return err
			}
			res, err := runStorm(cmd.Context(), logger, signalers, rounds, timeout)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rounds=%d signals=%d wakeups=%d\n", res.Rounds, res.Signals, res.Wakeups)
			if res.Wakeups != res.Rounds {
				return fmt.Errorf("expected %d wakeups, observed %d", res.Rounds, res.Wakeups)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&signalers, "signalers", 16, "concurrent signalling goroutines")
	cmd.Flags().IntVar(&rounds, "rounds", 100, "number of signal/wait rounds")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "maximum wait per round")
	return cmd
}

func runStorm(ctx context.Context, logger *logiface.Logger[logiface.Event], signalers, rounds int, timeout time.Duration) (res stormResult, err error) {
	if ctx == nil {
		ctx = context.Background()
	}

	flag, err := syncflag.New(syncflag.WithLogger(logger))
	if err != nil {
		return res, err
	}
	d, err := flag.Init()
	if err != nil {
		return res, err
	}
	defer func() {
		if closeErr := flag.Close(); err == nil {
			err = closeErr
		}
	}()

	set, err := waitset.New(waitset.WithLogger(logger))
	if err != nil {
		return res, err
	}
	defer set.Close()

	var drainErr error
	if err := set.Register(d, func(d syncflag.Descriptor) {
		if _, err := syncflag.Drain(d); err != nil && drainErr == nil {
			drainErr = err
		}
		res.Wakeups++
	}); err != nil {
		return res, err
	}
	defer set.Unregister(d)

	for round := 0; round < rounds; round++ {
		g, gctx := errgroup.WithContext(ctx)
		for i := 0; i < signalers; i++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				return syncflag.Signal(d)
			})
		}
		if err := g.Wait(); err != nil {
			return res, err
		}
		res.Signals += signalers

		n, err := set.Poll(timeout)
		if err != nil {
			return res, err
		}
		if drainErr != nil {
			return res, drainErr
		}
		if n == 0 {
			return res, fmt.Errorf("round %d: no wakeup within %s", round, timeout)
		}
		res.Rounds++

		logger.Debug().
			Int("round", round).
			Int("wakeups", res.Wakeups).
			Log("storm: round complete")
	}

	logger.Info().
		Int("rounds", res.Rounds).
		Int("signals", res.Signals).
		Int("wakeups", res.Wakeups).
		Log("storm: done")
	return res, nil
}
