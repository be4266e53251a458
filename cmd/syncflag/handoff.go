// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/joeycumines/go-syncflag/syncflag"
	"github.com/joeycumines/go-syncflag/waitset"
	"github.com/joeycumines/logiface"
	"github.com/spf13/cobra"
)

func newHandoffCmd(root *rootOptions) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "handoff",
		Short: "Hand a descriptor to another goroutine, and wait for its signal.",
		Long: `Hand a descriptor to another goroutine, and wait for its signal.

The owner opens a flag and passes the raw descriptor to a signaler goroutine.
The signaler signals it, the owner observes readiness through a wait set, then
closes the flag. A final signal from the signaler must fail.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := root.logger()
			if err != nil {
				return err
			}
			return runHandoff(cmd.OutOrStdout(), logger, timeout)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "maximum time to observe the signal")
	return cmd
}

func runHandoff(out io.Writer, logger *logiface.Logger[logiface.Event], timeout time.Duration) error {
	flag, err := syncflag.New(syncflag.WithLogger(logger))
	if err != nil {
		return err
	}
	d, err := flag.Init()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "owner: opened fd=%d\n", d)

	set, err := waitset.New(waitset.WithLogger(logger))
	if err != nil {
		_ = flag.Close()
		return err
	}
	defer set.Close()

	observed := false
	if err := set.Register(d, func(d syncflag.Descriptor) {
		_, _ = syncflag.Drain(d)
		observed = true
	}); err != nil {
		_ = flag.Close()
		return err
	}

	handoff := make(chan syncflag.Descriptor)
	again := make(chan struct{})
	results := make(chan error)
	go func() {
		d := <-handoff
		results <- syncflag.Signal(d)
		<-again
		results <- syncflag.Signal(d)
	}()

	handoff <- d
	if err := <-results; err != nil {
		close(again)
		<-results
		_ = flag.Close()
		return fmt.Errorf("signaler: %w", err)
	}
	fmt.Fprintln(out, "signaler: signalled")

	start := time.Now()
	deadline := start.Add(timeout)
	for !observed && time.Now().Before(deadline) {
		if _, err := set.Poll(time.Until(deadline)); err != nil {
			close(again)
			<-results
			_ = flag.Close()
			return err
		}
	}
	if !observed {
		close(again)
		<-results
		_ = flag.Close()
		return fmt.Errorf("owner: signal not observed within %s", timeout)
	}
	fmt.Fprintf(out, "owner: observed readiness after %s\n", time.Since(start).Round(time.Microsecond))

	if err := set.Unregister(d); err != nil {
		_ = flag.Close()
		return err
	}
	if err := flag.Close(); err != nil {
		return err
	}
	fmt.Fprintln(out, "owner: closed")

	close(again)
	err = <-results
	var ioErr *syncflag.IOError
	if !errors.As(err, &ioErr) {
		return fmt.Errorf("signaler: expected stale descriptor failure, got %v", err)
	}
	fmt.Fprintf(out, "signaler: stale signal failed: %s\n", ioErr.Reason())
	return nil
}
