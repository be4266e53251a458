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

	"github.com/joeycumines/go-syncflag/internal/fdlimit"
	"github.com/joeycumines/go-syncflag/syncflag"
	"github.com/joeycumines/logiface"
	"github.com/spf13/cobra"
)

type exhaustResult struct {
	Err       *syncflag.ResourceAllocationError
	Allocated int
}

func newExhaustCmd(root *rootOptions) *cobra.Command {
	var limit uint64

	cmd := &cobra.Command{
		Use:   "exhaust",
		Short: "Lower the descriptor limit, and open flags until allocation fails.",
		Long: `Lower the descriptor limit, and open flags until allocation fails.

The failed flag must remain unopened, and must initialise successfully once
the other flags are closed and the limit is restored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := root.logger()
			if err != nil {
				return err
			}
			res, err := runExhaust(logger, limit)
			if err != nil {
				return err
			}
			printExhaust(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&limit, "limit", 64, "soft descriptor limit to apply")
	return cmd
}

func runExhaust(logger *logiface.Logger[logiface.Event], limit uint64) (res exhaustResult, err error) {
	restore, err := fdlimit.Lower(limit)
	if err != nil {
		return res, err
	}
	defer func() {
		if restore != nil {
			if restoreErr := restore(); err == nil {
				err = restoreErr
			}
		}
	}()

	var (
		held   []*syncflag.Flag
		failed *syncflag.Flag
	)
	defer func() {
		for _, f := range held {
			_ = f.Close()
		}
	}()

	// bounded, since the limit does not apply to descriptors already open
	for i := uint64(0); i <= limit; i++ {
		f, err := syncflag.New(syncflag.WithLogger(logger))
		if err != nil {
			return res, err
		}
		if _, err := f.Init(); err != nil {
			if !errors.As(err, &res.Err) {
				return res, err
			}
			failed = f
			break
		}
		held = append(held, f)
	}
	res.Allocated = len(held)
	if failed == nil {
		return res, fmt.Errorf("allocated %d flags without failure", res.Allocated)
	}
	if state := failed.State(); state != syncflag.StateUnopened {
		return res, fmt.Errorf("failed flag is %s, expected %s", state, syncflag.StateUnopened)
	}

	for _, f := range held {
		if err := f.Close(); err != nil {
			return res, err
		}
	}
	held = nil
	if err := restore(); err != nil {
		return res, err
	}
	restore = nil

	if _, err := failed.Init(); err != nil {
		return res, fmt.Errorf("re-init after release: %w", err)
	}
	return res, failed.Close()
}

func printExhaust(w io.Writer, res exhaustResult) {
	fmt.Fprintf(w, "allocated=%d\n", res.Allocated)
	fmt.Fprintf(w, "init failed: op=%s reason=%q\n", res.Err.Op, res.Err.Reason())
	fmt.Fprintln(w, "re-init after release: ok")
}
