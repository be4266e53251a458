// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/spf13/cobra"
)

const (
	cmdName   = "syncflag"
	shortDesc = "Exercise descriptor-backed sync flags."
	longDesc  = `Exercise descriptor-backed sync flags.

A sync flag is a payload-free wake primitive: one owner opens it, any goroutine
signals it, and a poll loop waits for it to become readable. These commands
drive flags through their lifecycle, logging as JSON to stderr.
`
)

// rootOptions are shared by all subcommands.
type rootOptions struct {
	logOutput io.Writer
	logLevel  string
}

// logger builds the configured JSON logger.
func (o *rootOptions) logger() (*logiface.Logger[logiface.Event], error) {
	level, err := parseLevel(o.logLevel)
	if err != nil {
		return nil, err
	}
	return stumpy.L.New(
		stumpy.L.WithStumpy(
			stumpy.WithWriter(o.logOutput),
			stumpy.WithTimeField(`time`),
		),
		stumpy.L.WithLevel(level),
	).Logger(), nil
}

func parseLevel(s string) (logiface.Level, error) {
	for level := logiface.LevelDisabled; level <= logiface.LevelTrace; level++ {
		if level.String() == s {
			return level, nil
		}
	}
	return logiface.LevelDisabled, fmt.Errorf("unknown log level %q", s)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{logOutput: os.Stderr}

	cmd := &cobra.Command{
		Use:           cmdName,
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info",
		"log level: disabled, emerg, alert, crit, err, warning, notice, info, debug, trace")

	cmd.AddCommand(newStormCmd(opts))
	cmd.AddCommand(newHandoffCmd(opts))
	cmd.AddCommand(newExhaustCmd(opts))
	return cmd
}
