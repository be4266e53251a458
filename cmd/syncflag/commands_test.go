// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build unix || windows

package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStorm_coalesces(t *testing.T) {
	res, err := runStorm(context.Background(), nil, 32, 20, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, stormResult{Signals: 32 * 20, Wakeups: 20, Rounds: 20}, res)
}

func TestRunStorm_canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runStorm(ctx, nil, 4, 4, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunHandoff(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runHandoff(&out, nil, 5*time.Second))
	assert.Contains(t, out.String(), "owner: opened fd=")
	assert.Contains(t, out.String(), "signaler: signalled\n")
	assert.Contains(t, out.String(), "owner: closed\n")
	assert.Contains(t, out.String(), "signaler: stale signal failed: ")
}

func TestRootCmd_storm(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--log-level", "disabled", "storm", "--signalers", "8", "--rounds", "5"})
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "rounds=5 signals=40 wakeups=5\n", out.String())
}

func TestRootCmd_stormInvalidArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"storm", "--signalers", "0"})
	cmd.SetOut(&bytes.Buffer{})
	assert.EqualError(t, cmd.Execute(), "signalers and rounds must be positive")
}
