// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package main

import (
	"bytes"
	"testing"

	"github.com/joeycumines/logiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want logiface.Level
	}{
		{"disabled", logiface.LevelDisabled},
		{"err", logiface.LevelError},
		{"info", logiface.LevelInformational},
		{"debug", logiface.LevelDebug},
		{"trace", logiface.LevelTrace},
	} {
		level, err := parseLevel(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, level, tc.in)
	}

	_, err := parseLevel("verbose")
	assert.EqualError(t, err, `unknown log level "verbose"`)
}

func TestRootOptions_logger(t *testing.T) {
	var buf bytes.Buffer
	opts := &rootOptions{logOutput: &buf, logLevel: "info"}

	logger, err := opts.logger()
	require.NoError(t, err)
	logger.Info().Str("k", "v").Log("hello")
	logger.Debug().Log("hidden")

	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
	assert.NotContains(t, buf.String(), "hidden")

	opts.logLevel = "loud"
	_, err = opts.logger()
	assert.Error(t, err)
}

func TestRootCmd_unknownLevel(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--log-level", "loud", "handoff"})
	cmd.SetOut(&bytes.Buffer{})
	assert.EqualError(t, cmd.Execute(), `unknown log level "loud"`)
}
