// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExhaust(t *testing.T) {
	res, err := runExhaust(nil, 64)
	require.NoError(t, err)
	require.NotNil(t, res.Err)
	assert.Less(t, res.Allocated, 64)
	assert.NotEmpty(t, res.Err.Reason())

	var out bytes.Buffer
	printExhaust(&out, res)
	assert.Contains(t, out.String(), "re-init after release: ok\n")
}
