// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package syncflag

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenFlag(t *testing.T) (*Flag, Descriptor) {
	t.Helper()
	f, err := New()
	require.NoError(t, err)
	d, err := f.Init()
	require.NoError(t, err)
	t.Cleanup(func() {
		if f.State() == StateOpen {
			_ = f.Close()
		}
	})
	return f, d
}

func TestNew_Unopened(t *testing.T) {
	f, err := New()
	require.NoError(t, err)
	assert.Equal(t, StateUnopened, f.State())
	assert.Equal(t, InvalidDescriptor, f.Descriptor())
}

func TestFlag_ZeroValue(t *testing.T) {
	var f Flag
	assert.Equal(t, StateUnopened, f.State())
	assert.Equal(t, InvalidDescriptor, f.Descriptor())

	d, err := f.Init()
	require.NoError(t, err)
	assert.Equal(t, d, f.Descriptor())
	require.NoError(t, f.Signal())
	require.NoError(t, f.Close())
	assert.Equal(t, StateClosed, f.State())
}

func TestFlag_Lifecycle(t *testing.T) {
	f, err := New()
	require.NoError(t, err)

	d, err := f.Init()
	require.NoError(t, err)
	assert.NotEqual(t, InvalidDescriptor, d)
	assert.Equal(t, StateOpen, f.State())
	assert.Equal(t, d, f.Descriptor())

	require.NoError(t, f.Signal())
	require.NoError(t, f.Signal())

	require.NoError(t, f.Close())
	assert.Equal(t, StateClosed, f.State())
	assert.Equal(t, InvalidDescriptor, f.Descriptor())
}

func TestFlag_InitTwiceRejected(t *testing.T) {
	f, d := newOpenFlag(t)

	d2, err := f.Init()
	assert.Equal(t, InvalidDescriptor, d2)

	var stateErr *InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "init", stateErr.Op)
	assert.Equal(t, StateOpen, stateErr.State)
	assert.ErrorIs(t, err, ErrInvalidState)

	// the original descriptor is untouched
	assert.Equal(t, d, f.Descriptor())
	require.NoError(t, f.Signal())
}

func TestFlag_InitAfterCloseRejected(t *testing.T) {
	f, _ := newOpenFlag(t)
	require.NoError(t, f.Close())

	_, err := f.Init()
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, StateClosed, f.State())
}

func TestFlag_InvalidStateOperations(t *testing.T) {
	for _, tc := range []struct {
		name  string
		setup func(t *testing.T) *Flag
		state State
	}{
		{
			name: "unopened",
			setup: func(t *testing.T) *Flag {
				f, err := New()
				require.NoError(t, err)
				return f
			},
			state: StateUnopened,
		},
		{
			name: "closed",
			setup: func(t *testing.T) *Flag {
				f, _ := newOpenFlag(t)
				require.NoError(t, f.Close())
				return f
			},
			state: StateClosed,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := tc.setup(t)

			err := f.Signal()
			var stateErr *InvalidStateError
			require.ErrorAs(t, err, &stateErr)
			assert.Equal(t, "signal", stateErr.Op)
			assert.Equal(t, tc.state, stateErr.State)

			_, err = f.Drain()
			require.ErrorAs(t, err, &stateErr)
			assert.Equal(t, "drain", stateErr.Op)

			err = f.Close()
			require.ErrorAs(t, err, &stateErr)
			assert.Equal(t, "close", stateErr.Op)
			assert.Equal(t, tc.state, stateErr.State)
		})
	}
}

func TestInit_NotReady(t *testing.T) {
	_, d := newOpenFlag(t)

	ready, err := Poll(d, 0)
	require.NoError(t, err)
	assert.False(t, ready, "counter should start at 0")
}

func TestSignal_Ready(t *testing.T) {
	f, d := newOpenFlag(t)

	require.NoError(t, Signal(d))

	ready, err := Poll(d, 0)
	require.NoError(t, err)
	assert.True(t, ready)

	// polling does not consume
	ready, err = Poll(d, 0)
	require.NoError(t, err)
	assert.True(t, ready)

	drained, err := f.Drain()
	require.NoError(t, err)
	assert.True(t, drained)

	ready, err = Poll(d, 0)
	require.NoError(t, err)
	assert.False(t, ready)

	drained, err = f.Drain()
	require.NoError(t, err)
	assert.False(t, drained)
}

func TestPoll_Timeout(t *testing.T) {
	_, d := newOpenFlag(t)

	start := time.Now()
	ready, err := Poll(d, 20*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ready)
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}

// TestSignal_ConcurrentCoalesces verifies that N concurrent signals followed
// by one wait produce exactly one ready transition.
func TestSignal_ConcurrentCoalesces(t *testing.T) {
	for _, n := range []int{1, 2, 16, 256} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			_, d := newOpenFlag(t)

			var wg sync.WaitGroup
			wg.Add(n)
			start := make(chan struct{})
			for i := 0; i < n; i++ {
				go func() {
					defer wg.Done()
					<-start
					if err := Signal(d); err != nil {
						t.Error(err)
					}
				}()
			}
			close(start)
			wg.Wait()

			ready, err := Poll(d, time.Second)
			require.NoError(t, err)
			require.True(t, ready)

			drained, err := Drain(d)
			require.NoError(t, err)
			require.True(t, drained)

			// exactly one transition: nothing left after a single drain
			ready, err = Poll(d, 0)
			require.NoError(t, err)
			assert.False(t, ready)
		})
	}
}

func TestFlag_SignalConcurrentWithClose(t *testing.T) {
	f, _ := newOpenFlag(t)

	var wg sync.WaitGroup
	const signalers = 8
	wg.Add(signalers)
	for i := 0; i < signalers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				err := f.Signal()
				if err != nil && !errors.Is(err, ErrInvalidState) {
					t.Errorf("unexpected signal error: %v", err)
					return
				}
			}
		}()
	}

	require.NoError(t, f.Close())
	wg.Wait()

	assert.ErrorIs(t, f.Signal(), ErrInvalidState)
}

// TestHandoff_EndToEnd is the handoff scenario: A opens, B signals, A
// observes readiness within a bound, A closes, and B's next signal fails.
func TestHandoff_EndToEnd(t *testing.T) {
	f, err := New()
	require.NoError(t, err)
	d, err := f.Init()
	require.NoError(t, err)

	handoff := make(chan Descriptor)
	signalled := make(chan error)
	again := make(chan struct{})
	go func() {
		d := <-handoff
		signalled <- Signal(d)
		<-again
		signalled <- Signal(d)
	}()

	handoff <- d
	require.NoError(t, <-signalled)

	ready, err := Poll(d, 5*time.Second)
	require.NoError(t, err)
	require.True(t, ready)

	require.NoError(t, f.Close())

	close(again)
	err = <-signalled
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, d, ioErr.Descriptor)
	assert.NotEmpty(t, ioErr.Reason())

	assert.ErrorIs(t, f.Signal(), ErrInvalidState)
}

func TestOpen_Independent(t *testing.T) {
	a, err := Open()
	require.NoError(t, err)
	defer Close(a)
	b, err := Open()
	require.NoError(t, err)
	defer Close(b)

	require.NotEqual(t, a, b)
	require.NoError(t, Signal(a))

	ready, err := Poll(b, 0)
	require.NoError(t, err)
	assert.False(t, ready)
	ready, err = Poll(a, 0)
	require.NoError(t, err)
	assert.True(t, ready)
}

func TestTimeoutMillis(t *testing.T) {
	for _, tc := range []struct {
		in   time.Duration
		want int
	}{
		{-1, -1},
		{-time.Hour, -1},
		{0, 0},
		{1, 1},
		{time.Millisecond, 1},
		{time.Millisecond + 1, 2},
		{1500 * time.Microsecond, 2},
		{time.Second, 1000},
		{1 << 62, 1<<31 - 1},
	} {
		if got := timeoutMillis(tc.in); got != tc.want {
			t.Errorf("timeoutMillis(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
