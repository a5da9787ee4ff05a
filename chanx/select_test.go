package chanx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_Received(t *testing.T) {
	a := NewRendezvous[string](0, 0)
	b := NewRendezvous[string](1, 1)
	require.NoError(t, b.Send(context.Background(), "from b"))

	out, err := Select(context.Background(), time.Second, []Arm[string]{a.Arm(), b.Arm()})
	require.NoError(t, err)
	assert.Equal(t, Received, out.Kind)
	assert.Equal(t, 1, out.ID)
	assert.Equal(t, "from b", out.Value)
}

func TestSelect_ConsumesExactlyOne(t *testing.T) {
	a := NewRendezvous[int](4, 2)
	b := NewRendezvous[int](9, 2)
	for _, r := range []*Rendezvous[int]{a, b} {
		require.NoError(t, r.Send(context.Background(), 1))
		require.NoError(t, r.Send(context.Background(), 2))
	}

	out, err := Select(context.Background(), time.Second, []Arm[int]{a.Arm(), b.Arm()})
	require.NoError(t, err)
	require.Equal(t, Received, out.Kind)
	assert.Equal(t, 1, out.Value)
	assert.Contains(t, []int{4, 9}, out.ID)

	// One channel lost one value, the other kept both.
	assert.Equal(t, 3, len(a.ch)+len(b.ch))
}

func TestSelect_Closed(t *testing.T) {
	a := NewRendezvous[int](0, 0)
	b := NewRendezvous[int](7, 0)
	require.NoError(t, b.Close())

	out, err := Select(context.Background(), time.Second, []Arm[int]{a.Arm(), b.Arm()})
	require.NoError(t, err)
	assert.Equal(t, Closed, out.Kind)
	assert.Equal(t, 7, out.ID)
}

func TestSelect_ZeroValueIsNotClosed(t *testing.T) {
	r := NewRendezvous[*int](2, 1)
	require.NoError(t, r.Send(context.Background(), nil))

	out, err := Select(context.Background(), time.Second, []Arm[*int]{r.Arm()})
	require.NoError(t, err)
	assert.Equal(t, Received, out.Kind)
	assert.Nil(t, out.Value)
	assert.False(t, r.Closed())
}

func TestSelect_Timeout(t *testing.T) {
	r := NewRendezvous[int](0, 0)

	start := time.Now()
	out, err := Select(context.Background(), 30*time.Millisecond, []Arm[int]{r.Arm()})
	require.NoError(t, err)
	assert.Equal(t, TimedOut, out.Kind)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestSelect_NoSources(t *testing.T) {
	out, err := Select[int](context.Background(), time.Second, nil)
	require.NoError(t, err)
	assert.Equal(t, NoSources, out.Kind)

	out, err = Select(context.Background(), time.Second, []Arm[int]{{ID: 1}})
	require.NoError(t, err)
	assert.Equal(t, NoSources, out.Kind)
}

func TestSelect_ContextCancelled(t *testing.T) {
	r := NewRendezvous[int](0, 0)
	ctx, cancel := context.WithCancelCause(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel(assert.AnError)
	}()

	_, err := Select(ctx, 0, []Arm[int]{r.Arm()})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSelect_RendezvousWithSender(t *testing.T) {
	r := NewRendezvous[int](5, 0)
	done := make(chan error, 1)
	go func() { done <- r.Send(context.Background(), 42) }()

	out, err := Select(context.Background(), time.Second, []Arm[int]{r.Arm()})
	require.NoError(t, err)
	assert.Equal(t, Received, out.Kind)
	assert.Equal(t, 42, out.Value)
	assert.NoError(t, <-done)
}

func TestSelect_TieBreakIsNotIndexOrder(t *testing.T) {
	a := NewRendezvous[int](0, 1)
	b := NewRendezvous[int](1, 1)

	seen := map[int]bool{}
	for i := 0; i < 200 && len(seen) < 2; i++ {
		require.NoError(t, a.Send(context.Background(), i))
		require.NoError(t, b.Send(context.Background(), i))

		out, err := Select(context.Background(), time.Second, []Arm[int]{a.Arm(), b.Arm()})
		require.NoError(t, err)
		seen[out.ID] = true

		// drain the other one
		_, err = Select(context.Background(), time.Second, []Arm[int]{a.Arm(), b.Arm()})
		require.NoError(t, err)
	}
	assert.Len(t, seen, 2, "both ready arms should be chosen at some point")
}

func TestOutcomeKind_String(t *testing.T) {
	assert.Equal(t, "received", Received.String())
	assert.Equal(t, "closed", Closed.String())
	assert.Equal(t, "timed out", TimedOut.String())
	assert.Equal(t, "no sources", NoSources.String())
	assert.Equal(t, "OutcomeKind(42)", OutcomeKind(42).String())
}
