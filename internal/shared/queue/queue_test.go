package queue

import (
	"github.com/stretchr/testify/require"
	"testing"
)

// TestQueue_Init verifies queue initialization.
func TestQueue_Init(t *testing.T) {
	var q Queue[int]
	q.Init(10)

	require.Len(t, q.buf, 10)
	require.Equal(t, 0, q.Len())
}

// TestQueue_Init_MinSize verifies that Init enforces minimum size.
func TestQueue_Init_MinSize(t *testing.T) {
	var q Queue[int]
	q.Init(1)

	require.GreaterOrEqual(t, len(q.buf), 2)
	require.True(t, q.TryPush(1))
	require.False(t, q.TryPush(2))
}

// TestQueue_FIFO verifies elements come out in push order.
func TestQueue_FIFO(t *testing.T) {
	var q Queue[string]
	q.Init(10)

	require.NoError(t, q.PushAll([]string{"a", "b", "c"}))
	require.Equal(t, 3, q.Len())

	for _, want := range []string{"a", "b", "c"} {
		got, ok := q.TryPop()
		require.True(t, ok)
		require.Equal(t, want, got)
	}

	_, ok := q.TryPop()
	require.False(t, ok)
}

// TestQueue_Full verifies the capacity bound.
func TestQueue_Full(t *testing.T) {
	var q Queue[int]
	q.Init(3)

	require.True(t, q.TryPush(1))
	require.True(t, q.TryPush(2))
	require.False(t, q.TryPush(3))
	require.ErrorIs(t, q.PushAll([]int{4}), ErrFull)
}

// TestQueue_WrapAround verifies circular buffer behavior.
func TestQueue_WrapAround(t *testing.T) {
	var q Queue[int]
	q.Init(4)

	require.True(t, q.TryPush(1))
	require.True(t, q.TryPush(2))
	v, _ := q.TryPop()
	require.Equal(t, 1, v)

	require.True(t, q.TryPush(3))
	require.True(t, q.TryPush(4))
	require.Equal(t, 3, q.Len())

	for _, want := range []int{2, 3, 4} {
		v, ok := q.TryPop()
		require.True(t, ok)
		require.Equal(t, want, v)
	}
}

// TestQueue_PopReleasesSlot verifies popped pointers are not retained.
func TestQueue_PopReleasesSlot(t *testing.T) {
	var q Queue[*int]
	q.Init(4)

	x := 7
	require.True(t, q.TryPush(&x))
	_, ok := q.TryPop()
	require.True(t, ok)
	for _, p := range q.buf {
		require.Nil(t, p)
	}
}
