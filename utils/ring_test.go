package utils

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRingGrowsUntilLimit(t *testing.T) {
	r := NewRing[int](1, 4)
	for i := range 4 {
		require.False(t, r.Push(i))
	}
	require.Equal(t, 4, r.Len())
	require.True(t, r.Full())
	require.Equal(t, []int{0, 1, 2, 3}, slices.Collect(r.All()))
	require.Equal(t, []int{3, 2, 1, 0}, slices.Collect(r.Backward()))
}

func TestRingOverwritesOldestAtLimit(t *testing.T) {
	r := NewRing[int](2, 3)
	for i := range 5 {
		r.Push(i)
	}
	require.Equal(t, 3, r.Len())

	oldest, ok := r.Oldest()
	require.True(t, ok)
	require.Equal(t, 2, oldest)

	newest, ok := r.Newest()
	require.True(t, ok)
	require.Equal(t, 4, newest)
}

func TestRingPop(t *testing.T) {
	r := NewRing[string](4, 4)
	_, ok := r.Pop()
	require.False(t, ok)

	r.Push("a")
	r.Push("b")
	r.Push("c")

	v, ok := r.Pop()
	require.True(t, ok)
	require.Equal(t, "a", v)
	require.Equal(t, []string{"c", "b"}, slices.Collect(r.Backward()))

	// Wrap the head around the end of the backing slice.
	r.Push("d")
	r.Push("e")
	require.Equal(t, []string{"b", "c", "d", "e"}, slices.Collect(r.All()))
}

func TestRingBackwardStopsEarly(t *testing.T) {
	r := NewRing[int](8, 8)
	for i := range 6 {
		r.Push(i)
	}
	var seen []int
	for v := range r.Backward() {
		if v < 3 {
			break
		}
		seen = append(seen, v)
	}
	require.Equal(t, []int{5, 4, 3}, seen)
}

func TestRingClear(t *testing.T) {
	r := NewRing[int](2, 2)
	r.Push(1)
	r.Push(2)
	r.Clear()
	require.Zero(t, r.Len())
	_, ok := r.Newest()
	require.False(t, ok)
}
