package entity

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const noTeleport = float32(1e12)

func historyOf(snapshots ...Snapshot) *History {
	h := NewHistory(DefaultMaxRecords, true)
	for _, s := range snapshots {
		h.Append(s)
	}
	return h
}

func TestResolveEmptyAndTooOld(t *testing.T) {
	_, ok := Resolve(NewHistory(0, true), 1, noTeleport)
	require.False(t, ok)

	h := historyOf(snapshotAt(1.0, 0), snapshotAt(1.1, 1))
	_, ok = Resolve(h, 0.9, noTeleport)
	require.False(t, ok, "target older than the whole history")
}

func TestResolveExactHit(t *testing.T) {
	mid := snapshotAt(1.1, 5)
	mid.Angles = mgl32.Vec3{10, 20, 0}
	mid.Animation.Sequence = 4
	mid.Animation.Cycle = 0.3
	h := historyOf(snapshotAt(1.0, 0), mid, snapshotAt(1.2, 10))

	pose, ok := Resolve(h, 1.1, noTeleport)
	require.True(t, ok)
	require.False(t, pose.Interpolated)
	require.Zero(t, pose.Frac)
	require.Equal(t, mid, pose.Snapshot)
}

func TestResolveNewerThanHead(t *testing.T) {
	h := historyOf(snapshotAt(1.0, 0), snapshotAt(1.1, 7))
	pose, ok := Resolve(h, 5, noTeleport)
	require.True(t, ok)
	require.False(t, pose.Interpolated)
	require.Equal(t, float32(7), pose.Origin.X())
}

func TestResolveInterpolatesWithinBracket(t *testing.T) {
	older := snapshotAt(1.0, 0)
	older.Bounds = cube.Box(-1, 0, -1, 1, 2, 1)
	older.Angles = mgl32.Vec3{0, 350, 0}
	newer := snapshotAt(1.1, 100)
	newer.Bounds = cube.Box(-1, 0, -1, 1, 1, 1)
	newer.Angles = mgl32.Vec3{10, 10, 0}
	h := historyOf(older, newer)

	for _, target := range []float64{1.001, 1.025, 1.05, 1.075, 1.099} {
		pose, ok := Resolve(h, target, noTeleport)
		require.True(t, ok)
		require.True(t, pose.Interpolated)
		require.Greater(t, pose.Frac, 0.0)
		require.Less(t, pose.Frac, 1.0)
	}

	pose, ok := Resolve(h, 1.05, noTeleport)
	require.True(t, ok)
	assert.InDelta(t, 0.5, pose.Frac, 1e-9)
	assert.InDelta(t, 50, pose.Origin.X(), 1e-3)
	assert.InDelta(t, 1.5, pose.Bounds.Max().Y(), 1e-5)
	assert.InDelta(t, 5, pose.Angles.X(), 1e-4)
	assert.InDelta(t, 360, pose.Angles.Y(), 1e-3)
	assert.Equal(t, 1.05, pose.SimulationTime)
}

func TestResolveContinuityBreak(t *testing.T) {
	const teleportDistSqr = 64 * 64
	h := historyOf(
		snapshotAt(1.0, 0),
		snapshotAt(1.1, 10),
		snapshotAt(1.2, 500), // teleported
		snapshotAt(1.3, 510),
	)

	_, ok := Resolve(h, 1.05, teleportDistSqr)
	require.False(t, ok, "walking to 1.05 crosses the teleport")
	_, ok = Resolve(h, 1.15, teleportDistSqr)
	require.False(t, ok)

	pose, ok := Resolve(h, 1.25, teleportDistSqr)
	require.True(t, ok, "targets after the teleport remain reachable")
	assert.InDelta(t, 505, pose.Origin.X(), 1e-3)
}

func TestResolveIgnoresVerticalMovementForContinuity(t *testing.T) {
	older := snapshotAt(1.0, 0)
	newer := snapshotAt(1.1, 0)
	newer.Origin[1] = 1000
	h := historyOf(older, newer)

	_, ok := Resolve(h, 1.05, 64*64)
	require.True(t, ok)
}

func TestResolveDeathBoundary(t *testing.T) {
	dead := snapshotAt(1.1, 1)
	dead.Alive = false
	h := historyOf(snapshotAt(1.0, 0), dead, snapshotAt(1.2, 2), snapshotAt(1.3, 3))

	_, ok := Resolve(h, 1.05, noTeleport)
	require.False(t, ok)
	_, ok = Resolve(h, 1.1, noTeleport)
	require.False(t, ok, "the dead record itself cannot be rewound to")

	_, ok = Resolve(h, 1.25, noTeleport)
	require.True(t, ok)
}

func TestInterpolateAnimationCycleWraparound(t *testing.T) {
	older := Animation{Sequence: 2, Cycle: 0.9, LayerCount: 1}
	older.Layers[0] = LayerState{Sequence: 7, Cycle: 0.9, Weight: 0.2, Order: 1}
	newer := Animation{Sequence: 2, Cycle: 0.1, LayerCount: 1}
	newer.Layers[0] = LayerState{Sequence: 7, Cycle: 0.1, Weight: 0.6, Order: 1}

	got := InterpolateAnimation(0.5, older, newer)
	assert.InDelta(t, 0.0, got.Cycle, 1e-6)
	assert.InDelta(t, 0.0, got.Layers[0].Cycle, 1e-6)
	assert.InDelta(t, 0.4, got.Layers[0].Weight, 1e-6)

	got = InterpolateAnimation(0.25, older, newer)
	assert.InDelta(t, 0.95, got.Cycle, 1e-6)
}

func TestInterpolateAnimationSequenceChange(t *testing.T) {
	older := Animation{Sequence: 2, Cycle: 0.2, LayerCount: 2, PoseCount: 1}
	older.Layers[0] = LayerState{Sequence: 7, Cycle: 0.2, Weight: 1, Order: 0}
	older.Layers[1] = LayerState{Sequence: 8, Cycle: 0.2, Weight: 1, Order: 1}
	older.PoseParams[0] = 0.25
	newer := older
	newer.Cycle = 0.4
	newer.Layers[0].Cycle = 0.4
	newer.Layers[1] = LayerState{Sequence: 9, Cycle: 0.8, Weight: 0, Order: 1}
	newer.PoseParams[0] = 0.75

	got := InterpolateAnimation(0.5, older, newer)
	assert.InDelta(t, 0.3, got.Cycle, 1e-6)
	assert.InDelta(t, 0.3, got.Layers[0].Cycle, 1e-6)
	assert.Equal(t, older.Layers[1], got.Layers[1], "a sequence change disables interpolation of the layer")
	assert.Equal(t, float32(0.25), got.PoseParams[0], "pose parameters are never interpolated")

	newer.Sequence = 3
	got = InterpolateAnimation(0.5, older, newer)
	assert.Equal(t, older, got, "a master sequence change disables every layer")
}

func TestInterpolateAnimationOrderChange(t *testing.T) {
	older := Animation{LayerCount: 1}
	older.Layers[0] = LayerState{Sequence: 1, Cycle: 0.1, Weight: 1, Order: 0}
	newer := older
	newer.Layers[0].Order = 2
	newer.Layers[0].Cycle = 0.5

	got := InterpolateAnimation(0.5, older, newer)
	assert.Equal(t, older.Layers[0], got.Layers[0])
}
