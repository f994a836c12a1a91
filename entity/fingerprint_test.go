package entity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	e := New(mgl32.Vec3{1, 2, 3}, DefaultBounds)
	e.SetAnimation(Animation{Sequence: 3, LayerCount: 1, PoseCount: 2})
	before := Fingerprint(e)
	require.Equal(t, before, Fingerprint(e))

	e.SetOrigin(mgl32.Vec3{1, 2, 3.001})
	require.NotEqual(t, before, Fingerprint(e))
	e.SetOrigin(mgl32.Vec3{1, 2, 3})
	require.Equal(t, before, Fingerprint(e))

	anim := e.Animation()
	anim.Layers[0].Weight = 0.5
	e.SetAnimation(anim)
	require.NotEqual(t, before, Fingerprint(e))
}

func TestCapture(t *testing.T) {
	e := New(mgl32.Vec3{4, 0, 4}, DefaultBounds)
	e.SetAngles(mgl32.Vec3{0, 90, 0})
	e.SetSimulationTime(2.5)

	s := Capture(e)
	require.Equal(t, 2.5, s.SimulationTime)
	require.True(t, s.Alive)
	require.Equal(t, e.Origin(), s.Origin)
	require.Equal(t, e.Angles(), s.Angles)
	require.True(t, BoundsEqual(e.Bounds(), s.Bounds))
}
