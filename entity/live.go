package entity

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// PoseReader exposes the live state of a player that lag compensation records and compares against.
type PoseReader interface {
	Origin() mgl32.Vec3
	Angles() mgl32.Vec3
	Bounds() cube.BBox
	Animation() Animation
	SimulationTime() float64
	Alive() bool
}

// PoseWriter mutates the live state of a player.
type PoseWriter interface {
	SetOrigin(pos mgl32.Vec3)
	SetAngles(angles mgl32.Vec3)
	SetBounds(bounds cube.BBox)
	SetAnimation(anim Animation)
	SetSimulationTime(t float64)
}

// Live is a player entity that can be both read and moved.
type Live interface {
	PoseReader
	PoseWriter
}

// BoneCacheInvalidator is implemented by entities that cache bone transforms derived from their
// animation state. The cache is invalidated every time lag compensation writes an animation.
type BoneCacheInvalidator interface {
	InvalidateBoneCache()
}
