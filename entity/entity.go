package entity

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/lagcomp/game"
)

// DefaultBounds is the default collision box for newly created entities.
var DefaultBounds = game.AABBFromDimensions(0.6, 1.8)

// Entity is a plain in-memory implementation of Live. It is used by the reference server and by
// tests; game servers usually adapt their own player type instead.
type Entity struct {
	// origin is the current position of the entity in the world.
	origin mgl32.Vec3
	// angles is the pitch, yaw and roll of the entity.
	angles mgl32.Vec3
	// bounds is the collision box of the entity relative to origin.
	bounds cube.BBox
	// anim is the current animation state.
	anim Animation
	// simTime is the last time the entity was simulated.
	simTime float64
	// alive is false while the entity is dead and waiting to respawn.
	alive bool

	boneCacheFlushes int
}

// New creates a new living entity at the provided position.
func New(origin mgl32.Vec3, bounds cube.BBox) *Entity {
	return &Entity{
		origin: origin,
		bounds: bounds,
		alive:  true,
	}
}

// Origin returns the position of the entity.
func (e *Entity) Origin() mgl32.Vec3 {
	return e.origin
}

// SetOrigin moves the entity to the provided position.
func (e *Entity) SetOrigin(pos mgl32.Vec3) {
	e.origin = pos
}

// Angles returns the rotation of the entity.
func (e *Entity) Angles() mgl32.Vec3 {
	return e.angles
}

// SetAngles rotates the entity.
func (e *Entity) SetAngles(angles mgl32.Vec3) {
	e.angles = angles
}

// Bounds returns the collision box of the entity relative to its origin.
func (e *Entity) Bounds() cube.BBox {
	return e.bounds
}

// SetBounds updates the collision box of the entity.
func (e *Entity) SetBounds(bounds cube.BBox) {
	e.bounds = bounds
}

// Box returns the collision box of the entity translated to its origin.
func (e *Entity) Box() cube.BBox {
	return e.bounds.Translate(e.origin)
}

// Animation returns the animation state of the entity.
func (e *Entity) Animation() Animation {
	return e.anim
}

// SetAnimation replaces the animation state of the entity.
func (e *Entity) SetAnimation(anim Animation) {
	e.anim = anim
}

// SimulationTime returns the last time the entity was simulated.
func (e *Entity) SimulationTime() float64 {
	return e.simTime
}

// SetSimulationTime sets the last time the entity was simulated.
func (e *Entity) SetSimulationTime(t float64) {
	e.simTime = t
}

// Alive returns true if the entity is alive.
func (e *Entity) Alive() bool {
	return e.alive
}

// SetAlive marks the entity as alive or dead.
func (e *Entity) SetAlive(alive bool) {
	e.alive = alive
}

func (e *Entity) InvalidateBoneCache() {
	e.boneCacheFlushes++
}

// BoneCacheFlushes returns how many times the bone cache of the entity has been invalidated.
func (e *Entity) BoneCacheFlushes() int {
	return e.boneCacheFlushes
}
