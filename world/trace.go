package world

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// Mask selects which kinds of obstacles a trace collides with.
type Mask uint32

const (
	// MaskWorld collides with static world geometry.
	MaskWorld Mask = 1 << iota
	// MaskPlayers collides with other players.
	MaskPlayers

	// MaskPlayerSolid is everything a moving player collides with.
	MaskPlayerSolid = MaskWorld | MaskPlayers
)

// NoHit is the HitSlot of a trace that did not hit a player.
const NoHit = -1

// Trace is the result of sweeping a collision box from one position to another.
type Trace struct {
	// StartSolid is true if the box already overlapped an obstacle at the start of the trace.
	StartSolid bool
	// AllSolid is true if the box overlapped the same obstacle at both ends of the trace.
	AllSolid bool
	// EndPos is the furthest position the box could reach.
	EndPos mgl32.Vec3
	// Fraction is how far along the trace EndPos is, in [0, 1].
	Fraction float32
	// HitSlot is the slot of the player that stopped the trace, or NoHit.
	HitSlot int
}

// Blocked returns true if the trace could not leave its start position.
func (t Trace) Blocked() bool {
	return t.StartSolid || t.AllSolid
}

// Mover is something that can be swept through the world.
type Mover interface {
	// Slot returns the player slot of the mover, so it does not collide with itself.
	Slot() int
	// Bounds returns the collision box of the mover relative to its origin.
	Bounds() cube.BBox
}

// Hull is a Mover with an explicit collision box, used to probe a box other than the one an entity
// currently has.
type Hull struct {
	Index int
	Box   cube.BBox
}

func (h Hull) Slot() int         { return h.Index }
func (h Hull) Bounds() cube.BBox { return h.Box }

// Prober sweeps movers through the world.
type Prober interface {
	// TraceEntityMove sweeps the collision box of m from one origin to another, stopping at the first
	// obstacle selected by mask.
	TraceEntityMove(m Mover, from, to mgl32.Vec3, mask Mask) Trace
}

// Open is a Prober for a world without obstacles.
type Open struct{}

func (Open) TraceEntityMove(_ Mover, _, to mgl32.Vec3, _ Mask) Trace {
	return Trace{EndPos: to, Fraction: 1, HitSlot: NoHit}
}
