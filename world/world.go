package world

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
)

// grazeEpsilon is how far past a hit a box is pushed to tell a real hit from a box sliding along
// the face of an obstacle it only touches.
const grazeEpsilon float32 = 1e-3

// Body is a player the world collides against.
type Body interface {
	Mover
	Origin() mgl32.Vec3
	Alive() bool
}

// World is a collision world made of static boxes and the live boxes of tracked players.
type World struct {
	solids []cube.BBox
	bodies []Body
}

// New creates an empty world.
func New() *World {
	return &World{}
}

// AddSolid adds a static box to the world.
func (w *World) AddSolid(bb cube.BBox) {
	w.solids = append(w.solids, bb)
}

// Solids returns the static boxes of the world.
func (w *World) Solids() []cube.BBox {
	return w.solids
}

// Track makes the world collide against b at its live position.
func (w *World) Track(b Body) {
	slot := b.Slot()
	if slot < 0 {
		return
	}
	for len(w.bodies) <= slot {
		w.bodies = append(w.bodies, nil)
	}
	w.bodies[slot] = b
}

// Untrack removes the body in slot from the world.
func (w *World) Untrack(slot int) {
	if slot >= 0 && slot < len(w.bodies) {
		w.bodies[slot] = nil
	}
}

// TraceEntityMove sweeps the bounds of m from one origin to another. Players selected by mask are
// checked before static solids, and a trace that starts inside a player reports that player's slot.
func (w *World) TraceEntityMove(m Mover, from, to mgl32.Vec3, mask Mask) Trace {
	res := Trace{EndPos: to, Fraction: 1, HitSlot: NoHit}
	bb := m.Bounds()

	// Players are checked first so that a start inside another player reports that player.
	if mask&MaskPlayers != 0 {
		for slot, b := range w.bodies {
			if b == nil || slot == m.Slot() || !b.Alive() {
				continue
			}
			if w.sweep(&res, bb, from, to, b.Bounds().Translate(b.Origin()), slot) {
				return res
			}
		}
	}
	if mask&MaskWorld != 0 {
		for _, solid := range w.solids {
			if w.sweep(&res, bb, from, to, solid, NoHit) {
				return res
			}
		}
	}
	return res
}

// sweep moves bb from one origin to another against a single obstacle, shortening res if the
// obstacle is hit earlier than anything before it. It returns true if bb started inside obstacle.
func (w *World) sweep(res *Trace, bb cube.BBox, from, to mgl32.Vec3, obstacle cube.BBox, slot int) bool {
	if bb.Translate(from).IntersectsWith(obstacle) {
		res.StartSolid = true
		res.AllSolid = bb.Translate(to).IntersectsWith(obstacle)
		res.EndPos = from
		res.Fraction = 0
		res.HitSlot = slot
		return true
	}

	delta := to.Sub(from)
	length := delta.Len()
	if length == 0 {
		return false
	}

	// Sweeping bb against obstacle is the same as tracing its origin against obstacle grown by bb.
	lo, hi := obstacle.Min().Sub(bb.Max()), obstacle.Max().Sub(bb.Min())
	expanded := cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
	hit, ok := trace.BBoxIntercept(expanded, from, to)
	if !ok {
		return false
	}

	frac := hit.Position().Sub(from).Len() / length
	if frac >= res.Fraction {
		return false
	}
	past := from.Add(delta.Mul(min(frac+grazeEpsilon, 1)))
	if !bb.Translate(past).IntersectsWith(obstacle) {
		return false
	}

	res.Fraction = frac
	res.EndPos = hit.Position()
	res.HitSlot = slot
	return false
}
