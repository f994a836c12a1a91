package entity

import (
	"github.com/oomph-ac/lagcomp/game"
)

// Pose is the result of resolving a history at a target time.
type Pose struct {
	Snapshot

	// Frac is the position of the target time between the two bracketing snapshots, in (0, 1). It is
	// zero when no interpolation took place.
	Frac float64
	// Interpolated is true if the pose was blended from two snapshots rather than copied from one.
	Interpolated bool
}

// Resolve finds the pose of a player at target using its history. The history is walked from the
// newest snapshot; the first snapshot at or before target is the candidate, and the snapshot just
// after it (if any) is used to interpolate towards target.
//
// Resolve returns false if the history is empty, if it does not reach back to target, or if the
// walk would cross a death or a horizontal jump further than sqrt(teleportDistSqr).
func Resolve(h *History, target float64, teleportDistSqr float32) (Pose, bool) {
	var (
		prev, candidate Snapshot
		hasPrev, found  bool
	)
	for record := range h.All() {
		if !record.Alive {
			return Pose{}, false
		}
		if hasPrev && game.Vec3HzDistSqr(prev.Origin.Sub(record.Origin)) > teleportDistSqr {
			return Pose{}, false
		}
		if record.SimulationTime <= target {
			candidate, found = record, true
			break
		}
		prev, hasPrev = record, true
	}
	if !found {
		return Pose{}, false
	}

	pose := Pose{Snapshot: candidate}
	if !hasPrev || candidate.SimulationTime >= target || target >= prev.SimulationTime {
		return pose, true
	}

	frac := (target - candidate.SimulationTime) / (prev.SimulationTime - candidate.SimulationTime)
	f := float32(frac)

	pose.Frac, pose.Interpolated = frac, true
	pose.SimulationTime = target
	pose.Origin = game.LerpVec3(f, candidate.Origin, prev.Origin)
	pose.Angles = game.LerpAngles(f, candidate.Angles, prev.Angles)
	pose.Bounds = lerpBounds(f, candidate, prev)
	pose.Animation = InterpolateAnimation(frac, candidate.Animation, prev.Animation)
	return pose, true
}

// InterpolateAnimation blends the animation state of an older snapshot towards a newer one. Layers
// are only blended when their sequence and order are unchanged between the two; a change of the
// master sequence invalidates every layer. Pose parameters are always taken from older.
func InterpolateAnimation(frac float64, older, newer Animation) Animation {
	out := older
	if frac <= 0 || older.Sequence != newer.Sequence {
		return out
	}
	out.Cycle = lerpCycle(frac, older.Cycle, newer.Cycle)

	for i := range min(older.LayerCount, MaxLayers) {
		o, n := older.Layers[i], newer.Layers[i]
		if o.Sequence != n.Sequence || o.Order != n.Order {
			continue
		}
		out.Layers[i].Cycle = lerpCycle(frac, o.Cycle, n.Cycle)
		out.Layers[i].Weight = float32(float64(o.Weight) + (float64(n.Weight)-float64(o.Weight))*frac)
	}
	return out
}

// lerpCycle interpolates an animation cycle. If the older cycle is ahead of the newer one the cycle
// wrapped from 1 back to 0 in between, so the newer cycle is lifted by one before blending.
func lerpCycle(frac float64, older, newer float32) float32 {
	o, n := float64(older), float64(newer)
	if o > n {
		n += 1
	}
	return game.WrapCycle(float32(o + (n-o)*frac))
}
