package lagcomp

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/lagcomp/entity"
	"github.com/oomph-ac/lagcomp/game"
	"github.com/oomph-ac/lagcomp/oerror"
	"github.com/oomph-ac/lagcomp/world"
)

// Backtrack rewinds p to its recorded pose at targetTime and stores what is needed to restore it in
// s. Players without a usable pose at targetTime are left untouched.
//
// guard holds the slots already being rewound further up a chain of recursive backtracks. Backtrack
// adds p to it for as long as it runs.
func (m *Manager) Backtrack(p Player, targetTime float64, s *Session, guard *SlotSet) {
	slot := p.Slot()
	if s.state != Open {
		m.logicError(oerror.New("backtrack of slot %d outside of a compensation session", slot))
		return
	}
	h := m.History(slot)
	if h == nil || slot >= len(s.restore) {
		m.logicError(oerror.New("backtrack of slot %d which is out of range", slot))
		return
	}
	if s.restored.Has(slot) {
		return
	}

	pose, ok := entity.Resolve(h, targetTime, m.teleportDistSqr)
	if !ok {
		m.stats.Unresolved++
		return
	}

	guard.Add(slot)
	defer guard.Remove(slot)

	live, liveBounds := p.Origin(), p.Bounds()
	org, stuck := pose.Origin, false
	if m.opts.FixStuckPositions {
		org, stuck = m.unstick(p, pose, targetTime, s, guard)
	}

	restore, change := s.records(slot)
	restore.Origin, restore.Angles, restore.Bounds = live, p.Angles(), liveBounds
	restore.SimulationTime = p.SimulationTime()
	if m.opts.Debug {
		restore.Fingerprint = entity.Fingerprint(p)
	}

	if restore.Angles.Sub(pose.Angles).LenSqr() > compensationEpsSqr {
		restore.Flags |= ChangedAngles
		p.SetAngles(pose.Angles)
		change.Angles = pose.Angles
	}
	if !entity.BoundsEqual(liveBounds, pose.Bounds) {
		restore.Flags |= ChangedBounds
		p.SetBounds(pose.Bounds)
		change.Bounds = pose.Bounds
	}
	if live.Sub(org).LenSqr() > compensationEpsSqr {
		restore.Flags |= ChangedOrigin
		p.SetOrigin(org)
		change.Origin = org
	}

	restore.Flags |= ChangedAnimation
	restore.Animation = p.Animation()
	p.SetAnimation(pose.Animation)
	change.Animation = pose.Animation
	m.flushBoneCache(p)

	s.rewound(slot)
	m.stats.Backtracks++

	if m.opts.DebugVisualize {
		m.overlay.Backtracked(BacktrackEvent{
			Slot:         slot,
			TargetTime:   targetTime,
			LiveOrigin:   live,
			LiveBounds:   liveBounds,
			Origin:       p.Origin(),
			Bounds:       p.Bounds(),
			Frac:         pose.Frac,
			Interpolated: pose.Interpolated,
			Flags:        restore.Flags,
			Stuck:        stuck,
		})
	}
}

// unstick returns the origin p should be rewound to. If the recorded origin overlaps another player
// that has not been rewound yet, that player is rewound first, since the overlap may only exist
// because one of the two is still in its live pose. The second return value is true if the recorded
// origin could not be used.
func (m *Manager) unstick(p Player, pose entity.Pose, targetTime float64, s *Session, guard *SlotSet) (mgl32.Vec3, bool) {
	hull := world.Hull{Index: p.Slot(), Box: pose.Bounds}
	target := pose.Origin

	tr := m.probe.TraceEntityMove(hull, target, target, world.MaskPlayerSolid)
	if !tr.Blocked() {
		return target, false
	}
	if tr.HitSlot != world.NoHit && !guard.Has(tr.HitSlot) && !s.restored.Has(tr.HitSlot) {
		// The eligibility predicate is not consulted for players in the way.
		if other, ok := m.roster.Player(tr.HitSlot); ok {
			m.stats.RecursiveBacktracks++
			m.Backtrack(other, targetTime, s, guard)

			if tr = m.probe.TraceEntityMove(hull, target, target, world.MaskPlayerSolid); !tr.Blocked() {
				return target, false
			}
		}
	}

	m.stats.StuckFallbacks++
	live := p.Origin()
	tr = m.probe.TraceEntityMove(hull, live, target, world.MaskPlayerSolid)
	if tr.Blocked() {
		m.log.Debugf("lag compensation: slot %d stuck at %v (hit slot %d), keeping recorded origin", p.Slot(), target, tr.HitSlot)
		return target, true
	}
	return game.LerpVec3(tr.Fraction*fractionScale, live, target), true
}
