package lagcomp

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/lagcomp/entity"
	"github.com/oomph-ac/lagcomp/game"
	"github.com/oomph-ac/lagcomp/oerror"
	"github.com/oomph-ac/lagcomp/world"
)

// Finish restores every player rewound by the open session and closes it. Fields the simulation
// changed while the session was open are kept as the simulation left them.
func (m *Manager) Finish(requester Player) {
	s := &m.session
	if s.state != Open {
		m.logicError(oerror.New("slot %d finished lag compensation without an open session", requester.Slot()))
		return
	}
	if requester.Slot() != s.requester {
		m.logicError(oerror.New("slot %d finished the lag compensation session of slot %d", requester.Slot(), s.requester))
	}

	// Players are restored in the reverse order they were rewound in, so the live position of every
	// player is free again by the time it is restored.
	for _, slot := range slices.Backward(s.order) {
		p, ok := m.roster.Player(slot)
		if !ok {
			// Disconnected while rewound.
			continue
		}
		m.restore(p, &s.restore[slot], &s.change[slot])
	}
	s.close()
}

func (m *Manager) restore(p Player, restore *RestoreRecord, change *ChangeRecord) {
	var restoreSimTime bool
	exact := true

	if restore.Flags&ChangedBounds != 0 {
		restoreSimTime = true
		if entity.BoundsEqual(p.Bounds(), change.Bounds) {
			p.SetBounds(restore.Bounds)
		} else {
			exact = false
			m.stats.OverwrittenFields++
		}
	}
	if restore.Flags&ChangedAngles != 0 {
		restoreSimTime = true
		if p.Angles() == change.Angles {
			p.SetAngles(restore.Angles)
		} else {
			exact = false
			m.stats.OverwrittenFields++
		}
	}
	if restore.Flags&ChangedOrigin != 0 {
		restoreSimTime = true
		// Keep whatever the simulation moved the player by while it was rewound.
		delta := p.Origin().Sub(change.Origin)
		if delta != (mgl32.Vec3{}) {
			exact = false
			m.stats.OverwrittenFields++
		}
		if !m.restoreTo(p, restore.Origin.Add(delta)) {
			exact = false
		}
	}
	if restore.Flags&ChangedAnimation != 0 {
		restoreSimTime = true
		p.SetAnimation(restore.Animation)
		m.flushBoneCache(p)
	}
	if restoreSimTime {
		p.SetSimulationTime(restore.SimulationTime)
	}

	// The fingerprint can only match if the simulation left the fields that were never rewound alone.
	if restore.Flags&ChangedBounds == 0 && !entity.BoundsEqual(p.Bounds(), restore.Bounds) {
		exact = false
	}
	if restore.Flags&ChangedAngles == 0 && p.Angles() != restore.Angles {
		exact = false
	}
	if restore.Flags&ChangedOrigin == 0 && p.Origin() != restore.Origin {
		exact = false
	}

	if m.opts.Debug && exact {
		if fp := entity.Fingerprint(p); fp != restore.Fingerprint {
			m.logicError(oerror.New("slot %d was not restored exactly (fingerprint %x, want %x)", p.Slot(), fp, restore.Fingerprint))
		}
	}
}

// restoreTo moves p to wanted, or as close to it as a trace from its current origin allows. It
// returns false if p could not be placed at wanted.
func (m *Manager) restoreTo(p Player, wanted mgl32.Vec3) bool {
	tr := m.probe.TraceEntityMove(p, wanted, wanted, world.MaskPlayerSolid)
	if !tr.Blocked() {
		p.SetOrigin(wanted)
		return true
	}

	m.stats.StuckFallbacks++
	live := p.Origin()
	tr = m.probe.TraceEntityMove(p, live, wanted, world.MaskPlayerSolid)
	if tr.Blocked() {
		m.log.Debugf("lag compensation: could not restore slot %d to %v, leaving it at %v", p.Slot(), wanted, live)
		return false
	}
	p.SetOrigin(game.LerpVec3(tr.Fraction*fractionScale, live, wanted))
	return false
}
