package lagcomp

import (
	"math"

	"github.com/oomph-ac/lagcomp/game"
	"github.com/oomph-ac/lagcomp/oerror"
	"github.com/samber/lo"
)

// Start opens a compensation session for the requester and rewinds every other eligible player to
// the time the requester saw them at when issuing cmd. Every call to Start that returns true must be
// followed by a call to Finish before the next tick.
//
// Start returns false if a session was already open. The existing session is left untouched.
func (m *Manager) Start(requester Player, cmd *Command) bool {
	if m.session.state == Open {
		m.logicError(oerror.New("slot %d started lag compensation while slot %d still has a session open", requester.Slot(), m.session.requester))
		return false
	}
	m.stats.Sessions++

	if !m.compensates(requester) {
		m.session.open(requester.Slot(), true)
		m.stats.NoopSessions++
		return true
	}
	m.session.open(requester.Slot(), false)

	if cmd == nil {
		cmd = &Command{TickCount: m.clock.TickCount()}
	}
	target := m.targetTime(requester.Slot(), cmd)
	m.session.targetTime = target

	for slot := range m.roster.MaxPlayers() {
		if slot == requester.Slot() || m.session.restored.Has(slot) {
			continue
		}
		p, ok := m.roster.Player(slot)
		if !ok || !p.Alive() || !m.eligible(requester, p, cmd) {
			continue
		}
		m.guard.Clear()
		m.Backtrack(p, target, &m.session, &m.guard)
	}
	return true
}

// compensates returns true if actions of the requester should be lag compensated at all.
func (m *Manager) compensates(requester Player) bool {
	switch {
	case !m.opts.Enabled:
		return false
	case m.rules != nil && !m.rules.AllowLagCompensation():
		return false
	case requester.Bot(), requester.Spectator(), !requester.WantsLagCompensation():
		return false
	}
	return true
}

// targetTime returns the simulation time the requester's client was rendering other players at.
// The tick in the command is trusted unless it disagrees with the measured latency by more than
// maxTargetDrift.
func (m *Manager) targetTime(slot int, cmd *Command) float64 {
	interval := m.clock.TickInterval()
	lerpTicks := game.TimeToTicks(m.net.LerpTime(slot), interval)
	correct := lo.Clamp(m.net.OutgoingLatency(slot)+game.TicksToTime(lerpTicks, interval), 0, m.opts.MaxCompensationSeconds)

	targetTick := cmd.TickCount - lerpTicks
	if delta := correct - (m.clock.CurTime() - game.TicksToTime(targetTick, interval)); math.Abs(delta) > maxTargetDrift {
		targetTick = m.clock.TickCount() - game.TimeToTicks(correct, interval)
	}
	return game.TicksToTime(targetTick, interval)
}
