package lagcomp

import (
	"github.com/oomph-ac/lagcomp/entity"
	"github.com/oomph-ac/lagcomp/oerror"
)

// Sample records the current pose of every player. It must be called once per tick, after players
// have been simulated and while no session is open.
func (m *Manager) Sample() {
	if m.session.state == Open {
		m.logicError(oerror.New("players sampled while slot %d has a session open", m.session.requester))
		return
	}

	if !m.opts.Enabled || m.present() < 2 {
		m.ClearHistory()
		return
	}

	cutoff := m.clock.CurTime() - m.opts.MaxCompensationSeconds
	for slot, h := range m.histories {
		p, ok := m.roster.Player(slot)
		if !ok {
			h.Clear()
			continue
		}
		if head, ok := h.Newest(); ok && head.SimulationTime >= p.SimulationTime() {
			continue
		}
		h.Append(entity.Capture(p))
		h.EvictOlderThan(cutoff)
	}
}

// RemovePlayer drops the history of the slot, for example when the player in it disconnects.
func (m *Manager) RemovePlayer(slot int) {
	if h := m.History(slot); h != nil {
		h.Clear()
	}
}

// ClearHistory drops the history of every player, for example on a map change.
func (m *Manager) ClearHistory() {
	for _, h := range m.histories {
		h.Clear()
	}
}

// present returns the amount of occupied slots.
func (m *Manager) present() int {
	var n int
	for slot := range m.histories {
		if _, ok := m.roster.Player(slot); ok {
			n++
		}
	}
	return n
}
