package lagcomp

import (
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/lagcomp/assert"
	"github.com/oomph-ac/lagcomp/entity"
	"github.com/oomph-ac/lagcomp/settings"
	"github.com/oomph-ac/lagcomp/world"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

const (
	// compensationEpsSqr is the squared distance below which a rewound value is considered equal to
	// the live one.
	compensationEpsSqr = 0.01
	// fractionScale backs placements off obstacles found by a trace.
	fractionScale = 0.95
	// maxTargetDrift is how far, in seconds, the target time derived from the command tick may drift
	// from the one derived from the measured latency before the latter is used.
	maxTargetDrift = 0.2
)

// Config is the configuration of a Manager.
type Config struct {
	// Log is the logger used for errors and debug output. logrus.StandardLogger() is used if nil.
	Log *logrus.Logger
	// Settings are the lag compensation tunables.
	Settings settings.LagCompensation

	// Roster, Clock and Net are required.
	Roster Roster
	Clock  Clock
	Net    NetStats

	// Probe is used to find players rewound into solids. world.Open is used if nil.
	Probe world.Prober
	// Rules are the game rules. Lag compensation is always allowed if nil.
	Rules Rules
	// Eligibility selects which players are rewound for a requester. DefaultEligibility is used if nil.
	Eligibility Eligibility
	// Overlay receives an event for every rewound player when DebugVisualize is enabled. A LogOverlay
	// is used if nil.
	Overlay DebugOverlay
}

// Manager keeps the position history of every player and rewinds them on request, so that actions
// like firing a weapon are evaluated against the world the requesting client actually saw.
//
// A Manager is not safe for concurrent use. Sample, Start and Finish must all be called from the
// goroutine running the server simulation.
type Manager struct {
	log  *logrus.Logger
	opts settings.LagCompensation

	roster   Roster
	clock    Clock
	net      NetStats
	probe    world.Prober
	rules    Rules
	eligible Eligibility
	overlay  DebugOverlay

	histories       []*entity.History
	teleportDistSqr float32

	session Session
	// guard holds the slots being rewound by the current chain of recursive backtracks.
	guard SlotSet
	stats Stats
}

// New creates a Manager from the configuration passed.
func New(conf Config) *Manager {
	assert.IsTrue(conf.Roster != nil, "lag compensation requires a roster")
	assert.IsTrue(conf.Clock != nil, "lag compensation requires a clock")
	assert.IsTrue(conf.Net != nil, "lag compensation requires network stats")

	if conf.Log == nil {
		conf.Log = logrus.StandardLogger()
	}
	conf.Settings.MaxCompensationSeconds = lo.Clamp(conf.Settings.MaxCompensationSeconds, 0, 1)
	if conf.Probe == nil {
		conf.Probe = world.Open{}
	}
	if conf.Eligibility == nil {
		conf.Eligibility = DefaultEligibility(conf.Settings.MaxCompensationSeconds)
	}
	if conf.Overlay == nil {
		conf.Overlay = LogOverlay{Log: conf.Log}
	}
	if conf.Settings.MaxHistoryRecords <= 0 {
		conf.Settings.MaxHistoryRecords = entity.DefaultMaxRecords
	}

	maxPlayers := conf.Roster.MaxPlayers()
	m := &Manager{
		log:             conf.Log,
		opts:            conf.Settings,
		roster:          conf.Roster,
		clock:           conf.Clock,
		net:             conf.Net,
		probe:           conf.Probe,
		rules:           conf.Rules,
		eligible:        conf.Eligibility,
		overlay:         conf.Overlay,
		histories:       make([]*entity.History, maxPlayers),
		teleportDistSqr: conf.Settings.TeleportDistance * conf.Settings.TeleportDistance,
		session:         newSession(maxPlayers),
	}
	for i := range m.histories {
		m.histories[i] = entity.NewHistory(conf.Settings.MaxHistoryRecords, conf.Settings.Debug)
	}
	return m
}

// History returns the history of the player in the slot, or nil if the slot is out of range.
func (m *Manager) History(slot int) *entity.History {
	if slot < 0 || slot >= len(m.histories) {
		return nil
	}
	return m.histories[slot]
}

// Session returns the current compensation session. It must not be modified.
func (m *Manager) Session() *Session {
	return &m.session
}

// Active returns true while a compensation session is open.
func (m *Manager) Active() bool {
	return m.session.state == Open
}

// CurrentRequester returns the slot of the player that opened the current session.
func (m *Manager) CurrentRequester() (int, bool) {
	if m.session.state != Open {
		return -1, false
	}
	return m.session.requester, true
}

// Stats returns the counters collected since the Manager was created.
func (m *Manager) Stats() Stats {
	return m.stats
}

// Compensate rewinds players for the requester, runs f and restores them again.
func (m *Manager) Compensate(requester Player, cmd *Command, f func()) {
	if !m.Start(requester, cmd) {
		f()
		return
	}
	defer m.Finish(requester)
	f()
}

// logicError reports a misuse of the Manager. It panics in debug mode and is logged and reported
// otherwise.
func (m *Manager) logicError(err error) {
	m.stats.LogicErrors++
	assert.IsTrue(!m.opts.Debug, "%v", err)

	m.log.Errorf("lag compensation: %v", err)
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("component", "lagcomp")
		scope.SetTag("session", m.session.state.String())
		scope.SetTag("requester", fmt.Sprint(m.session.requester))
	})
	hub.CaptureException(err)
}

func (m *Manager) flushBoneCache(p Player) {
	if !m.opts.FlushBoneCache {
		return
	}
	if c, ok := p.(entity.BoneCacheInvalidator); ok {
		c.InvalidateBoneCache()
	}
}
