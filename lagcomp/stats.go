package lagcomp

import "github.com/elliotchance/orderedmap/v2"

// Stats are counters collected by a Manager.
type Stats struct {
	// Sessions is the amount of sessions started, including no-op sessions.
	Sessions uint64
	// NoopSessions is the amount of sessions that did not rewind anybody by request.
	NoopSessions uint64
	// Backtracks is the amount of players rewound.
	Backtracks uint64
	// RecursiveBacktracks is the amount of players rewound because they obstructed another one.
	RecursiveBacktracks uint64
	// Unresolved is the amount of players that had no usable history for a target time.
	Unresolved uint64
	// StuckFallbacks is the amount of placements that could not use the wanted position.
	StuckFallbacks uint64
	// OverwrittenFields is the amount of fields not restored exactly because the simulation changed
	// them while the session was open.
	OverwrittenFields uint64
	// LogicErrors is the amount of misuses reported.
	LogicErrors uint64
}

// Map returns the counters as an ordered map for logging.
func (s Stats) Map() *orderedmap.OrderedMap[string, any] {
	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("sessions", s.Sessions)
	data.Set("noop", s.NoopSessions)
	data.Set("backtracks", s.Backtracks)
	data.Set("recursive", s.RecursiveBacktracks)
	data.Set("unresolved", s.Unresolved)
	data.Set("stuck", s.StuckFallbacks)
	data.Set("overwritten", s.OverwrittenFields)
	data.Set("errors", s.LogicErrors)
	return data
}
