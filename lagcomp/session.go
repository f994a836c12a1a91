package lagcomp

import (
	"iter"
	"slices"
	"strings"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/lagcomp/entity"
)

// State is the state of a compensation session.
type State uint8

const (
	// Idle means no session is open and every player is in its live pose.
	Idle State = iota
	// Open means players may be in a rewound pose until the session is finished.
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "idle"
}

// ChangeFlags records which parts of a player were rewound.
type ChangeFlags uint8

const (
	ChangedAngles ChangeFlags = 1 << iota
	ChangedBounds
	ChangedOrigin
	ChangedAnimation
)

var changeFlagNames = [...]string{"angles", "bounds", "origin", "animation"}

func (f ChangeFlags) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	for i, name := range changeFlagNames {
		if f&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}

// RestoreRecord holds the live values of a player from before it was rewound. Flags tells which of
// them are restored.
type RestoreRecord struct {
	Flags          ChangeFlags
	Origin         mgl32.Vec3
	Angles         mgl32.Vec3
	Bounds         cube.BBox
	Animation      entity.Animation
	SimulationTime float64
	// Fingerprint is the pose fingerprint before the rewind. It is only taken in debug mode.
	Fingerprint uint64
}

// ChangeRecord holds the values that were written to a player when it was rewound.
type ChangeRecord struct {
	Origin    mgl32.Vec3
	Angles    mgl32.Vec3
	Bounds    cube.BBox
	Animation entity.Animation
}

// Session is a compensation session: the window between Start and Finish in which other players
// are rewound to the time the requester saw them at.
type Session struct {
	state      State
	requester  int
	targetTime float64
	noop       bool

	restored SlotSet
	// order holds the rewound slots in the order they were rewound in.
	order    []int
	restore  []RestoreRecord
	change   []ChangeRecord
}

func newSession(maxPlayers int) Session {
	return Session{
		requester: -1,
		order:     make([]int, 0, maxPlayers),
		restore:   make([]RestoreRecord, maxPlayers),
		change:    make([]ChangeRecord, maxPlayers),
	}
}

// State returns the state of the session.
func (s *Session) State() State {
	return s.state
}

// Requester returns the slot of the player that opened the session, or -1 when idle.
func (s *Session) Requester() int {
	return s.requester
}

// TargetTime returns the simulation time players were rewound to.
func (s *Session) TargetTime() float64 {
	return s.targetTime
}

// Noop returns true if the session was opened without rewinding anybody.
func (s *Session) Noop() bool {
	return s.noop
}

// Restored returns true if the player in the slot was rewound in this session.
func (s *Session) Restored(slot int) bool {
	return s.restored.Has(slot)
}

// Slots returns an iterator over every slot rewound in this session, in the order they were rewound
// in.
func (s *Session) Slots() iter.Seq[int] {
	return slices.Values(s.order)
}

// Record returns the restore and change records of a rewound slot.
func (s *Session) Record(slot int) (RestoreRecord, ChangeRecord, bool) {
	if !s.restored.Has(slot) || slot >= len(s.restore) {
		return RestoreRecord{}, ChangeRecord{}, false
	}
	return s.restore[slot], s.change[slot], true
}

func (s *Session) open(requester int, noop bool) {
	s.state = Open
	s.requester = requester
	s.targetTime = 0
	s.noop = noop
	s.restored.Clear()
	s.order = s.order[:0]
}

func (s *Session) close() {
	s.state = Idle
	s.requester = -1
	s.targetTime = 0
	s.noop = false
	s.restored.Clear()
	s.order = s.order[:0]
}

// rewound marks the slot as rewound.
func (s *Session) rewound(slot int) {
	s.restored.Add(slot)
	s.order = append(s.order, slot)
}

// records resets and returns the records of the slot.
func (s *Session) records(slot int) (*RestoreRecord, *ChangeRecord) {
	restore, change := &s.restore[slot], &s.change[slot]
	*restore, *change = RestoreRecord{}, ChangeRecord{}
	return restore, change
}
