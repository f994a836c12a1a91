package lagcomp

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/lagcomp/utils"
	"github.com/sirupsen/logrus"
)

// BacktrackEvent describes a player that was rewound.
type BacktrackEvent struct {
	Slot       int
	TargetTime float64

	// LiveOrigin and LiveBounds are the pose of the player before it was rewound.
	LiveOrigin mgl32.Vec3
	LiveBounds cube.BBox
	// Origin and Bounds are the pose the player was rewound to.
	Origin mgl32.Vec3
	Bounds cube.BBox

	Frac         float64
	Interpolated bool
	Flags        ChangeFlags
	// Stuck is true if the recorded origin could not be used because it was obstructed.
	Stuck bool
}

// LiveBox returns the collision box of the player before it was rewound, in world space.
func (ev BacktrackEvent) LiveBox() cube.BBox {
	return ev.LiveBounds.Translate(ev.LiveOrigin)
}

// Box returns the collision box of the player after it was rewound, in world space.
func (ev BacktrackEvent) Box() cube.BBox {
	return ev.Bounds.Translate(ev.Origin)
}

// DebugOverlay visualises rewound players.
type DebugOverlay interface {
	Backtracked(ev BacktrackEvent)
}

// LogOverlay is a DebugOverlay that writes every event to a logger at debug level.
type LogOverlay struct {
	Log *logrus.Logger
}

func (o LogOverlay) Backtracked(ev BacktrackEvent) {
	if o.Log == nil || !o.Log.IsLevelEnabled(logrus.DebugLevel) {
		return
	}

	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("slot", ev.Slot)
	data.Set("target", ev.TargetTime)
	data.Set("live", ev.LiveBox())
	data.Set("rewound", ev.Box())
	data.Set("changed", ev.Flags)
	if ev.Interpolated {
		data.Set("frac", ev.Frac)
	}
	if ev.Stuck {
		data.Set("stuck", true)
	}
	o.Log.Debugf("lag compensation: backtracked %s", utils.OrderedMapToString(data))
}
