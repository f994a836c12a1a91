package entity

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MaxLayers is the maximum amount of animation overlay layers tracked per player.
	MaxLayers = 15
	// MaxPoseParams is the maximum amount of pose parameters tracked per player.
	MaxPoseParams = 24
)

// LayerState is the state of one animation overlay layer.
type LayerState struct {
	Sequence int32
	Cycle    float32
	Weight   float32
	Order    int32
}

// Animation is the full animation state of a player: the master sequence, its overlay layers and
// its pose parameters. It is a plain value so snapshots never allocate.
type Animation struct {
	Sequence int32
	Cycle    float32

	Layers     [MaxLayers]LayerState
	LayerCount int

	PoseParams [MaxPoseParams]float32
	PoseCount  int
}

// Snapshot is one historical record of a player's pose and animation at a simulation time.
type Snapshot struct {
	SimulationTime float64
	Alive          bool

	Origin mgl32.Vec3
	// Angles holds the pitch, yaw and roll of the player in degrees.
	Angles mgl32.Vec3
	// Bounds is the pre-scale collision box of the player, relative to Origin.
	Bounds cube.BBox

	Animation Animation
}

// Capture records the current state of e into a new Snapshot.
func Capture(e PoseReader) Snapshot {
	return Snapshot{
		SimulationTime: e.SimulationTime(),
		Alive:          e.Alive(),
		Origin:         e.Origin(),
		Angles:         e.Angles(),
		Bounds:         e.Bounds(),
		Animation:      e.Animation(),
	}
}

// BoundsEqual reports whether two boxes have exactly the same extents.
func BoundsEqual(a, b cube.BBox) bool {
	return a.Min() == b.Min() && a.Max() == b.Max()
}
