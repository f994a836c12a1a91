package entity

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/oomph-ac/lagcomp/game"
)

func lerpBounds(frac float32, older, newer Snapshot) cube.BBox {
	if BoundsEqual(older.Bounds, newer.Bounds) {
		return older.Bounds
	}
	lo := game.LerpVec3(frac, older.Bounds.Min(), newer.Bounds.Min())
	hi := game.LerpVec3(frac, older.Bounds.Max(), newer.Bounds.Max())
	return cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}
