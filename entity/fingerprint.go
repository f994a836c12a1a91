package entity

import (
	"bytes"
	"encoding/binary"

	"github.com/oomph-ac/lagcomp/internal"
	"github.com/zeebo/xxh3"
)

// Fingerprint hashes the pose of e: everything lag compensation rewinds and restores. Two equal
// fingerprints mean the entity is bit-for-bit in the same pose. Whether the entity is alive is not
// part of its pose.
func Fingerprint(e PoseReader) uint64 {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer internal.BufferPool.Put(buf)

	anim := e.Animation()
	bounds := e.Bounds()

	_ = binary.Write(buf, binary.LittleEndian, e.SimulationTime())
	_ = binary.Write(buf, binary.LittleEndian, e.Origin())
	_ = binary.Write(buf, binary.LittleEndian, e.Angles())
	_ = binary.Write(buf, binary.LittleEndian, bounds.Min())
	_ = binary.Write(buf, binary.LittleEndian, bounds.Max())
	_ = binary.Write(buf, binary.LittleEndian, anim.Sequence)
	_ = binary.Write(buf, binary.LittleEndian, anim.Cycle)
	_ = binary.Write(buf, binary.LittleEndian, anim.Layers[:min(anim.LayerCount, MaxLayers)])
	_ = binary.Write(buf, binary.LittleEndian, anim.PoseParams[:min(anim.PoseCount, MaxPoseParams)])

	return xxh3.Hash(buf.Bytes())
}
