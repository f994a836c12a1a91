package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// LerpVec3 linearly interpolates between two vectors by frac.
func LerpVec3(frac float32, from, to mgl32.Vec3) mgl32.Vec3 {
	return from.Add(to.Sub(from).Mul(frac))
}

// LerpAngles interpolates a set of euler angles (in degrees) by frac, taking the shortest arc
// on every axis.
func LerpAngles(frac float32, from, to mgl32.Vec3) mgl32.Vec3 {
	if from == to {
		return from
	}
	return mgl32.Vec3{
		from[0] + WrapAngleDelta(to[0]-from[0])*frac,
		from[1] + WrapAngleDelta(to[1]-from[1])*frac,
		from[2] + WrapAngleDelta(to[2]-from[2])*frac,
	}
}

// WrapAngleDelta wraps an angle difference in degrees into [-180, 180).
func WrapAngleDelta(delta float32) float32 {
	if delta >= -180 && delta < 180 {
		return delta
	}
	delta = math32.Mod(delta+180, 360)
	if delta < 0 {
		delta += 360
	}
	return delta - 180
}

// WrapCycle wraps an animation cycle back into [0, 1).
func WrapCycle(cycle float32) float32 {
	if cycle >= 1 {
		cycle -= 1
	} else if cycle < 0 {
		cycle += 1
	}
	return cycle
}

// Vec3HzDistSqr returns the squared horizontal distance in a vector.
func Vec3HzDistSqr(vec3 mgl32.Vec3) float32 {
	return vec3.X()*vec3.X() + vec3.Z()*vec3.Z()
}

// DirectionVector returns a direction vector from the given yaw and pitch values.
func DirectionVector(yaw, pitch float32) mgl32.Vec3 {
	yawRad, pitchRad := mgl32.DegToRad(yaw), mgl32.DegToRad(pitch)
	m := math32.Cos(pitchRad)

	return mgl32.Vec3{
		-m * math32.Sin(yawRad),
		-math32.Sin(pitchRad),
		m * math32.Cos(yawRad),
	}
}
