package lagcomp

import "github.com/oomph-ac/lagcomp/game"

// viewConeCos is the cosine of the half-angle of the cone in front of the requester in which players
// are always rewound.
const viewConeCos = 0.707107

// Eligibility decides whether the candidate should be rewound for an action of the requester.
type Eligibility func(requester, candidate Player, cmd *Command) bool

// DefaultEligibility returns an Eligibility that rewinds living players close enough to have crossed
// the requester's path within maxUnlag seconds, and living players roughly in front of the requester.
func DefaultEligibility(maxUnlag float64) Eligibility {
	return func(requester, candidate Player, cmd *Command) bool {
		if !candidate.Alive() {
			return false
		}
		diff := candidate.Origin().Sub(requester.Origin())
		if diff.Len() < 1.5*candidate.MaxSpeed()*float32(maxUnlag) {
			return true
		}

		angles := requester.Angles()
		if cmd != nil {
			angles = cmd.ViewAngles
		}
		forward := game.DirectionVector(angles.Y(), angles.X())
		return forward.Dot(diff.Normalize()) >= viewConeCos
	}
}

// TeamEligibility wraps next so that teammates of the requester are never rewound unless friendly
// fire is enabled. Players without a team are not filtered.
func TeamEligibility(friendlyFire bool, next Eligibility) Eligibility {
	return func(requester, candidate Player, cmd *Command) bool {
		if !friendlyFire && requester.Team() != TeamUnassigned && requester.Team() == candidate.Team() {
			return false
		}
		return next == nil || next(requester, candidate, cmd)
	}
}
