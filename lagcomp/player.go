package lagcomp

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/lagcomp/entity"
)

// TeamUnassigned is the team of players that are not part of any team. Players without a team are
// never filtered out by TeamEligibility.
const TeamUnassigned = 0

// Player is a connected player that can be rewound by lag compensation.
type Player interface {
	entity.Live

	// Slot returns the index of the player in the roster, in [0, MaxPlayers).
	Slot() int
	// Bot returns true if the player is controlled by the server.
	Bot() bool
	// Spectator returns true if the player is not taking part in the game.
	Spectator() bool
	// WantsLagCompensation returns false if the client opted out of lag compensation.
	WantsLagCompensation() bool
	// MaxSpeed returns the maximum speed of the player in units per second.
	MaxSpeed() float32
	// Team returns the team of the player, or TeamUnassigned.
	Team() int
}

// Roster looks up connected players by slot.
type Roster interface {
	// MaxPlayers returns the number of player slots on the server.
	MaxPlayers() int
	// Player returns the player in the slot, if the slot is occupied.
	Player(slot int) (Player, bool)
}

// NetStats reports the network conditions of a player's connection.
type NetStats interface {
	// OutgoingLatency returns the one-way latency from the server to the player, in seconds.
	OutgoingLatency(slot int) float64
	// LerpTime returns the interpolation delay the player's client renders other players with.
	LerpTime(slot int) float64
}

// Clock is the server simulation clock.
type Clock interface {
	CurTime() float64
	TickCount() int64
	TickInterval() float64
}

// Rules are the game rules currently in effect.
type Rules interface {
	// AllowLagCompensation returns false if the game mode does not permit lag compensation.
	AllowLagCompensation() bool
}

// Command is a user command: the input that triggered a compensated action.
type Command struct {
	// Number is the sequence number of the command.
	Number int64
	// TickCount is the server tick the client was rendering when it issued the command.
	TickCount int64
	// ViewAngles is the pitch, yaw and roll the player was looking with.
	ViewAngles mgl32.Vec3
}
