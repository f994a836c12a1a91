package main

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/lagcomp/entity"
	"github.com/oomph-ac/lagcomp/game"
	"github.com/oomph-ac/lagcomp/lagcomp"
	"github.com/oomph-ac/lagcomp/settings"
	"github.com/oomph-ac/lagcomp/utils"
	"github.com/oomph-ac/lagcomp/world"
	"github.com/sirupsen/logrus"
)

const (
	eyeHeight = 1.62
	fireRange = 64

	// fireInterval is the amount of ticks between two shots in the arena.
	fireInterval  = 15
	statsInterval = 5 * time.Second

	// maxOffsets is the amount of recent shots the offset statistics are computed over.
	maxOffsets = 256
)

// client is a simulated remote player strafing back and forth around an anchor point.
type client struct {
	*entity.Entity

	slot    int
	team    int
	latency float64
	lerp    float64

	anchor mgl32.Vec3
	phase  float32
}

func (c *client) Slot() int                  { return c.slot }
func (c *client) Bot() bool                  { return false }
func (c *client) Spectator() bool            { return false }
func (c *client) WantsLagCompensation() bool { return true }
func (c *client) MaxSpeed() float32          { return 8 }
func (c *client) Team() int                  { return c.team }

// move advances the client by one tick.
func (c *client) move(now float64) {
	t := float32(now)
	c.SetOrigin(c.anchor.Add(mgl32.Vec3{4 * math32.Sin(2*t+c.phase), 0, 0}))
	c.SetAngles(mgl32.Vec3{0, 90 * math32.Sin(t+c.phase), 0})

	anim := c.Animation()
	anim.Sequence = 1
	anim.Cycle = game.WrapCycle(anim.Cycle + 0.04)
	anim.LayerCount = 1
	anim.Layers[0] = entity.LayerState{Sequence: 2, Cycle: game.WrapCycle(anim.Layers[0].Cycle + 0.1), Weight: 1}
	c.SetAnimation(anim)
	c.SetSimulationTime(now)
}

// arena is a headless game server: it simulates clients, samples them for lag compensation and
// resolves hitscan shots against their rewound positions.
type arena struct {
	log      *logrus.Logger
	settings settings.Settings

	clock   *game.Clock
	world   *world.World
	clients []*client
	lc      *lagcomp.Manager

	hits, misses int

	// offsets holds, for recent shots, how far the point the shooter aimed at was from the live box of
	// the victim: how far the shot would have missed without lag compensation.
	offsets *utils.Ring[float64]
}

func newArena(log *logrus.Logger, s settings.Settings, count int) *arena {
	a := &arena{
		log:      log,
		settings: s,
		clock:    game.NewClock(s.Server.TickRate),
		world:    world.New(),
		clients:  make([]*client, s.Server.MaxPlayers),
		offsets:  utils.NewRing[float64](16, maxOffsets),
	}
	for x := float32(-12); x <= 12; x += 12 {
		a.world.AddSolid(cube.Box(x-0.5, 0, 5, x+0.5, 3, 6))
	}

	for slot := range min(count, s.Server.MaxPlayers) {
		c := &client{
			Entity:  entity.New(mgl32.Vec3{}, entity.DefaultBounds),
			slot:    slot,
			team:    slot%2 + 1,
			latency: 0.02 + 0.03*float64(slot%4),
			lerp:    0.1,
			anchor:  mgl32.Vec3{float32(slot%4)*10 - 15, 0, float32(slot/4) * 12},
			phase:   float32(slot),
		}
		c.move(a.clock.CurTime())
		a.clients[slot] = c
		a.world.Track(c)
	}

	a.lc = lagcomp.New(lagcomp.Config{
		Log:         log,
		Settings:    s.LagCompensation,
		Roster:      a,
		Clock:       a.clock,
		Net:         a,
		Probe:       a.world,
		Rules:       a,
		Eligibility: lagcomp.TeamEligibility(false, lagcomp.DefaultEligibility(s.LagCompensation.MaxCompensationSeconds)),
	})
	return a
}

func (a *arena) MaxPlayers() int {
	return len(a.clients)
}

func (a *arena) Player(slot int) (lagcomp.Player, bool) {
	if slot < 0 || slot >= len(a.clients) || a.clients[slot] == nil {
		return nil, false
	}
	return a.clients[slot], true
}

func (a *arena) OutgoingLatency(slot int) float64 {
	if c, ok := a.Player(slot); ok {
		return c.(*client).latency
	}
	return 0
}

func (a *arena) LerpTime(slot int) float64 {
	if c, ok := a.Player(slot); ok {
		return c.(*client).lerp
	}
	return 0
}

func (a *arena) clientCount() (n int) {
	for _, c := range a.clients {
		if c != nil {
			n++
		}
	}
	return n
}

func (a *arena) AllowLagCompensation() bool {
	return true
}

// run ticks the arena until ctx is cancelled.
func (a *arena) run(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(a.clock.TickInterval() * float64(time.Second)))
	defer ticker.Stop()
	stats := time.NewTicker(statsInterval)
	defer stats.Stop()

	a.log.Infof("arena running at %d ticks per second with %d clients and %d solids", a.settings.Server.TickRate, a.clientCount(), len(a.world.Solids()))
	for {
		select {
		case <-ctx.Done():
			a.logStats()
			return
		case <-stats.C:
			a.logStats()
		case <-ticker.C:
			a.tick()
		}
	}
}

func (a *arena) tick() {
	a.clock.Advance()
	now := a.clock.CurTime()

	for _, c := range a.clients {
		if c != nil {
			c.move(now)
		}
	}
	if tick := a.clock.TickCount(); tick%fireInterval == 0 {
		a.fire(int(tick/fireInterval) % len(a.clients))
	}
	a.lc.Sample()
}

// fire makes the client in the shooter slot shoot at the nearest client of another team.
func (a *arena) fire(shooter int) {
	c := a.clients[shooter]
	if c == nil {
		return
	}
	victim := a.nearestEnemy(c)
	if victim == nil {
		return
	}

	interval := a.clock.TickInterval()
	// The client renders the world as it was when the last update reached it, delayed by its
	// interpolation time, and aims at the victim where it saw it.
	tickCount := a.clock.TickCount() - game.TimeToTicks(c.latency, interval)
	rendered := victim.Origin()
	renderTime := game.TicksToTime(tickCount-game.TimeToTicks(c.lerp, interval), interval)
	if h := a.lc.History(victim.slot); h != nil {
		teleport := a.settings.LagCompensation.TeleportDistance
		if pose, ok := entity.Resolve(h, renderTime, teleport*teleport); ok {
			rendered = pose.Origin
		}
	}

	eye, aim := c.Origin().Add(mgl32.Vec3{0, eyeHeight}), rendered.Add(mgl32.Vec3{0, 1})
	cmd := &lagcomp.Command{
		Number:     a.clock.TickCount(),
		TickCount:  tickCount,
		ViewAngles: viewAngles(aim.Sub(eye)),
	}
	a.offsets.Push(float64(game.AABBVectorDistance(victim.Box(), aim)))

	a.lc.Compensate(c, cmd, func() {
		dir := game.DirectionVector(cmd.ViewAngles.Y(), cmd.ViewAngles.X())
		hit, dist := a.raycast(c, eye, eye.Add(dir.Mul(fireRange)))
		if hit == nil {
			a.misses++
			a.log.Debugf("slot %d missed slot %d", c.slot, victim.slot)
			return
		}
		a.hits++
		a.log.Debugf("slot %d hit slot %d at %.2f blocks (target=%.3f)", c.slot, hit.slot, dist, a.lc.Session().TargetTime())
	})
}

// raycast returns the closest client other than the shooter whose box intersects the ray.
func (a *arena) raycast(shooter *client, from, to mgl32.Vec3) (*client, float32) {
	var (
		closest *client
		minDist = float32(fireRange * fireRange)
	)
	for _, c := range a.clients {
		if c == nil || c == shooter || !c.Alive() {
			continue
		}
		res, ok := trace.BBoxIntercept(c.Box(), from, to)
		if !ok {
			continue
		}
		if dist := res.Position().Sub(from).LenSqr(); dist <= minDist {
			closest, minDist = c, dist
		}
	}
	return closest, math32.Sqrt(minDist)
}

func (a *arena) nearestEnemy(c *client) *client {
	var (
		nearest *client
		minDist = float32(math32.MaxFloat32)
	)
	for _, other := range a.clients {
		if other == nil || other.team == c.team {
			continue
		}
		if dist := other.Origin().Sub(c.Origin()).LenSqr(); dist < minDist {
			nearest, minDist = other, dist
		}
	}
	return nearest
}

func (a *arena) logStats() {
	data := a.lc.Stats().Map()
	data.Set("hits", a.hits)
	data.Set("misses", a.misses)
	if a.offsets.Len() > 0 {
		offsets := slices.Collect(a.offsets.All())
		data.Set("offset_mean", fmt.Sprintf("%.3f", game.Mean(offsets)))
		data.Set("offset_median", fmt.Sprintf("%.3f", game.Median(offsets)))
		data.Set("offset_stddev", fmt.Sprintf("%.3f", game.StandardDeviation(offsets)))
	}
	a.log.Infof("lag compensation stats %s", utils.OrderedMapToString(data))
}

// viewAngles returns the pitch and yaw looking down dir.
func viewAngles(dir mgl32.Vec3) mgl32.Vec3 {
	dir = dir.Normalize()
	yaw := mgl32.RadToDeg(math32.Atan2(-dir.X(), dir.Z()))
	pitch := mgl32.RadToDeg(-math32.Asin(dir.Y()))
	return mgl32.Vec3{pitch, yaw, 0}
}
