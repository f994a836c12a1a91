package lagcomp

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func TestSampleRecordsAdvancedPlayers(t *testing.T) {
	a := newTestPlayer(0, mgl32.Vec3{})
	b := newTestPlayer(1, mgl32.Vec3{5, 0, 0})
	m, _, clock := newTestManager(Config{Settings: testSettings()}, a, b)

	m.Sample()
	require.Equal(t, 1, m.History(0).Len())
	require.Equal(t, 1, m.History(1).Len())

	// Nothing was simulated, so nothing new is recorded.
	m.Sample()
	require.Equal(t, 1, m.History(1).Len())

	clock.Advance()
	b.SetSimulationTime(1.01)
	b.SetOrigin(mgl32.Vec3{6, 0, 0})
	m.Sample()
	require.Equal(t, 1, m.History(0).Len())
	require.Equal(t, 2, m.History(1).Len())

	head, ok := m.History(1).Newest()
	require.True(t, ok)
	require.Equal(t, 1.01, head.SimulationTime)
	require.Equal(t, mgl32.Vec3{6, 0, 0}, head.Origin)
}

func TestSampleEvictsOldSnapshots(t *testing.T) {
	a := newTestPlayer(0, mgl32.Vec3{})
	b := newTestPlayer(1, mgl32.Vec3{})
	m, _, clock := newTestManager(Config{Settings: testSettings()}, a, b)

	for i := range 300 {
		clock.SetTick(int64(100 + i))
		b.SetSimulationTime(clock.CurTime())
		m.Sample()
	}
	oldest, ok := m.History(1).Oldest()
	require.True(t, ok)
	require.GreaterOrEqual(t, oldest.SimulationTime, clock.CurTime()-1.0-1e-9)
	require.LessOrEqual(t, m.History(1).Len(), 101)
}

func TestSampleRecordsDeadPlayers(t *testing.T) {
	a := newTestPlayer(0, mgl32.Vec3{})
	b := newTestPlayer(1, mgl32.Vec3{})
	b.SetAlive(false)
	m, _, _ := newTestManager(Config{Settings: testSettings()}, a, b)

	m.Sample()
	head, ok := m.History(1).Newest()
	require.True(t, ok)
	require.False(t, head.Alive)
}

func TestSampleClearsHistory(t *testing.T) {
	a := newTestPlayer(0, mgl32.Vec3{})
	b := newTestPlayer(1, mgl32.Vec3{})
	c := newTestPlayer(2, mgl32.Vec3{})
	m, roster, _ := newTestManager(Config{Settings: testSettings()}, a, b, c)

	m.Sample()
	require.Equal(t, 1, m.History(2).Len())

	// A vacated slot loses its history.
	roster.players[2] = nil
	m.Sample()
	require.Zero(t, m.History(2).Len())
	require.Equal(t, 1, m.History(1).Len())

	// Alone on the server, nobody keeps history.
	roster.players[1] = nil
	m.Sample()
	require.Zero(t, m.History(0).Len())

	roster.players[1] = b
	m.Sample()
	require.Equal(t, 1, m.History(0).Len())
	m.RemovePlayer(0)
	require.Zero(t, m.History(0).Len())
	require.Equal(t, 1, m.History(1).Len())
	m.ClearHistory()
	require.Zero(t, m.History(1).Len())
	require.Nil(t, m.History(100))
}

func TestSampleDisabled(t *testing.T) {
	s := testSettings()
	s.Enabled = false
	a := newTestPlayer(0, mgl32.Vec3{})
	b := newTestPlayer(1, mgl32.Vec3{})
	m, _, _ := newTestManager(Config{Settings: s}, a, b)

	record(m, b, 0.5, mgl32.Vec3{})
	m.Sample()
	require.Zero(t, m.History(1).Len())
}
