package game

// TimeToTicks converts a duration in seconds to a whole number of ticks, rounding to nearest.
func TimeToTicks(seconds, interval float64) int64 {
	return int64(0.5 + seconds/interval)
}

// TicksToTime converts a tick count to seconds.
func TicksToTime(ticks int64, interval float64) float64 {
	return interval * float64(ticks)
}

// Clock is a fixed-rate simulation clock. The current time is always a whole number of ticks.
type Clock struct {
	tick     int64
	interval float64
}

// NewClock returns a clock that advances tickRate times per second.
func NewClock(tickRate int) *Clock {
	if tickRate <= 0 {
		tickRate = 20
	}
	return &Clock{interval: 1.0 / float64(tickRate)}
}

// Advance moves the clock forward by one tick.
func (c *Clock) Advance() {
	c.tick++
}

// SetTick moves the clock to the given tick.
func (c *Clock) SetTick(tick int64) {
	c.tick = tick
}

// TickCount returns the current tick.
func (c *Clock) TickCount() int64 {
	return c.tick
}

// TickInterval returns the duration of one tick in seconds.
func (c *Clock) TickInterval() float64 {
	return c.interval
}

// CurTime returns the current simulation time in seconds.
func (c *Clock) CurTime() float64 {
	return TicksToTime(c.tick, c.interval)
}
