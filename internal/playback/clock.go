package playback

// Status is the playback state machine's current state.
type Status int

const (
	Paused Status = iota
	Playing
)

func (s Status) String() string {
	if s == Playing {
		return "playing"
	}
	return "paused"
}

// DefaultIncrement is the virtual time added per scheduler tick. Playback
// speed is governed by the host's tick rate, not by a wall clock; TickBy
// exists for hosts that prefer measured inter-tick durations.
const DefaultIncrement = 0.05

// Clock owns the scrub cursor and drives it forward one cooperative tick at
// a time. It is single-threaded by design: the host scheduler calls Tick
// between frames and nothing else touches the cursor.
//
// Cancellation is handled with a generation counter. Pausing, resetting, or
// natural completion bumps the generation; a scheduled callback that arrives
// carrying a stale generation must be discarded by the host (see Gen), so
// no orphaned tick can mutate the cursor.
type Clock struct {
	cursor    float64
	horizon   float64
	increment float64
	status    Status
	gen       uint64
}

// NewClock returns a paused clock with the cursor at 0.
func NewClock(horizon float64) *Clock {
	return &Clock{horizon: horizon, increment: DefaultIncrement}
}

// SetIncrement overrides the virtual time added per tick. Non-positive
// values are ignored.
func (c *Clock) SetIncrement(dt float64) {
	if dt > 0 {
		c.increment = dt
	}
}

// CurrentTime returns the scrub cursor. The cursor is independent of any
// sampling grid and may land between grid points.
func (c *Clock) CurrentTime() float64 { return c.cursor }

// Status reports whether the clock is playing or paused.
func (c *Clock) Status() Status { return c.status }

// Horizon returns the maximum simulated time.
func (c *Clock) Horizon() float64 { return c.horizon }

// Gen returns the current tick generation. Hosts tag scheduled callbacks
// with the generation observed when arming them and drop callbacks whose
// generation no longer matches.
func (c *Clock) Gen() uint64 { return c.gen }

// Play transitions Paused -> Playing and arms a new tick generation. A
// clock whose cursor already sits at the horizon stays paused; Reset or
// Seek re-arms it.
func (c *Clock) Play() {
	if c.status == Playing || c.cursor >= c.horizon {
		return
	}
	c.status = Playing
	c.gen++
}

// Pause transitions Playing -> Paused and invalidates pending ticks.
func (c *Clock) Pause() {
	if c.status == Paused {
		return
	}
	c.status = Paused
	c.gen++
}

// Reset pauses the clock and returns the cursor to 0, regardless of the
// prior state. Pending ticks are invalidated.
func (c *Clock) Reset() {
	c.status = Paused
	c.cursor = 0
	c.gen++
}

// Seek moves the cursor to clamp(t, 0, horizon) without changing the
// play/pause state.
func (c *Clock) Seek(t float64) {
	if t < 0 {
		t = 0
	}
	if t > c.horizon {
		t = c.horizon
	}
	c.cursor = t
}

// Tick advances the cursor by the fixed virtual increment. It reports
// whether the clock is still playing afterwards; reaching the horizon
// clamps the cursor and auto-pauses.
func (c *Clock) Tick() bool {
	return c.TickBy(c.increment)
}

// TickBy advances the cursor by a measured duration instead of the fixed
// increment, for hosts that derive playback speed from wall-clock elapsed
// time between ticks. A paused clock ignores the call entirely.
func (c *Clock) TickBy(dt float64) bool {
	if c.status != Playing || dt <= 0 {
		return false
	}
	c.cursor += dt
	if c.cursor >= c.horizon {
		c.cursor = c.horizon
		c.status = Paused
		c.gen++
		return false
	}
	return true
}
