package sim

import (
	"github.com/kinelab/kinelab/internal/motion"
	"github.com/kinelab/kinelab/internal/playback"
	"github.com/kinelab/kinelab/internal/timeline"
)

// Session is the engine facade the presentation layer talks to. It holds
// value snapshots of the two bodies, the derived timeline/crossing pair,
// and the playback clock.
//
// The timeline and crossing are recomputed together and installed with a
// single pointer swap, so a reader never observes a timeline from one body
// configuration paired with a crossing from another. The scrub cursor lives
// in the clock and is deliberately untouched by body changes: the next
// frame simply renders the fresh snapshot at the old cursor time.
//
// Sessions are single-threaded; the cooperative host drives them between
// frames and nothing inside blocks.
type Session struct {
	bodyA   motion.Body
	bodyB   motion.Body
	step    float64
	horizon float64
	snap    *timeline.Snapshot
	clock   *playback.Clock
}

// New builds a session over the given bodies and sampling grid. Zero or
// negative step/horizon fall back to the timeline defaults.
func New(a, b motion.Body, step, horizon float64) *Session {
	if step <= 0 {
		step = timeline.DefaultStep
	}
	if horizon <= 0 {
		horizon = timeline.DefaultHorizon
	}
	s := &Session{
		bodyA:   a,
		bodyB:   b,
		step:    step,
		horizon: horizon,
		clock:   playback.NewClock(horizon),
	}
	s.snap = timeline.Build(a, b, step, horizon)
	return s
}

// SetBodies replaces both body snapshots and atomically swaps in a freshly
// derived timeline/crossing pair. The playback cursor is unaffected.
func (s *Session) SetBodies(a, b motion.Body) {
	s.bodyA, s.bodyB = a, b
	s.snap = timeline.Build(a, b, s.step, s.horizon)
}

// Bodies returns the current body snapshots.
func (s *Session) Bodies() (a, b motion.Body) { return s.bodyA, s.bodyB }

// Snapshot returns the current timeline/crossing pair. The returned value
// is immutable; a later SetBodies installs a new one rather than mutating
// it.
func (s *Session) Snapshot() *timeline.Snapshot { return s.snap }

// Clock returns the playback clock owning the scrub cursor.
func (s *Session) Clock() *playback.Clock { return s.clock }

// Step returns the sampling step.
func (s *Session) Step() float64 { return s.step }

// Horizon returns the simulation horizon.
func (s *Session) Horizon() float64 { return s.horizon }

// At evaluates both bodies at an arbitrary time, independent of the
// sampling grid. The renderer uses it to draw the bodies at the scrub
// cursor between grid points.
func (s *Session) At(t float64) (a, b timeline.BodyState) {
	xa, va := motion.Evaluate(s.bodyA, t)
	xb, vb := motion.Evaluate(s.bodyB, t)
	return timeline.BodyState{X: xa, V: va}, timeline.BodyState{X: xb, V: vb}
}

// Current is shorthand for At(clock cursor).
func (s *Session) Current() (a, b timeline.BodyState) {
	return s.At(s.clock.CurrentTime())
}
