package timeline

import "github.com/kinelab/kinelab/internal/motion"

// Crossing is the earliest sampled step at which the two bodies swap
// relative order. X is body A's position at that step.
type Crossing struct {
	T float64
	X float64
}

// DetectCrossing walks the sampled frames pairwise and reports the first
// step where the sign of (xA - xB) flips. Equality at the arrival sample
// counts as crossed, so a crossing landing exactly on a grid point is
// reported at that grid point. Detection granularity is bounded by the
// sampling step; no sub-step interpolation is attempted. Only the first
// crossing is reported even if the bodies cross again later.
func DetectCrossing(tl Timeline) (Crossing, bool) {
	for i := 1; i < len(tl.Frames); i++ {
		prev, curr := tl.Frames[i-1], tl.Frames[i]
		if (prev.A.X < prev.B.X) != (curr.A.X < curr.B.X) {
			return Crossing{T: curr.T, X: curr.A.X}, true
		}
	}
	return Crossing{}, false
}

// Snapshot pairs a Timeline with the crossing detected on it. The pair is
// built offline and installed with a single pointer swap, so a reader never
// sees a timeline from one body configuration paired with a crossing from
// another.
type Snapshot struct {
	Timeline Timeline
	Crossing *Crossing
}

// Build samples both bodies and runs crossing detection once, returning the
// two as one immutable unit.
func Build(a, b motion.Body, step, horizon float64) *Snapshot {
	tl := Sample(a, b, step, horizon)
	snap := &Snapshot{Timeline: tl}
	if c, ok := DetectCrossing(tl); ok {
		snap.Crossing = &c
	}
	return snap
}
