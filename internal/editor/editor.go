package editor

import (
	"math"
	"sort"

	"github.com/kinelab/kinelab/internal/motion"
)

// Domain and hit-test defaults.
const (
	DefaultVMin      = -10.0
	DefaultVMax      = 10.0
	DefaultTolerance = 0.75
)

// Editor authors a velocity graph interactively. It maintains an ordered
// set of (t, v) control points inside fixed domain bounds and exposes a
// single pick gesture: picking near an interior point removes it, picking
// anywhere else inserts a new point there.
type Editor struct {
	horizon   float64
	vMin      float64
	vMax      float64
	tolerance float64
	points    motion.VelocityGraph
}

// New returns an editor over t in [0, horizon] and v in [vMin, vMax],
// seeded with the two immovable endpoints.
func New(horizon, vMin, vMax float64) *Editor {
	e := &Editor{
		horizon:   horizon,
		vMin:      vMin,
		vMax:      vMax,
		tolerance: DefaultTolerance,
	}
	e.Reset()
	return e
}

// SetTolerance overrides the hit-test radius. Non-positive values are
// ignored.
func (e *Editor) SetTolerance(tol float64) {
	if tol > 0 {
		e.tolerance = tol
	}
}

// Horizon returns the editor's time domain upper bound.
func (e *Editor) Horizon() float64 { return e.horizon }

// Bounds returns the velocity domain.
func (e *Editor) Bounds() (vMin, vMax float64) { return e.vMin, e.vMax }

// Points returns a copy of the current control points, sorted by time.
func (e *Editor) Points() motion.VelocityGraph {
	return e.points.Clone()
}

// Pick applies the single editing gesture at a continuous (t, v)
// coordinate. Coordinates are clamped to the domain first. If the pick
// lands within tolerance of an existing point that is neither the first nor
// the last, and removal would still leave two points, that point is
// removed; otherwise a new point is inserted and the set is re-sorted by
// time (stable, so equal times keep insertion order).
func (e *Editor) Pick(t, v float64) {
	t = clamp(t, 0, e.horizon)
	v = clamp(v, e.vMin, e.vMax)

	if i, ok := e.nearest(t, v); ok && i > 0 && i < len(e.points)-1 && len(e.points) > 2 {
		e.points = append(e.points[:i], e.points[i+1:]...)
		return
	}

	e.points = append(e.points, motion.GraphPoint{T: t, V: v})
	sort.SliceStable(e.points, func(i, j int) bool { return e.points[i].T < e.points[j].T })
}

// nearest returns the index of the closest control point within tolerance.
func (e *Editor) nearest(t, v float64) (int, bool) {
	best, bestDist := -1, e.tolerance
	for i, p := range e.points {
		d := math.Hypot(p.T-t, p.V-v)
		if d <= bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

// Reset replaces the point set with exactly the two zero-velocity
// endpoints (0, 0) and (horizon, 0).
func (e *Editor) Reset() {
	e.points = motion.VelocityGraph{{T: 0, V: 0}, {T: e.horizon, V: 0}}
}

// Commit returns the authored graph for handoff to a body.
func (e *Editor) Commit() motion.VelocityGraph {
	return e.points.Clone()
}

// Apply commits the authored graph into b and switches it to
// piecewise-velocity mode.
func (e *Editor) Apply(b *motion.Body) {
	b.Graph = e.Commit()
	b.UsesGraph = true
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
