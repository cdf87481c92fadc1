package motion

import "sort"

// GraphPoint is a single (time, velocity) control point of a velocity graph.
type GraphPoint struct {
	T float64 `yaml:"t" json:"t"`
	V float64 `yaml:"v" json:"v"`
}

// VelocityGraph is an ordered set of control points defining a continuous,
// piecewise-linear velocity function. Producers are not required to keep it
// sorted; consumers sort by time before use.
type VelocityGraph []GraphPoint

// Sorted returns a copy of the graph sorted ascending by time. The sort is
// stable so duplicate times keep their insertion order.
func (g VelocityGraph) Sorted() VelocityGraph {
	c := make(VelocityGraph, len(g))
	copy(c, g)
	sort.SliceStable(c, func(i, j int) bool { return c[i].T < c[j].T })
	return c
}

// Clone returns an independent copy of the graph.
func (g VelocityGraph) Clone() VelocityGraph {
	c := make(VelocityGraph, len(g))
	copy(c, g)
	return c
}

// Body describes one moving point. It is a plain value snapshot: the engine
// never retains a reference to a caller's Body, it only reads copies.
//
// When UsesGraph is set the velocity comes from Graph (which must hold at
// least two points, enforced by the editor); otherwise motion follows the
// constant-acceleration parameters.
type Body struct {
	Name      string
	X0        float64
	V0        float64
	A         float64
	UsesGraph bool
	Graph     VelocityGraph
}

// Mode reports which kinematics mode the body is in.
func (b Body) Mode() string {
	if b.UsesGraph {
		return "graph"
	}
	return "constant"
}

// Evaluate returns the body's position and velocity at time t. It never
// fails: degenerate graphs are skipped segment by segment, and a graph body
// with fewer than two points falls back to constant-acceleration motion.
func Evaluate(b Body, t float64) (x, v float64) {
	if b.UsesGraph && len(b.Graph) >= 2 {
		return evaluateGraph(b, t)
	}
	return b.X0 + b.V0*t + 0.5*b.A*t*t, b.V0 + b.A*t
}

// evaluateGraph integrates the piecewise-linear velocity function from 0 to
// t by accumulating trapezoid areas. The integration endpoint of each
// segment is clamped to t, and zero-duration segments are skipped via the
// dt guard, so duplicate control-point times never divide by zero.
func evaluateGraph(b Body, t float64) (x, v float64) {
	pts := b.Graph.Sorted()
	x = b.X0
	v = pts[0].V
	if t <= 0 {
		return x, v
	}
	for i := 0; i+1 < len(pts); i++ {
		p, q := pts[i], pts[i+1]
		if p.T >= t {
			break
		}
		end := q.T
		if end > t {
			end = t
		}
		dt := end - p.T
		if dt <= 0 {
			continue
		}
		slope := (q.V - p.V) / (q.T - p.T)
		vEnd := p.V + slope*dt
		x += (p.V + vEnd) / 2 * dt
		v = vEnd
		if end >= t {
			break
		}
	}
	return x, v
}
