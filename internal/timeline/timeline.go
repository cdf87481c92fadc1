package timeline

import (
	"math"

	"github.com/kinelab/kinelab/internal/motion"
)

// Default sampling grid.
const (
	DefaultStep    = 0.1
	DefaultHorizon = 20.0
)

// BodyState is one body's derived state at a sample time. Never mutated
// once produced.
type BodyState struct {
	X float64
	V float64
}

// Frame holds both bodies' states at one grid time.
type Frame struct {
	T float64
	A BodyState
	B BodyState
}

// Timeline is a fixed-step sequence of frames spanning [0, Horizon]. It is
// regenerated wholesale whenever either body changes; there is no
// incremental patching.
type Timeline struct {
	Step    float64
	Horizon float64
	Frames  []Frame
}

// Sample evaluates both bodies on the grid t = 0, step, 2*step, ... up to
// and including the last grid point that fits inside the horizon. It is a
// pure function of its inputs: identical bodies yield identical frames.
func Sample(a, b motion.Body, step, horizon float64) Timeline {
	if step <= 0 {
		step = DefaultStep
	}
	if horizon <= 0 {
		horizon = DefaultHorizon
	}

	n := int(math.Round(horizon / step))
	if float64(n)*step > horizon+1e-9 {
		n--
	}

	tl := Timeline{
		Step:    step,
		Horizon: horizon,
		Frames:  make([]Frame, 0, n+1),
	}
	for i := 0; i <= n; i++ {
		t := float64(i) * step
		xa, va := motion.Evaluate(a, t)
		xb, vb := motion.Evaluate(b, t)
		tl.Frames = append(tl.Frames, Frame{
			T: t,
			A: BodyState{X: xa, V: va},
			B: BodyState{X: xb, V: vb},
		})
	}
	return tl
}
