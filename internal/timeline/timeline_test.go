package timeline

import (
	"math"
	"reflect"
	"testing"

	"github.com/kinelab/kinelab/internal/motion"
)

func TestSampleGridLength(t *testing.T) {
	a := motion.Body{V0: 1}
	b := motion.Body{X0: 5}

	tests := []struct {
		name          string
		step, horizon float64
		frames        int
		lastT         float64
	}{
		{"defaults", 0.1, 20.0, 201, 20.0},
		{"coarse", 0.5, 10.0, 21, 10.0},
		{"horizon off grid", 0.1, 1.05, 11, 1.0},
		{"single step", 1.0, 1.0, 2, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := Sample(a, b, tt.step, tt.horizon)
			if len(tl.Frames) != tt.frames {
				t.Fatalf("expected %d frames, got %d", tt.frames, len(tl.Frames))
			}
			last := tl.Frames[len(tl.Frames)-1].T
			if math.Abs(last-tt.lastT) > 1e-9 {
				t.Errorf("last grid time = %v, want %v", last, tt.lastT)
			}
			if tl.Frames[0].T != 0 {
				t.Errorf("first grid time = %v, want 0", tl.Frames[0].T)
			}
		})
	}
}

func TestSampleDefaultsApplied(t *testing.T) {
	tl := Sample(motion.Body{}, motion.Body{}, 0, 0)
	if tl.Step != DefaultStep || tl.Horizon != DefaultHorizon {
		t.Errorf("got step=%v horizon=%v, want defaults", tl.Step, tl.Horizon)
	}
}

func TestSampleDeterministic(t *testing.T) {
	a := motion.Body{X0: 0, V0: 5}
	b := motion.Body{
		UsesGraph: true,
		Graph:     motion.VelocityGraph{{T: 0, V: 0}, {T: 10, V: 10}, {T: 20, V: 0}},
	}

	first := Sample(a, b, 0.1, 20)
	second := Sample(a, b, 0.1, 20)

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different timelines")
	}
}

func TestSampleMatchesEvaluate(t *testing.T) {
	a := motion.Body{X0: 1, V0: 2, A: 0.5}
	b := motion.Body{X0: 9, V0: -1}

	tl := Sample(a, b, 0.25, 5)
	for _, f := range tl.Frames {
		xa, va := motion.Evaluate(a, f.T)
		if f.A.X != xa || f.A.V != va {
			t.Fatalf("t=%v: frame A (%v,%v) != evaluate (%v,%v)", f.T, f.A.X, f.A.V, xa, va)
		}
		xb, vb := motion.Evaluate(b, f.T)
		if f.B.X != xb || f.B.V != vb {
			t.Fatalf("t=%v: frame B (%v,%v) != evaluate (%v,%v)", f.T, f.B.X, f.B.V, xb, vb)
		}
	}
}

func TestDetectCrossingChase(t *testing.T) {
	a := motion.Body{X0: 0, V0: 5}
	b := motion.Body{X0: 50, V0: -2}

	tl := Sample(a, b, 0.1, 20)
	c, ok := DetectCrossing(tl)
	if !ok {
		t.Fatal("expected a crossing")
	}

	// Analytic crossing at t = 50/7, x = 250/7. Detection is grid-bound,
	// so the reported time is within one step.
	analyticT := 50.0 / 7.0
	if math.Abs(c.T-analyticT) > 0.1+1e-9 {
		t.Errorf("crossing t = %v, want within 0.1 of %v", c.T, analyticT)
	}
	if math.Abs(c.X-250.0/7.0) > 1.0 {
		t.Errorf("crossing x = %v, want near %v", c.X, 250.0/7.0)
	}
}

func TestDetectCrossingNone(t *testing.T) {
	a := motion.Body{X0: 0, V0: 5}
	b := motion.Body{X0: 100, V0: 10}

	tl := Sample(a, b, 0.1, 20)
	if _, ok := DetectCrossing(tl); ok {
		t.Error("diverging bodies should not cross")
	}
}

func TestDetectCrossingOnGridPoint(t *testing.T) {
	// Positions are equal exactly at t=5, a grid point. Equality on
	// arrival counts as crossed, so it is reported at that grid point.
	a := motion.Body{X0: 0, V0: 1}
	b := motion.Body{X0: 5, V0: 0}

	tl := Sample(a, b, 1.0, 10)
	c, ok := DetectCrossing(tl)
	if !ok {
		t.Fatal("expected a crossing")
	}
	if c.T != 5.0 {
		t.Errorf("crossing t = %v, want 5.0", c.T)
	}
	if c.X != 5.0 {
		t.Errorf("crossing x = %v, want 5.0", c.X)
	}
}

func TestDetectCrossingFirstOnly(t *testing.T) {
	// A oscillates around B via a triangle velocity graph: crosses up,
	// then back down. Only the first crossing is reported.
	a := motion.Body{
		X0:        0,
		UsesGraph: true,
		Graph:     motion.VelocityGraph{{T: 0, V: 2}, {T: 10, V: -2}, {T: 20, V: -2}},
	}
	b := motion.Body{X0: 1, V0: 0}

	tl := Sample(a, b, 0.1, 20)
	c, ok := DetectCrossing(tl)
	if !ok {
		t.Fatal("expected a crossing")
	}
	if c.T > 2.0 {
		t.Errorf("crossing t = %v, want the early upward crossing", c.T)
	}
}

func TestBuildSnapshot(t *testing.T) {
	a := motion.Body{X0: 0, V0: 5}
	b := motion.Body{X0: 50, V0: -2}

	snap := Build(a, b, 0.1, 20)
	if snap.Crossing == nil {
		t.Fatal("expected crossing in snapshot")
	}
	if len(snap.Timeline.Frames) != 201 {
		t.Errorf("expected 201 frames, got %d", len(snap.Timeline.Frames))
	}

	none := Build(a, motion.Body{X0: 100, V0: 10}, 0.1, 20)
	if none.Crossing != nil {
		t.Error("expected no crossing in snapshot")
	}
}
