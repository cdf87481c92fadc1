package sim

import (
	"math"
	"testing"

	"github.com/kinelab/kinelab/internal/motion"
	"github.com/kinelab/kinelab/internal/timeline"
)

func TestNewBuildsSnapshot(t *testing.T) {
	s := New(motion.Body{V0: 5}, motion.Body{X0: 50, V0: -2}, 0.1, 20)

	snap := s.Snapshot()
	if snap == nil || len(snap.Timeline.Frames) == 0 {
		t.Fatal("expected a populated snapshot")
	}
	if snap.Crossing == nil {
		t.Error("expected a crossing for converging bodies")
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	s := New(motion.Body{}, motion.Body{}, 0, 0)
	if s.Step() != timeline.DefaultStep || s.Horizon() != timeline.DefaultHorizon {
		t.Errorf("got step=%v horizon=%v, want defaults", s.Step(), s.Horizon())
	}
}

func TestSetBodiesSwapsSnapshotWholesale(t *testing.T) {
	s := New(motion.Body{V0: 5}, motion.Body{X0: 50, V0: -2}, 0.1, 20)
	old := s.Snapshot()

	s.SetBodies(motion.Body{V0: 5}, motion.Body{X0: 100, V0: 10})
	fresh := s.Snapshot()

	if fresh == old {
		t.Fatal("snapshot must be replaced, not patched")
	}
	if fresh.Crossing != nil {
		t.Error("diverging bodies should have no crossing")
	}

	// The old snapshot is untouched: readers holding it still see the
	// consistent pair it was built with.
	if old.Crossing == nil {
		t.Error("previous snapshot was mutated")
	}
}

func TestSetBodiesLeavesCursorAlone(t *testing.T) {
	s := New(motion.Body{V0: 5}, motion.Body{X0: 50, V0: -2}, 0.1, 20)

	s.Clock().Play()
	for i := 0; i < 7; i++ {
		s.Clock().Tick()
	}
	before := s.Clock().CurrentTime()

	s.SetBodies(motion.Body{V0: 1}, motion.Body{X0: 3})
	if s.Clock().CurrentTime() != before {
		t.Error("body change must not move the scrub cursor")
	}
	if s.Clock().Status().String() != "playing" {
		t.Error("body change must not pause playback")
	}
}

func TestAtMatchesEvaluateOffGrid(t *testing.T) {
	bodyA := motion.Body{X0: 1, V0: 2, A: 0.5}
	bodyB := motion.Body{
		UsesGraph: true,
		Graph:     motion.VelocityGraph{{T: 0, V: 0}, {T: 10, V: 10}, {T: 20, V: 0}},
	}
	s := New(bodyA, bodyB, 0.1, 20)

	// 7.123 is not on the 0.1 grid.
	const tq = 7.123
	a, b := s.At(tq)

	xa, va := motion.Evaluate(bodyA, tq)
	xb, vb := motion.Evaluate(bodyB, tq)
	if a.X != xa || a.V != va || b.X != xb || b.V != vb {
		t.Error("At must defer to Evaluate for arbitrary times")
	}
}

func TestCurrentTracksCursor(t *testing.T) {
	s := New(motion.Body{V0: 3}, motion.Body{X0: 10}, 0.1, 20)
	s.Clock().Seek(4)

	a, _ := s.Current()
	if math.Abs(a.X-12) > 1e-12 {
		t.Errorf("a.X = %v, want 12", a.X)
	}
}
