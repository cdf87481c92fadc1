package metrics

import (
	"math"

	"github.com/kinelab/kinelab/internal/timeline"
)

// Approach summarizes how close the two bodies get over a sampled timeline.
// It is the reportable counterpart of crossing detection for scenarios
// where the bodies never meet.
type Approach struct {
	MinSeparation float64
	AtTime        float64
	ClosingSpeed  float64 // relative speed at the closest sample, m/s
}

// Summarize scans the timeline for the sample with the smallest |xA - xB|.
// An empty timeline yields a zero Approach.
func Summarize(tl timeline.Timeline) Approach {
	if len(tl.Frames) == 0 {
		return Approach{}
	}

	best := tl.Frames[0]
	bestSep := math.Abs(best.A.X - best.B.X)
	for _, f := range tl.Frames[1:] {
		sep := math.Abs(f.A.X - f.B.X)
		if sep < bestSep {
			best, bestSep = f, sep
		}
	}
	return Approach{
		MinSeparation: bestSep,
		AtTime:        best.T,
		ClosingSpeed:  math.Abs(best.A.V - best.B.V),
	}
}

// MeanSeparation returns the average |xA - xB| across all samples.
func MeanSeparation(tl timeline.Timeline) float64 {
	if len(tl.Frames) == 0 {
		return 0
	}
	total := 0.0
	for _, f := range tl.Frames {
		total += math.Abs(f.A.X - f.B.X)
	}
	return total / float64(len(tl.Frames))
}
