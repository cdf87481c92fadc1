package viz

import (
	"math"

	"github.com/kinelab/kinelab/internal/timeline"
)

// Plot renders both bodies' position-over-time curves onto a braille
// canvas, with an x mark at the crossing and a vertical line at the scrub
// cursor. Pass cursor < 0 to omit the cursor line.
type Plot struct {
	Canvas *Canvas
	xMin   float64
	xMax   float64
	tMax   float64
}

// NewPlot sizes the vertical axis to fit every sampled position with a
// small margin.
func NewPlot(w, h int, tl timeline.Timeline) *Plot {
	xMin, xMax := math.Inf(1), math.Inf(-1)
	for _, f := range tl.Frames {
		xMin = math.Min(xMin, math.Min(f.A.X, f.B.X))
		xMax = math.Max(xMax, math.Max(f.A.X, f.B.X))
	}
	if len(tl.Frames) == 0 {
		xMin, xMax = 0, 1
	}
	if xMax-xMin < 1e-9 {
		xMax = xMin + 1
	}
	margin := (xMax - xMin) * 0.05
	return &Plot{
		Canvas: NewCanvas(w, h),
		xMin:   xMin - margin,
		xMax:   xMax + margin,
		tMax:   tl.Horizon,
	}
}

// dot maps a (time, position) pair into dot coordinates.
func (p *Plot) dot(t, x float64) (int, int) {
	w, h := p.Canvas.DotWidth(), p.Canvas.DotHeight()
	dx := int(t / p.tMax * float64(w-1))
	dy := int((p.xMax - x) / (p.xMax - p.xMin) * float64(h-1))
	return dx, dy
}

// DrawTimeline traces both position curves.
func (p *Plot) DrawTimeline(tl timeline.Timeline) {
	var prevA, prevB [2]int
	for i, f := range tl.Frames {
		ax, ay := p.dot(f.T, f.A.X)
		bx, by := p.dot(f.T, f.B.X)
		if i > 0 {
			p.Canvas.DrawLine(prevA[0], prevA[1], ax, ay)
			p.Canvas.DrawLine(prevB[0], prevB[1], bx, by)
		}
		prevA = [2]int{ax, ay}
		prevB = [2]int{bx, by}
	}
}

// DrawCrossing marks the meeting point with a small x.
func (p *Plot) DrawCrossing(c *timeline.Crossing) {
	if c == nil {
		return
	}
	cx, cy := p.dot(c.T, c.X)
	for d := -2; d <= 2; d++ {
		p.Canvas.Set(cx+d, cy+d)
		p.Canvas.Set(cx+d, cy-d)
	}
}

// DrawCursor draws the scrub cursor as a vertical line at time t.
func (p *Plot) DrawCursor(t float64) {
	if t < 0 {
		return
	}
	cx, _ := p.dot(t, 0)
	for y := 0; y < p.Canvas.DotHeight(); y += 2 {
		p.Canvas.Set(cx, y)
	}
}

// Render draws everything and returns the canvas text.
func Render(w, h int, tl timeline.Timeline, c *timeline.Crossing, cursor float64) string {
	p := NewPlot(w, h, tl)
	p.DrawTimeline(tl)
	p.DrawCrossing(c)
	p.DrawCursor(cursor)
	return p.Canvas.String()
}
