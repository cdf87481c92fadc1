package explain

import (
	"context"
	"fmt"
	"strings"

	"github.com/kinelab/kinelab/internal/motion"
	"github.com/kinelab/kinelab/internal/timeline"
)

// Descriptor is the narrow body description handed to an explanation
// backend: the mode plus the constant-motion parameters. Custom graphs are
// summarized as a mode, never serialized point by point.
type Descriptor struct {
	Name string
	Mode string
	X0   float64
	V0   float64
	A    float64
}

// Describe reduces a body to its descriptor.
func Describe(b motion.Body) Descriptor {
	return Descriptor{Name: b.Name, Mode: b.Mode(), X0: b.X0, V0: b.V0, A: b.A}
}

// Request carries everything an explanation backend needs: both body
// descriptors and the crossing result (nil when the bodies never meet).
type Request struct {
	BodyA    Descriptor
	BodyB    Descriptor
	Crossing *timeline.Crossing
	Horizon  float64
}

// NewRequest assembles a request from the engine's outputs.
func NewRequest(a, b motion.Body, snap *timeline.Snapshot) Request {
	return Request{
		BodyA:    Describe(a),
		BodyB:    Describe(b),
		Crossing: snap.Crossing,
		Horizon:  snap.Timeline.Horizon,
	}
}

// Explainer produces a natural-language account of a simulation outcome.
// Implementations may call out to a hosted service; the engine only ever
// consumes this interface.
type Explainer interface {
	Explain(ctx context.Context, req Request) (string, error)
}

// Notify dispatches the request fire-and-forget: the result is delivered to
// sink if the backend succeeds, and failures are swallowed. There are no
// retries. A nil sink discards the text.
func Notify(ctx context.Context, e Explainer, req Request, sink func(string)) {
	go func() {
		text, err := e.Explain(ctx, req)
		if err != nil || sink == nil {
			return
		}
		sink(text)
	}()
}

// TemplateExplainer is the offline backend: it renders a plain-language
// summary locally. The CLI uses it so runs are explainable without any
// hosted service configured.
type TemplateExplainer struct{}

func (TemplateExplainer) Explain(_ context.Context, req Request) (string, error) {
	var b strings.Builder

	b.WriteString(describeLine(req.BodyA))
	b.WriteString(" ")
	b.WriteString(describeLine(req.BodyB))
	b.WriteString(" ")

	if req.Crossing != nil {
		fmt.Fprintf(&b, "They meet %.1f seconds in, %.1f meters from the origin.",
			req.Crossing.T, req.Crossing.X)
	} else {
		fmt.Fprintf(&b, "They never meet within the %.0f-second window.", req.Horizon)
	}
	return b.String(), nil
}

func describeLine(d Descriptor) string {
	name := d.Name
	if name == "" {
		name = "a body"
	}
	if d.Mode == "graph" {
		return fmt.Sprintf("%s follows a custom velocity graph from x=%.1f m.", name, d.X0)
	}
	if d.A != 0 {
		return fmt.Sprintf("%s starts at x=%.1f m moving at %.1f m/s while accelerating at %.1f m/s².",
			name, d.X0, d.V0, d.A)
	}
	return fmt.Sprintf("%s starts at x=%.1f m moving at a steady %.1f m/s.", name, d.X0, d.V0)
}
