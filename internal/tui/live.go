package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/kinelab/kinelab/internal/config"
	"github.com/kinelab/kinelab/internal/editor"
	"github.com/kinelab/kinelab/internal/explain"
	"github.com/kinelab/kinelab/internal/motion"
	"github.com/kinelab/kinelab/internal/playback"
	"github.com/kinelab/kinelab/internal/sim"
	"github.com/kinelab/kinelab/internal/viz"
)

const (
	canvasW       = 70
	canvasH       = 18
	frameInterval = time.Second / 30
	seekStride    = 0.5
	pickStrideT   = 0.5
	pickStrideV   = 0.5
)

// TickMsg is one scheduler tick. It carries the clock generation observed
// when the tick was armed; Update drops ticks whose generation went stale,
// so pausing or resetting deterministically cancels pending callbacks.
type TickMsg struct {
	Gen uint64
}

// explainedMsg delivers the fire-and-forget explanation text.
type explainedMsg string

// Model is the live playback screen: scrub the two bodies, edit body A's
// velocity graph, and watch the crossing marker move as inputs change.
type Model struct {
	session   *sim.Session
	editor    *editor.Editor
	explainer explain.Explainer

	editing  bool
	pickT    float64
	pickV    float64
	showHelp bool

	explanation string
}

// NewModel builds the screen from a scenario config.
func NewModel(cfg *config.Config) Model {
	a, b := cfg.Bodies()
	s := sim.New(a, b, cfg.Step, cfg.Horizon)
	s.Clock().SetIncrement(cfg.Increment)

	return Model{
		session:   s,
		editor:    editor.New(cfg.Horizon, cfg.VMin, cfg.VMax),
		explainer: explain.TemplateExplainer{},
		pickT:     cfg.Horizon / 2,
	}
}

func tickCmd(gen uint64) tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return TickMsg{Gen: gen} })
}

func (m Model) explainCmd() tea.Cmd {
	a, b := m.session.Bodies()
	req := explain.NewRequest(a, b, m.session.Snapshot())
	return func() tea.Msg {
		text, err := m.explainer.Explain(context.Background(), req)
		if err != nil {
			// Fire-and-forget: failures are swallowed, not surfaced.
			return nil
		}
		return explainedMsg(text)
	}
}

func (m Model) Init() tea.Cmd { return nil }

// Update handles key input and scheduler ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	clock := m.session.Clock()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			if handled, cmd := m.updateEditor(msg); handled {
				return m, cmd
			}
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if clock.Status() == playback.Playing {
				clock.Pause()
				return m, nil
			}
			clock.Play()
			if clock.Status() == playback.Playing {
				return m, tickCmd(clock.Gen())
			}
		case "r":
			clock.Reset()
		case "left":
			clock.Seek(clock.CurrentTime() - seekStride)
		case "right":
			clock.Seek(clock.CurrentTime() + seekStride)
		case "0":
			clock.Seek(0)
		case "e":
			m.editing = !m.editing
		case "a":
			return m, m.explainCmd()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if msg.Gen != clock.Gen() {
			// Stale tick from before a pause/reset: drop it without
			// touching the cursor, and do not re-arm.
			return m, nil
		}
		if clock.Tick() {
			return m, tickCmd(clock.Gen())
		}
	case explainedMsg:
		m.explanation = string(msg)
	}
	return m, nil
}

// updateEditor handles the graph-editing submode keys. It reports whether
// the key was consumed.
func (m *Model) updateEditor(msg tea.KeyMsg) (bool, tea.Cmd) {
	vMin, vMax := m.editor.Bounds()
	switch msg.String() {
	case "h":
		m.pickT = clampF(m.pickT-pickStrideT, 0, m.editor.Horizon())
	case "l":
		m.pickT = clampF(m.pickT+pickStrideT, 0, m.editor.Horizon())
	case "k":
		m.pickV = clampF(m.pickV+pickStrideV, vMin, vMax)
	case "j":
		m.pickV = clampF(m.pickV-pickStrideV, vMin, vMax)
	case "enter":
		m.editor.Pick(m.pickT, m.pickV)
	case "x":
		m.editor.Reset()
	case "c":
		a, b := m.session.Bodies()
		m.editor.Apply(&a)
		m.session.SetBodies(a, b)
	case "esc":
		m.editing = false
	default:
		return false, nil
	}
	return true, nil
}

// View renders the trajectory canvas next to a stats panel.
func (m Model) View() string {
	snap := m.session.Snapshot()
	clock := m.session.Clock()

	canvas := viz.Render(canvasW, canvasH, snap.Timeline, snap.Crossing, clock.CurrentTime())

	var s strings.Builder
	s.WriteString(viz.HeaderStyle.Render("KINELAB") + "\n")
	s.WriteString(strings.ToUpper(clock.Status().String()))
	if m.editing {
		s.WriteString("  " + viz.AccentStyle.Render("EDIT"))
	}
	s.WriteString("\n\n")

	stateA, stateB := m.session.Current()
	a, b := m.session.Bodies()
	s.WriteString(viz.LabelStyle.Render("Time") + viz.ValueStyle.Render(fmt.Sprintf("%.2fs / %.0fs", clock.CurrentTime(), clock.Horizon())) + "\n")
	s.WriteString(viz.LabelStyle.Render(bodyLabel(a.Name, "A")) + viz.ValueStyle.Render(fmt.Sprintf("x=%7.2f v=%6.2f", stateA.X, stateA.V)) + "\n")
	s.WriteString(viz.LabelStyle.Render(bodyLabel(b.Name, "B")) + viz.ValueStyle.Render(fmt.Sprintf("x=%7.2f v=%6.2f", stateB.X, stateB.V)) + "\n")

	if snap.Crossing != nil {
		s.WriteString(viz.LabelStyle.Render("Meeting") + viz.AccentStyle.Render(fmt.Sprintf("t=%.2fs x=%.2fm", snap.Crossing.T, snap.Crossing.X)) + "\n")
	} else {
		s.WriteString(viz.LabelStyle.Render("Meeting") + viz.ValueStyle.Render("none in window") + "\n")
	}

	if m.editing {
		s.WriteString("\n" + viz.AccentStyle.Render("VELOCITY GRAPH (body A)") + "\n")
		s.WriteString(fmt.Sprintf("pick (t=%.1f, v=%.1f)\n", m.pickT, m.pickV))
		s.WriteString(viz.GraphStyle.Render(m.velocityChart()) + "\n")
	}

	if m.explanation != "" {
		s.WriteString("\n" + wordWrap(m.explanation, 38) + "\n")
	}

	s.WriteString(viz.HelpStyle.Render(m.helpLine()))

	panel := viz.PanelStyle.Render(s.String())
	main := lipgloss.JoinHorizontal(lipgloss.Top, viz.CanvasStyle.Render(canvas), panel)
	if m.showHelp {
		return m.helpScreen() + "\n" + main
	}
	return main
}

// velocityChart plots the editor's authored velocity function.
func (m Model) velocityChart() string {
	body := motion.Body{UsesGraph: true, Graph: m.editor.Points()}

	const samples = 40
	series := make([]float64, samples)
	for i := range series {
		t := float64(i) / float64(samples-1) * m.editor.Horizon()
		_, v := motion.Evaluate(body, t)
		series[i] = v
	}
	return asciigraph.Plot(series, asciigraph.Height(4), asciigraph.Width(34))
}

func (m Model) helpLine() string {
	if m.editing {
		return "\nhjkl:move enter:pick c:commit x:clear esc:done"
	}
	return "\nSP:play/pause R:reset ←→:seek E:edit A:explain Q:quit"
}

func (m Model) helpScreen() string {
	return viz.PanelStyle.Render(strings.Join([]string{
		"space  play / pause",
		"r      reset to t=0",
		"← →    seek by " + fmt.Sprintf("%.1fs", seekStride),
		"e      toggle graph editor (body A)",
		"hjkl   move the pick cursor",
		"enter  insert or remove a point",
		"c      commit graph to body A",
		"x      clear graph to endpoints",
		"a      ask for an explanation",
		"q      quit",
	}, "\n"))
}

func bodyLabel(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

func clampF(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func wordWrap(s string, width int) string {
	words := strings.Fields(s)
	var b strings.Builder
	line := 0
	for i, w := range words {
		if line+len(w) > width && line > 0 {
			b.WriteByte('\n')
			line = 0
		} else if i > 0 {
			b.WriteByte(' ')
			line++
		}
		b.WriteString(w)
		line += len(w)
	}
	return b.String()
}

// Run launches the live screen.
func Run(cfg *config.Config) error {
	p := tea.NewProgram(NewModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
