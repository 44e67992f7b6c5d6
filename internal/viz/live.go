package viz

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/neoaces/arm/internal/control"
	"github.com/neoaces/arm/internal/sim"
)

const (
	canvasCols      = 60
	canvasRows      = 20
	historyCapacity = 120

	currentStep   = 1
	lengthStep    = 0.01
	massStep      = 0.05
	timeScaleStep = 0.25
)

// Options tunes the live view.
type Options struct {
	// Ratio is the gear ratio given to links added with the A key.
	Ratio float32
	// VelocityRange is the full-scale |ω| of the chart and gauges.
	VelocityRange float64
	FPS           int
}

type snapshotMsg sim.Snapshot

func waitForSnapshot(loop *sim.Loop) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(<-loop.Snapshots())
	}
}

// Model is the Bubble Tea model of the live view.
type Model struct {
	engine *sim.Engine
	loop   *sim.Loop
	panel  *control.Panel
	paused *atomic.Bool
	opts   Options

	snap     sim.Snapshot
	canvas   *Canvas
	chart    *streamlinechart.Model
	history  []float64
	gauges   springField
	smoothed []float64
	styled   int
	width    int
	height   int
	err      error
	showHelp bool
	quitting bool
}

// NewModel wires the view to a running loop. paused is shared with the loop
// so the space key freezes the simulation itself, not only the drawing.
func NewModel(engine *sim.Engine, loop *sim.Loop, paused *atomic.Bool, opts Options) Model {
	if opts.VelocityRange <= 0 {
		opts.VelocityRange = 50
	}
	if opts.FPS <= 0 {
		opts.FPS = loop.Hz()
	}
	if opts.Ratio <= 0 {
		opts.Ratio = 32
	}

	chart := streamlinechart.New(canvasCols, 10,
		streamlinechart.WithYRange(-opts.VelocityRange, opts.VelocityRange),
	)

	return Model{
		engine:  engine,
		loop:    loop,
		panel:   engine.Panel(),
		paused:  paused,
		opts:    opts,
		snap:    engine.Snapshot(),
		canvas:  NewCanvas(canvasCols, canvasRows),
		chart:   &chart,
		history: make([]float64, 0, historyCapacity),
		gauges:  newSpringField(opts.FPS, 6, 1),
	}
}

func (m Model) Init() tea.Cmd {
	return waitForSnapshot(m.loop)
}

// Update handles input events and incoming snapshots.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		m.err = nil
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			m.panel.Update(func(s *control.Settings) { s.Current += currentStep })
		case "down", "j":
			m.panel.Update(func(s *control.Settings) { s.Current -= currentStep })
		case "right", "l":
			m.panel.Update(func(s *control.Settings) { s.Length += lengthStep })
		case "left", "h":
			m.panel.Update(func(s *control.Settings) { s.Length -= lengthStep })
		case "+", "=":
			m.panel.Update(func(s *control.Settings) { s.Mass += massStep })
		case "-", "_":
			m.panel.Update(func(s *control.Settings) { s.Mass -= massStep })
		case "]":
			m.panel.Update(func(s *control.Settings) { s.TimeScale += timeScaleStep })
		case "[":
			m.panel.Update(func(s *control.Settings) { s.TimeScale -= timeScaleStep })
		case "tab":
			m.selectNext()
		case "a":
			if err := m.engine.AddLink(m.opts.Ratio); err != nil {
				m.err = err
			}
			m.snap = m.engine.Snapshot()
		case "r":
			m.engine.Reset()
			m.history = m.history[:0]
			m.snap = m.engine.Snapshot()
		case " ":
			m.paused.Store(!m.paused.Load())
		case "t":
			NextTheme()
			m.styled = 0
		case "?":
			m.showHelp = !m.showHelp
		}
		m.draw()
		return m, nil

	case snapshotMsg:
		m.observe(sim.Snapshot(msg))
		return m, waitForSnapshot(m.loop)
	}

	return m, nil
}

// selectNext moves the panel to the next link and loads its current length
// and mass so the next frame does not overwrite them.
func (m *Model) selectNext() {
	n := len(m.snap.Couples)
	if n == 0 {
		return
	}
	m.panel.Update(func(s *control.Settings) {
		s.Link = (s.Link + 1) % n
		s.Length = m.snap.Couples[s.Link].Length
		s.Mass = m.snap.Couples[s.Link].Mass
	})
}

func (m *Model) observe(snap sim.Snapshot) {
	m.snap = snap
	if len(snap.Couples) == 0 {
		return
	}

	m.history = append(m.history, float64(snap.Couples[0].Velocity))
	if len(m.history) > historyCapacity {
		m.history = m.history[len(m.history)-historyCapacity:]
	}

	m.gauges.resize(len(snap.Couples))
	m.smoothed = make([]float64, len(snap.Couples))
	for i, c := range snap.Couples {
		m.smoothed[i] = m.gauges.step(i, float64(c.Velocity))
	}

	m.styleChart()
	for i, c := range snap.Couples {
		m.chart.PushDataSet(jointName(i), float64(c.Velocity))
	}
	m.chart.DrawAll()
	m.draw()
}

// styleChart assigns theme colors to any joints added since the last call.
func (m *Model) styleChart() {
	for ; m.styled < len(m.snap.Couples); m.styled++ {
		style := lipgloss.NewStyle().Foreground(CurrentTheme.LinkColor(m.styled))
		m.chart.SetDataSetStyles(jointName(m.styled), runes.ThinLineStyle, style)
	}
}

func jointName(i int) string { return fmt.Sprintf("joint%d", i) }

func (m *Model) resize() {
	cols := max(20, m.width-48)
	rows := max(8, m.height-16)
	m.canvas.Resize(cols, rows)
	m.chart.Resize(cols, 10)
	m.draw()
}

// draw renders the arm with the base at the canvas centre, scaled so the
// fully extended arm fits.
func (m *Model) draw() {
	m.canvas.Clear()
	if len(m.snap.Segments) == 0 {
		return
	}

	w, h := m.canvas.Dots()
	cx, cy := w/2, h/2

	var reach float64
	for _, s := range m.snap.Segments {
		reach += math.Hypot(float64(s.End.X-s.Start.X), float64(s.End.Y-s.Start.Y))
	}
	if reach == 0 {
		reach = 1
	}
	k := 0.9 * float64(min(cx, cy)) / reach
	base := m.snap.Segments[0].Start

	project := func(x, y float32) (int, int) {
		return cx + int(math.Round(float64(x-base.X)*k)), cy - int(math.Round(float64(y-base.Y)*k))
	}

	for i, s := range m.snap.Segments {
		x0, y0 := project(s.Start.X, s.Start.Y)
		x1, y1 := project(s.End.X, s.End.Y)
		m.canvas.DrawLine(x0, y0, x1, y1, i)
		m.canvas.DrawCircle(x0, y0, 2, i)
	}
	last := m.snap.Segments[len(m.snap.Segments)-1]
	ex, ey := project(last.End.X, last.End.Y)
	m.canvas.DrawCircle(ex, ey, 1, len(m.snap.Segments)-1)
}

func (m Model) View() string {
	if m.quitting {
		return "Simulation stopped.\n"
	}

	paint := func(ink int, s string) string {
		return lipgloss.NewStyle().Foreground(CurrentTheme.LinkColor(ink)).Render(s)
	}
	left := lipgloss.JoinVertical(lipgloss.Left,
		canvasStyle.Render(m.canvas.Render(paint)),
		chartStyle.Render(m.chart.View()),
	)

	view := lipgloss.JoinHorizontal(lipgloss.Top, left, panelStyle.Render(m.panelView()))
	if m.showHelp {
		view += "\n" + helpStyle.Render(helpText)
	} else {
		view += "\n" + helpStyle.Render("↑↓ current  ←→ length  +- mass  [] speed  tab link  a add  r reset  space pause  ? help  q quit")
	}
	return view
}

const helpText = `↑/↓ commanded current   ←/→ link length   +/- link mass
[/] time scale          tab select link    a add link
r reset to rest         space pause        t theme
q quit`

func (m Model) panelView() string {
	s := m.panel.Snapshot()
	lim := m.panel.Limits()

	var b strings.Builder
	status := "running"
	if m.paused.Load() {
		status = "paused"
	}
	fmt.Fprintf(&b, "%s  %s\n\n", titleStyle().Render("ARM SIM"), helpStyle.Render(status))

	b.WriteString(row("time", formatSI(m.snap.Time, "s")) + "\n")
	b.WriteString(row("current", formatSI(float64(s.Current), "A")) + "\n")
	b.WriteString(Gauge(float64(s.Current), float64(lim.Current.Max), 30) + "\n")
	b.WriteString(row("speed", fmt.Sprintf("%8.2f ×", s.TimeScale)) + "\n\n")

	for i, c := range m.snap.Couples {
		name := fmt.Sprintf("link %d", i)
		if i == s.Link {
			name = selectedStyle().Render("▶ " + name)
		} else {
			name = "  " + name
		}
		b.WriteString(name + "\n")
		b.WriteString(row("  θ", formatSI(float64(c.Angle), "rad")) + "\n")
		b.WriteString(row("  ω", formatSI(float64(c.Velocity), "rad/s")) + "\n")
		v := float64(c.Velocity)
		if i < len(m.smoothed) {
			v = m.smoothed[i]
		}
		b.WriteString("  " + Gauge(v, m.opts.VelocityRange, 28) + "\n")
		b.WriteString(row("  l / m", fmt.Sprintf("%.2f m / %.2f kg", c.Length, c.Mass)) + "\n")
	}

	if len(m.history) > 1 {
		b.WriteString("\n" + asciigraph.Plot(m.history,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("base ω"),
		) + "\n")
	}

	if m.err != nil {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(CurrentTheme.Error).Render(m.err.Error()) + "\n")
	}
	return b.String()
}
