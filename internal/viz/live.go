package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/mechlab/internal/experiment"
	"github.com/san-kum/mechlab/internal/mechanics"
	"github.com/san-kum/mechlab/internal/sim"
)

const (
	canvasWidth     = 60
	canvasHeight    = 22
	historyCapacity = 600
	trailCapacity   = 120
)

var canvasStyle = lipgloss.NewStyle().Padding(1, 2)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Live animates one experiment at 60 Hz, advancing it by dt per frame.
type Live struct {
	exp           experiment.Experiment
	dt, maxDt     float64
	speed         float64
	t             float64
	running       bool
	showHelp      bool
	theme         Theme
	canvas        *Canvas
	view          *Viewport
	trail         []mechanics.Vec2
	energyHistory []float64
	err           error
}

func NewLive(exp experiment.Experiment, dt, maxDt float64) Live {
	m := Live{
		exp:           exp,
		dt:            dt,
		maxDt:         maxDt,
		speed:         1,
		running:       true,
		theme:         ThemeChalkboard,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		trail:         make([]mechanics.Vec2, 0, trailCapacity),
		energyHistory: make([]float64, 0, historyCapacity),
	}
	m.view = layout(m.canvas, exp)
	m.recordEnergy()
	return m
}

// Snapshot draws the current state of exp the way the live view would.
func Snapshot(exp experiment.Experiment) *Canvas {
	m := NewLive(exp, 0, 0)
	m.draw()
	return m.canvas
}

func (m Live) Init() tea.Cmd { return tick() }

func (m Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "t":
			m.theme = m.theme.Next()
		case "+", "=":
			m.speed = math.Min(m.speed*2, 4)
		case "-", "_":
			m.speed = math.Max(m.speed/2, 0.25)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

// step advances the experiment by one frame, split so no single
// integration step exceeds maxDt.
func (m *Live) step() {
	if m.exp.Done() {
		return
	}
	frame := m.dt * m.speed
	n, h := sim.SplitStep(frame, m.maxDt)
	for i := 0; i < n; i++ {
		m.exp.Step(h)
	}
	m.t += frame
	m.recordEnergy()
	if p, ok := focus(m.exp); ok {
		m.trail = append(m.trail, p)
		if len(m.trail) > trailCapacity {
			m.trail = m.trail[1:]
		}
	}
}

func (m *Live) recordEnergy() {
	e, ok := m.exp.(experiment.Energetic)
	if !ok {
		return
	}
	m.energyHistory = append(m.energyHistory, e.Energy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Live) reset() {
	m.err = m.exp.Reset()
	m.t = 0
	m.trail = m.trail[:0]
	m.energyHistory = m.energyHistory[:0]
	m.view = layout(m.canvas, m.exp)
	m.recordEnergy()
}

// Time is the simulated time shown in the panel.
func (m Live) Time() float64 { return m.t }

func (m Live) Running() bool { return m.running }

func (m Live) View() string {
	st := m.theme.Styles()
	m.draw()

	var s strings.Builder
	s.WriteString(st.Title.Render(strings.ToUpper(Title(m.exp.Name()))) + "\n")

	status := st.Running.Render("RUNNING")
	switch {
	case m.exp.Done():
		status = st.Good.Render("DONE")
	case !m.running:
		status = st.Paused.Render("PAUSED")
	}
	s.WriteString(fmt.Sprintf("%s  %s\n\n", status, st.Unit.Render(fmt.Sprintf("x%.2g", m.speed))))

	if m.err != nil {
		s.WriteString(st.Warn.Render(m.err.Error()) + "\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(st.Graph.Render(chart) + "\n\n")
	}

	s.WriteString(st.Label.Render("Time") + st.Value.Render(fmt.Sprintf("%.2f", m.t)) + " " + st.Unit.Render("s") + "\n")
	s.WriteString(readingLines(st, m.exp.Readings()))
	s.WriteString(st.Hint.Render("\nSPACE pause  R reset  T theme  +/- speed  ? help  Q quit"))

	panel := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(m.theme.Muted).
		Padding(1, 2).
		Render(s.String())
	scene := canvasStyle.Foreground(m.theme.Primary).Render(m.canvas.String())
	main := lipgloss.JoinHorizontal(lipgloss.Top, scene, panel)

	if m.showHelp {
		return helpText + "\n\n" + main
	}
	return main
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Reset experiment         ║
║  T        - Cycle themes             ║
║  + / -    - Double / halve speed     ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// focus is the point whose path is traced on screen.
func focus(exp experiment.Experiment) (mechanics.Vec2, bool) {
	switch e := exp.(type) {
	case *experiment.Projectile:
		return e.Motion().PositionAt(e.Time()), true
	case *experiment.Pendulum:
		return e.Pendulum().BobPosition(e.Pivot()), true
	case *experiment.Spring:
		return e.Bob().Position(), true
	}
	return mechanics.Vec2{}, false
}

// layout picks world bounds that keep the whole experiment in view.
func layout(c *Canvas, exp experiment.Experiment) *Viewport {
	switch e := exp.(type) {
	case *experiment.Projectile:
		p := e.Motion()
		return Fit(c, -0.5, -0.5, math.Max(p.Range(), 1)*1.05, math.Max(p.MaxHeight(), 1)*1.1, false)
	case *experiment.Pendulum:
		pivot, l := e.Pivot(), e.Pendulum().Length()
		return Fit(c, pivot.X-1.2*l, pivot.Y-0.2*l, pivot.X+1.2*l, pivot.Y+1.2*l, true)
	case *experiment.Collision:
		balls := e.Balls()
		first := balls[0].Body.Position()
		minX, maxX, minY, maxY := first.X, first.X, first.Y, first.Y
		for _, b := range balls {
			p := b.Body.Position()
			minX, maxX = math.Min(minX, p.X-b.Radius), math.Max(maxX, p.X+b.Radius)
			minY, maxY = math.Min(minY, p.Y-b.Radius), math.Max(maxY, p.Y+b.Radius)
		}
		return Fit(c, minX-1, minY-1, maxX+1, maxY+1, false)
	case *experiment.Spring:
		a, b := e.Anchor().Position(), e.Bob().Position()
		reach := math.Max(a.Sub(b).Len(), e.Spring().RestLength()) * 2
		reach = math.Max(reach, 1)
		return Fit(c, a.X-reach, a.Y-reach, a.X+reach, a.Y+reach, false)
	}
	return Fit(c, 0, 0, 4, 3, false)
}

func (m *Live) draw() {
	m.canvas.Clear()
	switch e := m.exp.(type) {
	case *experiment.Projectile:
		m.drawProjectile(e)
	case *experiment.Pendulum:
		m.drawPendulum(e)
	case *experiment.Collision:
		m.drawCollision(e)
	case *experiment.Spring:
		m.drawSpring(e)
	case *experiment.Incline:
		m.drawIncline(e)
	}
}

func (m *Live) drawTrail() {
	for _, p := range m.trail {
		x, y := m.view.ToScreen(p)
		m.canvas.Set(x, y)
	}
}

func (m *Live) drawProjectile(e *experiment.Projectile) {
	p := e.Motion()
	x0, y0 := m.view.ToScreen(mechanics.Vec2{X: m.view.MinX})
	x1, _ := m.view.ToScreen(mechanics.Vec2{X: m.view.MaxX})
	m.canvas.DrawLine(x0, y0, x1, y0)

	for i, pt := range p.Trajectory(80) {
		if i%2 == 0 {
			x, y := m.view.ToScreen(pt)
			m.canvas.Set(x, y)
		}
	}
	m.drawTrail()
	x, y := m.view.ToScreen(p.PositionAt(e.Time()))
	m.canvas.FillCircle(x, y, 2)
}

func (m *Live) drawPendulum(e *experiment.Pendulum) {
	pivot := e.Pivot()
	bob := e.Pendulum().BobPosition(pivot)
	m.drawTrail()
	px, py := m.view.ToScreen(pivot)
	bx, by := m.view.ToScreen(bob)
	m.canvas.DrawLine(px-4, py, px+4, py)
	m.canvas.DrawLine(px, py, bx, by)
	m.canvas.FillCircle(bx, by, 2)
}

func (m *Live) drawCollision(e *experiment.Collision) {
	for _, b := range e.Balls() {
		x, y := m.view.ToScreen(b.Body.Position())
		r := max(m.view.Length(b.Radius), 1)
		if b.Body.Fixed() {
			m.canvas.FillCircle(x, y, r)
		} else {
			m.canvas.DrawCircle(x, y, r)
		}
	}
}

func (m *Live) drawSpring(e *experiment.Spring) {
	a, b := e.Anchor().Position(), e.Bob().Position()
	m.drawTrail()
	for _, seg := range zigzag(a, b, 12, 0.1) {
		x0, y0 := m.view.ToScreen(seg[0])
		x1, y1 := m.view.ToScreen(seg[1])
		m.canvas.DrawLine(x0, y0, x1, y1)
	}
	ax, ay := m.view.ToScreen(a)
	m.canvas.FillCircle(ax, ay, 1)
	bx, by := m.view.ToScreen(b)
	m.canvas.FillCircle(bx, by, 3)
}

// zigzag returns the segments of a coil from a to b with n teeth of the
// given half-width in metres.
func zigzag(a, b mechanics.Vec2, n int, width float64) [][2]mechanics.Vec2 {
	axis := b.Sub(a)
	if axis.Len() == 0 {
		return nil
	}
	normal := mechanics.Vec2{X: -axis.Y, Y: axis.X}.Normalize().Scale(width)
	pts := make([]mechanics.Vec2, 0, n+2)
	pts = append(pts, a)
	for i := 1; i <= n; i++ {
		p := a.Add(axis.Scale((float64(i) - 0.5) / float64(n)))
		if i%2 == 0 {
			p = p.Sub(normal)
		} else {
			p = p.Add(normal)
		}
		pts = append(pts, p)
	}
	pts = append(pts, b)

	segs := make([][2]mechanics.Vec2, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		segs = append(segs, [2]mechanics.Vec2{pts[i-1], pts[i]})
	}
	return segs
}

func (m *Live) drawIncline(e *experiment.Incline) {
	theta := e.Incline().AngleDegrees() * math.Pi / 180
	base := 3.0
	rise := math.Min(base*math.Tan(theta), 2.5)

	foot := mechanics.Vec2{X: 0.5, Y: 0.3}
	corner := mechanics.Vec2{X: 0.5 + base, Y: 0.3}
	top := mechanics.Vec2{X: 0.5 + base, Y: 0.3 + rise}

	for _, seg := range [][2]mechanics.Vec2{{foot, corner}, {corner, top}, {top, foot}} {
		x0, y0 := m.view.ToScreen(seg[0])
		x1, y1 := m.view.ToScreen(seg[1])
		m.canvas.DrawLine(x0, y0, x1, y1)
	}

	slope := top.Sub(foot).Normalize()
	normal := mechanics.Vec2{X: -slope.Y, Y: slope.X}
	block := foot.Add(top.Sub(foot).Scale(0.6)).Add(normal.Scale(0.2))
	x, y := m.view.ToScreen(block)
	m.canvas.FillCircle(x, y, 3)
}
