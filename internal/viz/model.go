package viz

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/san-kum/wheelspin/internal/clock"
	"github.com/san-kum/wheelspin/internal/engine"
	"github.com/san-kum/wheelspin/internal/selection"
	"github.com/san-kum/wheelspin/internal/wheel"
)

const (
	canvasWidth  = 40
	canvasHeight = 20

	// cellPixels approximates the width of one terminal cell, so drag
	// speeds land in the same px/ms range as a browser pointer.
	cellPixels = 8

	flickVelocity = 3.0
)

type TickMsg time.Time

func tick(rate int) tea.Cmd {
	return tea.Tick(clock.Period(rate), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// display is the engine's renderer. Callbacks arrive synchronously from
// Update, on the program goroutine.
type display struct {
	degrees  float64
	dragging bool
	window   *selection.Window
	settled  bool
	spins    int

	dragSpeed float64
	dragDir   wheel.Direction
	dragDX    float64
}

func (d *display) OnFrame(deg float64) { d.degrees = deg }

func (d *display) OnGestureStart() {
	d.dragging = true
	d.window = nil
	d.settled = false
	d.dragSpeed, d.dragDir, d.dragDX = 0, wheel.None, 0
}

func (d *display) OnGestureUpdate(v float64, dir wheel.Direction, offset float64) {
	d.dragSpeed, d.dragDir, d.dragDX = v, dir, offset
}

func (d *display) OnGestureEnd(w selection.Window) {
	d.dragging = false
	d.window = &w
	d.spins++
}

func (d *display) OnSettle(float64) { d.settled = true }

// Model is the Bubble Tea model for one wheel.
type Model struct {
	engine   *engine.Engine
	view     *display
	canvas   *Canvas
	theme    Theme
	styles   styles
	rate     int
	scale    float64
	segments int
	last     time.Time
	pointerX float64
	now      func() time.Time
	showHelp bool
}

func NewModel(cfg engine.Config, logger *log.Logger) (Model, error) {
	d := &display{}
	eng, err := engine.New(cfg, d, engine.WithLogger(logger))
	if err != nil {
		return Model{}, err
	}
	return Model{
		engine:   eng,
		view:     d,
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		theme:    Themes[0],
		styles:   newStyles(Themes[0]),
		rate:     cfg.TickRate,
		scale:    cfg.ScaleFactor,
		segments: cfg.Catalog.Len(),
		now:      time.Now,
	}, nil
}

// WithTheme returns a copy of m using the named theme.
func (m Model) WithTheme(name string) Model {
	m.theme = GetTheme(name)
	m.styles = newStyles(m.theme)
	return m
}

func (m Model) Engine() *engine.Engine { return m.engine }

func (m Model) Init() tea.Cmd {
	return tick(m.rate)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.BlurMsg:
		return m, m.input(m.engine.PointerLeave(m.pointerX, m.now()))
	case TickMsg:
		t := time.Time(msg)
		dt := 1.0
		if !m.last.IsZero() {
			dt = clock.Ticks(t.Sub(m.last), m.rate)
		}
		m.last = t
		m.engine.Tick(dt)
		return m, tick(m.rate)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.engine.Stop()
		return m, tea.Quit
	case "left", "h":
		return m, m.flick(flickVelocity, wheel.Left)
	case "right", "l":
		return m, m.flick(flickVelocity, wheel.Right)
	case "H":
		return m, m.flick(2*flickVelocity, wheel.Left)
	case "L":
		return m, m.flick(2*flickVelocity, wheel.Right)
	case "t":
		m.theme = NextTheme(m.theme)
		m.styles = newStyles(m.theme)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	x := float64(msg.X * cellPixels)
	m.pointerX = x
	now := m.now()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		return m.input(m.engine.PointerDown(x, now))
	case tea.MouseActionMotion:
		return m.input(m.engine.PointerMove(x, now))
	case tea.MouseActionRelease:
		return m.input(m.engine.PointerUp(x, now))
	}
	return nil
}

func (m Model) flick(velocity float64, dir wheel.Direction) tea.Cmd {
	_, err := m.engine.Flick(velocity, dir)
	return m.input(err)
}

// input quits once the engine has been stopped underneath the program.
func (m Model) input(err error) tea.Cmd {
	if errors.Is(err, wheel.ErrStopped) {
		return tea.Quit
	}
	return nil
}

func (m Model) View() string {
	m.draw()
	wheelView := lipgloss.NewStyle().Padding(1, 2).Render(m.styles.wheel.Render(m.canvas.String()))
	return lipgloss.JoinHorizontal(lipgloss.Top, wheelView, m.panel())
}

// draw renders the rim, one spoke per catalog item and the fixed pointer.
func (m Model) draw() {
	c := m.canvas
	c.Clear()

	w, h := c.Dots()
	cx, cy := w/2, h/2+1
	r := min(w, h)/2 - 3

	c.DrawCircle(cx, cy, r)
	c.DrawCircle(cx, cy, 2)

	base := m.view.degrees * math.Pi / 180
	step := 2 * math.Pi / float64(m.segments)
	for i := 0; i < m.segments; i++ {
		c.DrawRay(cx, cy, float64(r), base+float64(i)*step)
	}

	c.DrawLine(cx, cy-r-3, cx, cy-r-1)
	c.Set(cx-1, cy-r-3)
	c.Set(cx+1, cy-r-3)
}

func (m Model) panel() string {
	s := m.styles
	state := m.engine.State()

	status := "AT REST"
	switch {
	case m.view.dragging:
		status = "DRAGGING"
	case !m.engine.AtRest():
		status = "SPINNING"
	}

	var b strings.Builder
	b.WriteString(s.header.Render("WHEELSPIN") + "\n")
	b.WriteString(s.pointer.Render(status) + "\n\n")
	fmt.Fprintf(&b, "%s %s\n", s.muted.Render("angle   "), s.text.Render(fmt.Sprintf("%7.1f°", state.Degrees())))
	fmt.Fprintf(&b, "%s %s\n", s.muted.Render("velocity"), s.text.Render(fmt.Sprintf("%7.4f rad/tick", state.AngularVelocity)))
	fmt.Fprintf(&b, "%s %s\n\n", s.muted.Render("spins   "), s.text.Render(fmt.Sprintf("%7d", m.view.spins)))

	switch {
	case m.view.dragging:
		arrow := "→"
		if m.view.dragDir == wheel.Left {
			arrow = "←"
		}
		fmt.Fprintf(&b, "%s %s\n", s.muted.Render("speed   "), s.pointer.Render(fmt.Sprintf("%7.2f px/ms %s", m.view.dragSpeed, arrow)))
		fmt.Fprintf(&b, "%s %s\n", s.muted.Render("impulse "), s.pointer.Render(fmt.Sprintf("%7.4f rad/tick", m.view.dragSpeed*m.scale)))
		b.WriteString("\n" + s.muted.Render("release to spin") + "\n")
	case m.view.window == nil:
		b.WriteString(s.muted.Render("drag the wheel or press ←/→") + "\n")
	default:
		for _, item := range m.view.window.Items {
			b.WriteString(s.highlight.Render("▸ "+item) + "\n")
		}
		if m.view.settled {
			b.WriteString("\n" + s.muted.Render("settled") + "\n")
		}
	}

	if m.showHelp {
		b.WriteString("\n" + s.muted.Render("drag  spin with the mouse\n←/→   flick   H/L  hard flick\nt     theme   q    quit") + "\n")
	} else {
		b.WriteString("\n" + s.warning.Render("? help") + "\n")
	}
	return s.panel.Render(b.String())
}

// Run starts the TUI and blocks until the user quits.
func Run(cfg engine.Config, logger *log.Logger, theme string) error {
	m, err := NewModel(cfg, logger)
	if err != nil {
		return err
	}
	m = m.WithTheme(theme)
	defer m.engine.Stop()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	_, err = p.Run()
	return err
}
