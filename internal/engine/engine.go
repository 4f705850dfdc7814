package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/wheelspin/internal/clock"
	"github.com/san-kum/wheelspin/internal/gesture"
	"github.com/san-kum/wheelspin/internal/physics"
	"github.com/san-kum/wheelspin/internal/selection"
	"github.com/san-kum/wheelspin/internal/wheel"
)

// Renderer consumes the engine's numeric output.
type Renderer interface {
	OnFrame(angleDegrees float64)
	OnGestureStart()
	OnGestureEnd(w selection.Window)
}

// SettleObserver is an optional Renderer extension notified once when a
// spin first drops under the rest threshold.
type SettleObserver interface {
	OnSettle(angleDegrees float64)
}

// DragObserver is an optional Renderer extension that follows a drag while
// the pointer is held. velocity is in px/ms and offset in px from the
// pointer-down position. It never implies an impulse.
type DragObserver interface {
	OnGestureUpdate(velocity float64, direction wheel.Direction, offset float64)
}

// Frame is the body state after one tick.
type Frame struct {
	Tick            int
	Angle           float64
	AngularVelocity float64
	AtRest          bool
}

// Observer receives every frame, before the renderer.
type Observer interface {
	OnStep(f Frame)
}

// Release describes a completed gesture and what it did to the wheel.
type Release struct {
	Velocity  float64
	Direction wheel.Direction
	Impulse   float64
	Metric    float64
	Window    selection.Window
}

type Option func(*Engine)

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

type Engine struct {
	mu        sync.Mutex
	cfg       Config
	body      *physics.Body
	tracker   *gesture.Tracker
	mapper    physics.Mapper
	rule      selection.Rule
	renderer  Renderer
	observers []Observer
	logger    *log.Logger

	ticks    int
	spinning bool
	last     *Release
	stopped  bool
	stop     chan struct{}
	stopOnce sync.Once
}

func New(cfg Config, r Renderer, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	body, err := physics.NewBody(cfg.FrictionAir, cfg.RestThreshold)
	if err != nil {
		return nil, err
	}
	tracker, err := gesture.NewTracker(cfg.trackerConfig())
	if err != nil {
		return nil, err
	}
	mapper, err := physics.NewMapper(cfg.ScaleFactor)
	if err != nil {
		return nil, err
	}
	if r == nil {
		r = nopRenderer{}
	}

	e := &Engine{
		cfg:      cfg,
		body:     body,
		tracker:  tracker,
		mapper:   mapper,
		rule:     cfg.rule(),
		renderer: r,
		logger:   log.Default(),
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) Config() Config { return e.cfg }

func (e *Engine) PointerDown(x float64, at time.Time) error {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return wheel.ErrStopped
	}
	restarted := e.tracker.Active()
	e.tracker.Down(x, at)
	e.mu.Unlock()

	e.logger.Debug("gesture start", "x", x, "restarted", restarted)
	e.renderer.OnGestureStart()
	return nil
}

func (e *Engine) PointerMove(x float64, at time.Time) error {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return wheel.ErrStopped
	}
	ev, ok := e.tracker.Move(x, at)
	e.mu.Unlock()

	if !ok {
		return nil
	}
	if d, isDrag := e.renderer.(DragObserver); isDrag {
		d.OnGestureUpdate(ev.Velocity, ev.Direction, ev.Offset)
	}
	return nil
}

func (e *Engine) PointerUp(x float64, at time.Time) error {
	return e.finish(x, at, e.tracker.Up)
}

func (e *Engine) PointerLeave(x float64, at time.Time) error {
	return e.finish(x, at, e.tracker.Leave)
}

// Feed routes a raw sample to the matching pointer method.
func (e *Engine) Feed(s gesture.Sample) error {
	switch s.Action {
	case gesture.ActionDown:
		return e.PointerDown(s.X, s.At)
	case gesture.ActionMove:
		return e.PointerMove(s.X, s.At)
	case gesture.ActionUp:
		return e.PointerUp(s.X, s.At)
	case gesture.ActionLeave:
		return e.PointerLeave(s.X, s.At)
	default:
		return fmt.Errorf("unknown pointer action: %q", s.Action)
	}
}

func (e *Engine) finish(x float64, at time.Time, end func(float64, time.Time) (gesture.Event, bool)) error {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return wheel.ErrStopped
	}
	ev, ok := end(x, at)
	if !ok {
		e.mu.Unlock()
		return nil
	}
	rel := e.release(ev.Velocity, ev.Direction)
	e.mu.Unlock()

	e.renderer.OnGestureEnd(rel.Window)
	return nil
}

// Flick applies a completed gesture directly, as if a drag had been released
// at velocity px/ms in direction. Both gesture notifications fire.
func (e *Engine) Flick(velocity float64, direction wheel.Direction) (Release, error) {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return Release{}, wheel.ErrStopped
	}
	e.tracker.Reset()
	rel := e.release(velocity, direction)
	e.mu.Unlock()

	e.renderer.OnGestureStart()
	e.renderer.OnGestureEnd(rel.Window)
	return rel, nil
}

// release must be called with mu held.
func (e *Engine) release(velocity float64, direction wheel.Direction) Release {
	impulse := e.mapper.Impulse(velocity, direction)
	if !e.body.ApplyImpulse(impulse) {
		e.logger.Warn("non-finite impulse, velocity reset", "velocity", velocity)
	}

	metric := selection.InertiaMetric(impulse, e.rule.InertiaScale)
	rel := Release{
		Velocity:  wheel.Sanitize(velocity),
		Direction: direction,
		Impulse:   impulse,
		Metric:    metric,
		Window:    selection.Select(e.cfg.Catalog, metric, e.rule.SpreadFactor),
	}
	e.last = &rel
	e.spinning = !e.body.AtRest()

	e.logger.Debug("gesture end",
		"velocity", rel.Velocity,
		"direction", direction,
		"impulse", impulse,
		"start", rel.Window.Start,
		"items", rel.Window.Items)
	return rel
}

// Tick integrates dt ticks and publishes the resulting frame.
func (e *Engine) Tick(dt float64) {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	if !e.body.Integrate(dt) {
		e.logger.Warn("non-finite rotation, velocity reset", "faults", e.body.Faults())
	}
	e.ticks++

	f := Frame{
		Tick:            e.ticks,
		Angle:           e.body.Angle(),
		AngularVelocity: e.body.AngularVelocity(),
		AtRest:          e.body.AtRest(),
	}
	settled := e.spinning && f.AtRest
	if settled {
		e.spinning = false
	}
	degrees := e.body.AngleDegrees()
	e.mu.Unlock()

	for _, o := range e.observers {
		o.OnStep(f)
	}
	e.renderer.OnFrame(degrees)
	if settled {
		e.logger.Debug("wheel settled", "tick", f.Tick, "degrees", degrees)
		if s, ok := e.renderer.(SettleObserver); ok {
			s.OnSettle(degrees)
		}
	}
}

// Run ticks the engine from src until ctx is done or Stop is called.
// It stops src before returning.
func (e *Engine) Run(ctx context.Context, src clock.Source) error {
	defer src.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.stop:
			return nil
		case d, ok := <-src.C():
			if !ok {
				return nil
			}
			e.Tick(clock.Ticks(d, e.cfg.TickRate))
		}
	}
}

// Stop tears the engine down. An in-flight gesture is discarded. It is safe
// to call more than once.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		e.mu.Lock()
		e.stopped = true
		e.tracker.Reset()
		ticks := e.ticks
		e.mu.Unlock()
		close(e.stop)
		e.logger.Debug("engine stopped", "ticks", ticks)
	})
}

func (e *Engine) Stopped() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stopped
}

func (e *Engine) State() physics.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.body.Snapshot()
}

func (e *Engine) AtRest() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.body.AtRest()
}

func (e *Engine) Dragging() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.Active()
}

// Last returns the most recent release, if any.
func (e *Engine) Last() (Release, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.last == nil {
		return Release{}, false
	}
	return *e.last, true
}

func (e *Engine) Ticks() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ticks
}

type nopRenderer struct{}

func (nopRenderer) OnFrame(float64)               {}
func (nopRenderer) OnGestureStart()               {}
func (nopRenderer) OnGestureEnd(selection.Window) {}
