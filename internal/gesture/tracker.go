// Package gesture turns a horizontal pointer stream into drag events.
//
// A Tracker reports Start on pointer-down, Update on every move while the
// pointer is held, and exactly one End on release or when the pointer
// leaves the control. Velocity is measured in pixels per millisecond.
package gesture

import (
	"math"
	"time"

	"github.com/san-kum/wheelspin/internal/wheel"
)

// DefaultStaleAfter is how long the pointer may rest before release
// velocity is treated as zero.
const DefaultStaleAfter = 100 * time.Millisecond

type Kind int

const (
	Start Kind = iota
	Update
	End
)

func (k Kind) String() string {
	switch k {
	case Start:
		return "start"
	case Update:
		return "update"
	case End:
		return "end"
	default:
		return "unknown"
	}
}

// Event is emitted by the Tracker. Velocity and Direction are meaningful
// for Update and End. Offset is the displacement from the pointer-down
// position.
type Event struct {
	Kind      Kind
	Velocity  float64
	Direction wheel.Direction
	Offset    float64
	At        time.Time
}

type Config struct {
	// StaleAfter zeroes the release velocity when the pointer was held
	// still for longer than this before letting go. Zero disables it.
	StaleAfter time.Duration

	// Smoothing in [0, 1) is the weight of the previous velocity estimate.
	// Zero reports the instantaneous velocity between consecutive samples.
	Smoothing float64
}

func DefaultConfig() Config {
	return Config{StaleAfter: DefaultStaleAfter}
}

type Tracker struct {
	cfg Config

	active     bool
	start      float64
	last       float64
	lastAt     time.Time
	lastMoveAt time.Time
	velocity   float64
	direction  wheel.Direction
}

func NewTracker(cfg Config) (*Tracker, error) {
	if cfg.StaleAfter < 0 {
		return nil, wheel.Invalid("stale_after", "must not be negative, got %v", cfg.StaleAfter)
	}
	if !wheel.Finite(cfg.Smoothing) || cfg.Smoothing < 0 || cfg.Smoothing >= 1 {
		return nil, wheel.Invalid("smoothing", "must be in [0, 1), got %v", cfg.Smoothing)
	}
	return &Tracker{cfg: cfg}, nil
}

func (t *Tracker) Active() bool { return t.active }

// Velocity is the current speed estimate in px/ms.
func (t *Tracker) Velocity() float64 { return t.velocity }

func (t *Tracker) Direction() wheel.Direction { return t.direction }

// Down begins a gesture. A Down during an active gesture restarts it.
func (t *Tracker) Down(x float64, at time.Time) Event {
	x = wheel.Sanitize(x)
	t.active = true
	t.start = x
	t.last = x
	t.lastAt = at
	t.lastMoveAt = at
	t.velocity = 0
	t.direction = wheel.None
	return Event{Kind: Start, At: at}
}

// Move records a sample. It reports false when no gesture is active.
func (t *Tracker) Move(x float64, at time.Time) (Event, bool) {
	if !t.active {
		return Event{}, false
	}
	t.sample(x, at)
	return t.event(Update, at), true
}

// Up ends the gesture. It reports false when no gesture is active.
func (t *Tracker) Up(x float64, at time.Time) (Event, bool) {
	return t.finish(x, at)
}

// Leave ends the gesture when the pointer exits the control while held.
func (t *Tracker) Leave(x float64, at time.Time) (Event, bool) {
	return t.finish(x, at)
}

// Reset drops any in-flight gesture without emitting End.
func (t *Tracker) Reset() {
	*t = Tracker{cfg: t.cfg}
}

func (t *Tracker) finish(x float64, at time.Time) (Event, bool) {
	if !t.active {
		return Event{}, false
	}
	t.sample(x, at)

	if t.cfg.StaleAfter > 0 && at.Sub(t.lastMoveAt) > t.cfg.StaleAfter {
		t.velocity = 0
	}
	if t.direction == wheel.None {
		t.direction = wheel.DirectionOf(t.last - t.start)
	}
	if t.direction == wheel.None {
		t.direction = wheel.Right
	}

	ev := t.event(End, at)
	t.active = false
	return ev, true
}

func (t *Tracker) sample(x float64, at time.Time) {
	if !wheel.Finite(x) {
		x = t.last
	}
	// Samples sharing a timestamp are folded into the next later one, which
	// then measures the whole distance.
	dtMs := float64(at.Sub(t.lastAt)) / float64(time.Millisecond)
	if dtMs <= 0 {
		return
	}
	dx := x - t.last
	t.last = x
	t.lastAt = at

	if dx == 0 {
		return
	}
	t.lastMoveAt = at
	t.direction = wheel.DirectionOf(dx)

	inst := wheel.Sanitize(math.Abs(dx) / dtMs)
	t.velocity = t.cfg.Smoothing*t.velocity + (1-t.cfg.Smoothing)*inst
}

func (t *Tracker) event(kind Kind, at time.Time) Event {
	return Event{
		Kind:      kind,
		Velocity:  t.velocity,
		Direction: t.direction,
		Offset:    t.last - t.start,
		At:        at,
	}
}
