package physics

import (
	"math"

	"github.com/san-kum/wheelspin/internal/wheel"
)

const (
	// DefaultFrictionAir removes 2% of angular velocity per tick.
	DefaultFrictionAir = 0.02

	// DefaultRestThreshold is the |ω| in rad/tick below which a body is at rest.
	DefaultRestThreshold = 1e-4
)

// State is a point-in-time copy of a body's rotation.
type State struct {
	Angle           float64 // radians, unbounded
	AngularVelocity float64 // radians per tick
}

func (s State) Degrees() float64 {
	return s.Angle * 180 / math.Pi
}

// Body is a rigid wheel spinning about its centre under air friction.
// Angular velocity is measured per tick; dt passed to Integrate is in ticks.
type Body struct {
	angle           float64
	angularVelocity float64
	frictionAir     float64
	restThreshold   float64
	faults          int
}

func NewBody(frictionAir, restThreshold float64) (*Body, error) {
	if !wheel.Finite(frictionAir) || frictionAir <= 0 || frictionAir >= 1 {
		return nil, wheel.Invalid("friction_air", "must be in (0, 1), got %v", frictionAir)
	}
	if !wheel.Finite(restThreshold) || restThreshold <= 0 {
		return nil, wheel.Invalid("rest_threshold", "must be positive, got %v", restThreshold)
	}
	return &Body{frictionAir: frictionAir, restThreshold: restThreshold}, nil
}

// Integrate advances the angle by ω·dt and then damps ω by (1-frictionAir)^dt.
// It reports false when the step produced a non-finite value; the body then
// keeps its last finite angle and drops to ω = 0.
func (b *Body) Integrate(dt float64) bool {
	if !wheel.Finite(dt) || dt <= 0 {
		return true
	}

	angle := b.angle + b.angularVelocity*dt
	if !wheel.Finite(angle) {
		b.fault()
		return false
	}
	b.angle = angle

	if dt == 1 {
		b.angularVelocity *= 1 - b.frictionAir
	} else {
		b.angularVelocity *= math.Pow(1-b.frictionAir, dt)
	}
	if !wheel.Finite(b.angularVelocity) {
		b.fault()
		return false
	}
	return true
}

// ApplyImpulse overwrites the angular velocity. Residual spin is discarded.
func (b *Body) ApplyImpulse(w float64) bool {
	if !wheel.Finite(w) {
		b.fault()
		return false
	}
	b.angularVelocity = w
	return true
}

func (b *Body) fault() {
	b.angularVelocity = 0
	b.faults++
}

// AtRest reports whether |ω| has decayed under the rest threshold.
func (b *Body) AtRest() bool {
	return math.Abs(b.angularVelocity) < b.restThreshold
}

func (b *Body) Angle() float64           { return b.angle }
func (b *Body) AngularVelocity() float64 { return b.angularVelocity }
func (b *Body) Faults() int              { return b.faults }

func (b *Body) AngleDegrees() float64 {
	return b.angle * 180 / math.Pi
}

// WrappedDegrees folds the angle into [0, 360) for display transforms.
func (b *Body) WrappedDegrees() float64 {
	d := math.Mod(b.AngleDegrees(), 360)
	if d < 0 {
		d += 360
	}
	return d
}

func (b *Body) Snapshot() State {
	return State{Angle: b.angle, AngularVelocity: b.angularVelocity}
}

// TicksToRest returns how many unit steps it takes |w| to fall below threshold
// under friction f. It returns 0 when w is already below it.
func TicksToRest(w, f, threshold float64) int {
	w = math.Abs(w)
	if w < threshold || f <= 0 || f >= 1 {
		return 0
	}
	return int(math.Ceil(math.Log(threshold/w) / math.Log(1-f)))
}
