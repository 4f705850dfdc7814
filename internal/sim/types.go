package sim

import (
	"math"

	"github.com/san-kum/wheelspin/internal/engine"
)

// Config bounds a headless run. Dt is in ticks.
type Config struct {
	Dt        float64
	MaxTicks  int
	UntilRest bool
}

func DefaultConfig() Config {
	return Config{
		Dt:        1,
		MaxTicks:  5000,
		UntilRest: true,
	}
}

type Result struct {
	Frames     []engine.Frame
	Release    engine.Release
	Metrics    map[string]float64
	SettledAt  int
	StepsTaken int
}

// Velocities returns ω for every frame, in order.
func (r *Result) Velocities() []float64 {
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = f.AngularVelocity
	}
	return out
}

// Angles returns the frame angles in degrees.
func (r *Result) Angles() []float64 {
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = f.Angle * 180 / math.Pi
	}
	return out
}

type frameLog struct {
	frames []engine.Frame
}

func (l *frameLog) OnStep(f engine.Frame) {
	l.frames = append(l.frames, f)
}
