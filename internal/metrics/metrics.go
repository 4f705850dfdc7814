// Package metrics summarises a spin from its frames.
package metrics

import (
	"math"

	"github.com/san-kum/wheelspin/internal/engine"
	"gonum.org/v1/gonum/stat"
)

type Metric interface {
	Name() string
	Observe(f engine.Frame)
	Value() float64
	Reset()
}

// Set fans frames out to its metrics. It satisfies engine.Observer.
type Set []Metric

func (s Set) OnStep(f engine.Frame) {
	for _, m := range s {
		m.Observe(f)
	}
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}

func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

// Default returns the metrics recorded for every headless spin.
func Default() Set {
	return Set{
		NewPeakVelocity(),
		NewMeanVelocity(),
		NewRevolutions(),
		NewSettleTicks(),
	}
}

// PeakVelocity tracks the largest |ω| seen.
type PeakVelocity struct {
	peak float64
}

func NewPeakVelocity() *PeakVelocity { return &PeakVelocity{} }

func (p *PeakVelocity) Name() string { return "peak_velocity" }
func (p *PeakVelocity) Observe(f engine.Frame) {
	if v := math.Abs(f.AngularVelocity); v > p.peak {
		p.peak = v
	}
}
func (p *PeakVelocity) Value() float64 { return p.peak }
func (p *PeakVelocity) Reset()         { p.peak = 0 }

// MeanVelocity averages |ω| over all frames until rest.
type MeanVelocity struct {
	samples []float64
}

func NewMeanVelocity() *MeanVelocity { return &MeanVelocity{} }

func (m *MeanVelocity) Name() string { return "mean_velocity" }
func (m *MeanVelocity) Observe(f engine.Frame) {
	if !f.AtRest {
		m.samples = append(m.samples, math.Abs(f.AngularVelocity))
	}
}
func (m *MeanVelocity) Value() float64 {
	if len(m.samples) == 0 {
		return 0
	}
	return stat.Mean(m.samples, nil)
}
func (m *MeanVelocity) Reset() { m.samples = m.samples[:0] }

// Revolutions accumulates |Δangle| in full turns.
type Revolutions struct {
	last    float64
	started bool
	total   float64
}

func NewRevolutions() *Revolutions { return &Revolutions{} }

func (r *Revolutions) Name() string { return "revolutions" }
func (r *Revolutions) Observe(f engine.Frame) {
	if r.started {
		r.total += math.Abs(f.Angle - r.last)
	}
	r.last = f.Angle
	r.started = true
}
func (r *Revolutions) Value() float64 { return r.total / (2 * math.Pi) }
func (r *Revolutions) Reset()         { *r = Revolutions{} }

// SettleTicks records the first tick at which the body was at rest.
// It is -1 until that happens.
type SettleTicks struct {
	tick int
}

func NewSettleTicks() *SettleTicks { return &SettleTicks{tick: -1} }

func (s *SettleTicks) Name() string { return "settle_ticks" }
func (s *SettleTicks) Observe(f engine.Frame) {
	if s.tick < 0 && f.AtRest {
		s.tick = f.Tick
	}
}
func (s *SettleTicks) Value() float64 { return float64(s.tick) }
func (s *SettleTicks) Reset()         { s.tick = -1 }
