package sim

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/wheelspin/internal/catalog"
	"github.com/san-kum/wheelspin/internal/engine"
	"github.com/san-kum/wheelspin/internal/gesture"
	"github.com/san-kum/wheelspin/internal/physics"
	"github.com/san-kum/wheelspin/internal/wheel"
)

func testConfig(t *testing.T) engine.Config {
	t.Helper()
	cat, err := catalog.New("i0", "i1", "i2", "i3", "i4", "i5", "i6", "i7")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	cfg := engine.DefaultConfig()
	cfg.Catalog = cat
	cfg.InertiaScale = 1
	cfg.SpreadFactor = 1
	return cfg
}

func TestSimulatorRunFlick(t *testing.T) {
	s := New(testConfig(t))

	result, err := s.RunFlick(context.Background(), 50, wheel.Right, DefaultConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if math.Abs(result.Release.Impulse-10) > 1e-9 {
		t.Errorf("expected impulse 10, got %f", result.Release.Impulse)
	}
	if result.Release.Window.Start != 2 {
		t.Errorf("expected window start 2, got %d", result.Release.Window.Start)
	}

	want := physics.TicksToRest(10, physics.DefaultFrictionAir, physics.DefaultRestThreshold)
	if result.SettledAt < want-1 || result.SettledAt > want+1 {
		t.Errorf("expected settle near tick %d, got %d", want, result.SettledAt)
	}
	if len(result.Frames) != result.StepsTaken {
		t.Errorf("expected %d frames, got %d", result.StepsTaken, len(result.Frames))
	}
	if result.Metrics["peak_velocity"] > 10 {
		t.Errorf("peak velocity should not exceed the impulse, got %f", result.Metrics["peak_velocity"])
	}
}

func TestSimulatorDecayIsMonotonic(t *testing.T) {
	s := New(testConfig(t))

	result, err := s.RunFlick(context.Background(), 30, wheel.Left, DefaultConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	vs := result.Velocities()
	for i := 1; i < len(vs); i++ {
		if math.Abs(vs[i]) >= math.Abs(vs[i-1]) {
			t.Fatalf("frame %d: |w| did not decrease", i)
		}
		if vs[i] > 0 {
			t.Fatalf("frame %d: sign flipped", i)
		}
	}
}

func TestSimulatorMaxTicks(t *testing.T) {
	s := New(testConfig(t))
	cfg := Config{Dt: 1, MaxTicks: 10, UntilRest: true}

	result, err := s.RunFlick(context.Background(), 50, wheel.Right, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.StepsTaken != 10 || result.SettledAt != -1 {
		t.Errorf("expected 10 unsettled steps, got %d (settled %d)", result.StepsTaken, result.SettledAt)
	}
}

func TestSimulatorIncompleteGesture(t *testing.T) {
	s := New(testConfig(t))
	samples := []gesture.Sample{
		{Action: gesture.ActionDown, X: 0, At: time.Unix(0, 0)},
		{Action: gesture.ActionMove, X: 10, At: time.Unix(0, int64(time.Millisecond))},
	}

	_, err := s.Run(context.Background(), samples, DefaultConfig())
	if !errors.Is(err, ErrIncomplete) {
		t.Errorf("expected ErrIncomplete, got %v", err)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := New(testConfig(t))

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, MaxTicks: 10}},
		{"negative dt", Config{Dt: -1, MaxTicks: 10}},
		{"zero ticks", Config{Dt: 1, MaxTicks: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.RunFlick(context.Background(), 10, wheel.Right, tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSimulatorCancelled(t *testing.T) {
	s := New(testConfig(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.RunFlick(ctx, 10, wheel.Right, DefaultConfig())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if result == nil || result.StepsTaken != 0 {
		t.Error("expected partial result with no steps")
	}
}

func TestSweep(t *testing.T) {
	s := New(testConfig(t))
	velocities := []float64{0, 5, 10, 50}

	results, err := s.Sweep(context.Background(), velocities, wheel.Right, DefaultConfig())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != len(velocities) {
		t.Fatalf("expected %d results, got %d", len(velocities), len(results))
	}

	// floor(v * 0.2) mod 8
	want := []int{0, 1, 2, 2}
	for i, r := range results {
		if r.Release.Window.Start != want[i] {
			t.Errorf("velocity %v: expected start %d, got %d", velocities[i], want[i], r.Release.Window.Start)
		}
	}
}
