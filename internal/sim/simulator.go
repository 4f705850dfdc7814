package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/wheelspin/internal/engine"
	"github.com/san-kum/wheelspin/internal/gesture"
	"github.com/san-kum/wheelspin/internal/metrics"
	"github.com/san-kum/wheelspin/internal/wheel"
)

// ErrIncomplete is returned when a scripted gesture never released.
var ErrIncomplete = errors.New("sim: gesture did not complete")

// Simulator replays gestures against a fresh engine and steps it with a
// fixed dt.
type Simulator struct {
	cfg        engine.Config
	newMetrics func() metrics.Set
	observers  []engine.Observer
	logger     *log.Logger
}

func New(cfg engine.Config) *Simulator {
	return &Simulator{
		cfg:        cfg,
		newMetrics: metrics.Default,
		logger:     log.New(io.Discard),
	}
}

func (s *Simulator) SetLogger(l *log.Logger)        { s.logger = l }
func (s *Simulator) AddObserver(o engine.Observer) { s.observers = append(s.observers, o) }

// SetMetrics replaces the per-run metric set factory.
func (s *Simulator) SetMetrics(fn func() metrics.Set) { s.newMetrics = fn }

// RunFlick releases a drag of velocity px/ms in direction and simulates it.
func (s *Simulator) RunFlick(ctx context.Context, velocity float64, direction wheel.Direction, cfg Config) (*Result, error) {
	return s.Run(ctx, gesture.Flick(time.Unix(0, 0), velocity, int(direction), 3), cfg)
}

// Run feeds samples to a new engine, then ticks until rest or MaxTicks.
func (s *Simulator) Run(ctx context.Context, samples []gesture.Sample, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	set := s.newMetrics()
	frames := &frameLog{frames: make([]engine.Frame, 0, cfg.MaxTicks)}
	opts := []engine.Option{
		engine.WithLogger(s.logger),
		engine.WithObserver(frames),
		engine.WithObserver(set),
	}
	for _, o := range s.observers {
		opts = append(opts, engine.WithObserver(o))
	}

	eng, err := engine.New(s.cfg, nil, opts...)
	if err != nil {
		return nil, err
	}
	defer eng.Stop()

	for _, sample := range samples {
		if err := eng.Feed(sample); err != nil {
			return nil, err
		}
	}
	rel, ok := eng.Last()
	if !ok {
		return nil, ErrIncomplete
	}

	result := &Result{Release: rel, SettledAt: -1}
	for i := 0; i < cfg.MaxTicks; i++ {
		select {
		case <-ctx.Done():
			result.Frames = frames.frames
			return result, ctx.Err()
		default:
		}

		eng.Tick(cfg.Dt)
		result.StepsTaken++

		if eng.AtRest() {
			if result.SettledAt < 0 {
				result.SettledAt = eng.Ticks()
			}
			if cfg.UntilRest {
				break
			}
		}
	}

	result.Frames = frames.frames
	result.Metrics = set.Values()
	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.MaxTicks <= 0 {
		return fmt.Errorf("max ticks must be positive, got %d", cfg.MaxTicks)
	}
	return nil
}
