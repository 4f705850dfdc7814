package engine

import (
	"time"

	"github.com/san-kum/wheelspin/internal/catalog"
	"github.com/san-kum/wheelspin/internal/clock"
	"github.com/san-kum/wheelspin/internal/gesture"
	"github.com/san-kum/wheelspin/internal/physics"
	"github.com/san-kum/wheelspin/internal/selection"
	"github.com/san-kum/wheelspin/internal/wheel"
)

// Config is fixed for the engine's lifetime.
type Config struct {
	FrictionAir   float64
	ScaleFactor   float64
	InertiaScale  float64
	SpreadFactor  float64
	RestThreshold float64
	TickRate      int
	StaleAfter    time.Duration
	Smoothing     float64
	Catalog       *catalog.Catalog
}

func DefaultConfig() Config {
	return Config{
		FrictionAir:   physics.DefaultFrictionAir,
		ScaleFactor:   physics.DefaultScaleFactor,
		InertiaScale:  selection.DefaultInertiaScale,
		SpreadFactor:  selection.DefaultSpreadFactor,
		RestThreshold: physics.DefaultRestThreshold,
		TickRate:      clock.DefaultRate,
		StaleAfter:    gesture.DefaultStaleAfter,
		Catalog:       catalog.Default(),
	}
}

func (c Config) Validate() error {
	if c.Catalog == nil {
		return wheel.Invalid("catalog", "missing")
	}
	if c.Catalog.Len() < catalog.MinItems {
		return wheel.Invalid("catalog", "need at least %d items, got %d", catalog.MinItems, c.Catalog.Len())
	}
	if c.TickRate <= 0 {
		return wheel.Invalid("tick_rate", "must be positive, got %d", c.TickRate)
	}
	if _, err := physics.NewBody(c.FrictionAir, c.RestThreshold); err != nil {
		return err
	}
	if _, err := physics.NewMapper(c.ScaleFactor); err != nil {
		return err
	}
	if _, err := gesture.NewTracker(c.trackerConfig()); err != nil {
		return err
	}
	return c.rule().Validate()
}

func (c Config) rule() selection.Rule {
	return selection.Rule{InertiaScale: c.InertiaScale, SpreadFactor: c.SpreadFactor}
}

func (c Config) trackerConfig() gesture.Config {
	return gesture.Config{StaleAfter: c.StaleAfter, Smoothing: c.Smoothing}
}
