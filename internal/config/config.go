package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/wheelspin/internal/catalog"
	"github.com/san-kum/wheelspin/internal/clock"
	"github.com/san-kum/wheelspin/internal/engine"
	"github.com/san-kum/wheelspin/internal/gesture"
	"github.com/san-kum/wheelspin/internal/physics"
	"github.com/san-kum/wheelspin/internal/selection"
	"gopkg.in/yaml.v3"
)

const DefaultLogLevel = "info"

type Config struct {
	Items         []string      `yaml:"items"`
	FrictionAir   float64       `yaml:"friction_air"`
	ScaleFactor   float64       `yaml:"scale_factor"`
	InertiaScale  float64       `yaml:"inertia_scale"`
	SpreadFactor  float64       `yaml:"spread_factor"`
	RestThreshold float64       `yaml:"rest_threshold"`
	TickRate      int           `yaml:"tick_rate"`
	StaleAfter    time.Duration `yaml:"stale_after"`
	Smoothing     float64       `yaml:"smoothing"`
	LogLevel      string        `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Items:         catalog.Default().Items(),
		FrictionAir:   physics.DefaultFrictionAir,
		ScaleFactor:   physics.DefaultScaleFactor,
		InertiaScale:  selection.DefaultInertiaScale,
		SpreadFactor:  selection.DefaultSpreadFactor,
		RestThreshold: physics.DefaultRestThreshold,
		TickRate:      clock.DefaultRate,
		StaleAfter:    gesture.DefaultStaleAfter,
		LogLevel:      DefaultLogLevel,
	}
}

// Load reads a YAML file over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file on top of a copy of base.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg := *base
	cfg.Items = append([]string(nil), base.Items...)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Engine builds the engine configuration. It fails when the item list or
// any tuning value is invalid.
func (c *Config) Engine() (engine.Config, error) {
	cat, err := catalog.New(c.Items...)
	if err != nil {
		return engine.Config{}, err
	}

	ec := engine.Config{
		FrictionAir:   c.FrictionAir,
		ScaleFactor:   c.ScaleFactor,
		InertiaScale:  c.InertiaScale,
		SpreadFactor:  c.SpreadFactor,
		RestThreshold: c.RestThreshold,
		TickRate:      c.TickRate,
		StaleAfter:    c.StaleAfter,
		Smoothing:     c.Smoothing,
		Catalog:       cat,
	}
	if err := ec.Validate(); err != nil {
		return engine.Config{}, err
	}
	return ec, nil
}

// Level parses LogLevel, defaulting to info when empty.
func (c *Config) Level() (log.Level, error) {
	if c.LogLevel == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(c.LogLevel)
}
