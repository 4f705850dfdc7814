package config

import "sort"

// Presets override the tuning values of DefaultConfig; Items are kept.
var Presets = map[string]func(*Config){
	"classic": func(c *Config) {},
	"heavy": func(c *Config) {
		c.FrictionAir = 0.01
		c.ScaleFactor = 0.15
	},
	"sticky": func(c *Config) {
		c.FrictionAir = 0.05
	},
	"sensitive": func(c *Config) {
		c.ScaleFactor = 0.4
		c.Smoothing = 0.3
	},
	"slowmo": func(c *Config) {
		c.TickRate = 30
		c.FrictionAir = 0.01
	},
}

// GetPreset returns the defaults with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// ApplyPreset modifies cfg in place. It reports false for unknown names.
func ApplyPreset(cfg *Config, name string) bool {
	apply, ok := Presets[name]
	if ok {
		apply(cfg)
	}
	return ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
