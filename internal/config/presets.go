package config

import "sort"

var Presets = map[string]func() *Config{
	"classic": DefaultConfig,
	// calm drifts at half speed and lets particles settle without jitter.
	"calm": func() *Config {
		cfg := DefaultConfig()
		cfg.SpeedScale = 0.2
		cfg.Jitter.Enabled = false
		return cfg
	},
	// legacy reproduces the older worker: looser frame ceiling, y as the
	// vertical axis, no jitter.
	"legacy": func() *Config {
		cfg := DefaultConfig()
		cfg.DTCeiling = 0.1
		cfg.Trail.Projection = "y"
		cfg.Bounds = BoundsConfig{X0: -25, X1: 25, Y0: -30, Y1: 30}
		cfg.Jitter.Enabled = false
		return cfg
	},
	"dense": func() *Config {
		cfg := DefaultConfig()
		cfg.Sizing.Large = TierConfig{Particles: 80, Trail: 90, LineWidth: 3}
		cfg.Sizing.Small = TierConfig{Particles: 40, Trail: 60, LineWidth: 1.5}
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
