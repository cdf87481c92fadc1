package config

import (
	"sort"

	"github.com/kinelab/kinelab/internal/motion"
)

// Presets are ready-made two-body scenarios for the CLI and TUI.
var Presets = map[string]*Config{
	"chase": {
		Step: 0.1, Horizon: 20, Increment: 0.05, VMin: -10, VMax: 10,
		BodyA: BodyConfig{Name: "runner", X0: 0, V0: 5},
		BodyB: BodyConfig{Name: "walker", X0: 50, V0: -2},
	},
	"headon": {
		Step: 0.1, Horizon: 20, Increment: 0.05, VMin: -10, VMax: 10,
		BodyA: BodyConfig{Name: "east", X0: 0, V0: 8},
		BodyB: BodyConfig{Name: "west", X0: 100, V0: -8},
	},
	"parallel": {
		Step: 0.1, Horizon: 20, Increment: 0.05, VMin: -10, VMax: 10,
		BodyA: BodyConfig{Name: "slow", X0: 0, V0: 5},
		BodyB: BodyConfig{Name: "fast", X0: 100, V0: 10},
	},
	"braking": {
		Step: 0.1, Horizon: 20, Increment: 0.05, VMin: -10, VMax: 10,
		BodyA: BodyConfig{Name: "braking", X0: 0, V0: 10, A: -0.8},
		BodyB: BodyConfig{Name: "cruising", X0: 40, V0: 2},
	},
	"rampgraph": {
		Step: 0.1, Horizon: 20, Increment: 0.05, VMin: -10, VMax: 10,
		BodyA: BodyConfig{
			Name: "ramp", UseGraph: true,
			Graph: []motion.GraphPoint{{T: 0, V: 0}, {T: 10, V: 10}, {T: 20, V: 0}},
		},
		BodyB: BodyConfig{Name: "steady", X0: 60, V0: 1},
	},
}

// GetPreset returns the named scenario, or nil if unknown.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

// ListPresets returns the preset names in a stable order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
