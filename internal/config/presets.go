package config

import (
	"math"
	"sort"
)

type Preset struct {
	Description string
	Vortices    []VortexConfig
}

var Presets = map[string]Preset{
	"single": {
		Description: "one strong vortex in the centre",
		Vortices:    []VortexConfig{{X: 0.5, Y: 0.5, Strength: DefaultStrength}},
	},
	"pair": {
		Description: "counter-rotating dipole that propels itself",
		Vortices: []VortexConfig{
			{X: 0.4375, Y: 0.5, Strength: DefaultStrength},
			{X: 0.5625, Y: 0.5, Strength: -DefaultStrength},
		},
	},
	"merger": {
		Description: "two co-rotating vortices that orbit and merge",
		Vortices: []VortexConfig{
			{X: 0.42, Y: 0.5, Strength: 40},
			{X: 0.58, Y: 0.5, Strength: 40},
		},
	},
	"quad": {
		Description: "alternating-sign vortices on a square",
		Vortices: []VortexConfig{
			{X: 0.35, Y: 0.35, Strength: 40},
			{X: 0.65, Y: 0.35, Strength: -40},
			{X: 0.35, Y: 0.65, Strength: -40},
			{X: 0.65, Y: 0.65, Strength: 40},
		},
	},
	"ring": {
		Description: "eight like-signed vortices on a circle",
		Vortices:    ring(8, 0.25, 25),
	},
}

func ring(count int, radius, strength float64) []VortexConfig {
	vs := make([]VortexConfig, count)
	for i := range vs {
		a := 2 * math.Pi * float64(i) / float64(count)
		vs[i] = VortexConfig{
			X:        0.5 + radius*math.Cos(a),
			Y:        0.5 + radius*math.Sin(a),
			Strength: strength,
		}
	}
	return vs
}

// GetPreset returns the default configuration seeded with the named
// scenario, or nil if there is none.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Vortices = append([]VortexConfig(nil), p.Vortices...)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
