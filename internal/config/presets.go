package config

import (
	"math"
	"sort"
)

var Presets = map[string]map[string]*Config{
	"lorenz": {
		"classic": withLorenz(func(l *LorenzConfig) {}),
		"trio": withLorenz(func(l *LorenzConfig) {
			l.Trajectories = []TrajectoryConfig{
				{X: 0.01, Color: "#00ff00"},
				{X: 0.02, Color: "#ff0000"},
				{X: 0.03, Color: "#3399ff"},
			}
		}),
		"fine": withLorenz(func(l *LorenzConfig) {
			l.Dt = 0.002
			l.Substeps = 500
			l.Trajectories = []TrajectoryConfig{
				{X: 1.0, Y: 1.0, Z: 1.0, Color: "#00ff00"},
				{X: 1.0 + 1e-9, Y: 1.0, Z: 1.0, Color: "#ff0000"},
			}
		}),
		"rossler": withLorenz(func(l *LorenzConfig) {
			l.Model = "rossler"
			l.Window.Title = "Rossler Attractor"
			l.Dt = 0.02
			l.Projection = ProjectionConfig{OffsetX: 15, OffsetY: 2, ScaleX: 1000.0 / 30, ScaleY: 600.0 / 30}
			l.Trajectories = []TrajectoryConfig{
				{X: 1.0, Y: 1.0, Z: 1.0, Color: "#00ff00"},
				{X: 1.01, Y: 1.0, Z: 1.0, Color: "#ff0000"},
			}
		}),
	},
	"pendulum": {
		"classic": withPendulum(func(p *PendulumConfig) {}),
		"gentle": withPendulum(func(p *PendulumConfig) {
			p.Theta1, p.Theta2 = 0.3, 0.3
		}),
		"chaos": withPendulum(func(p *PendulumConfig) {
			p.Theta1, p.Theta2 = 3.0, 3.0
			p.Dt = 0.005
		}),
		"inverted": withPendulum(func(p *PendulumConfig) {
			p.Theta1, p.Theta2 = math.Pi, math.Pi-0.001
			p.DegeneracyThreshold = 1e3
		}),
	},
}

func withLorenz(fn func(*LorenzConfig)) *Config {
	cfg := DefaultConfig()
	fn(&cfg.Lorenz)
	return cfg
}

func withPendulum(fn func(*PendulumConfig)) *Config {
	cfg := DefaultConfig()
	fn(&cfg.Pendulum)
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(sim, preset string) *Config {
	simPresets, ok := Presets[sim]
	if !ok {
		return nil
	}
	cfg, ok := simPresets[preset]
	if !ok {
		return nil
	}
	c := *cfg
	c.Lorenz.Trajectories = append([]TrajectoryConfig(nil), cfg.Lorenz.Trajectories...)
	return &c
}

func ListPresets(sim string) []string {
	simPresets, ok := Presets[sim]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(simPresets))
	for name := range simPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
