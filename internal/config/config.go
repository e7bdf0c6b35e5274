package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/dynviz/internal/dynamo"
	"github.com/san-kum/dynviz/internal/surface"
)

const (
	DefaultLorenzWidth   = 1000
	DefaultLorenzHeight  = 600
	DefaultLorenzDt      = 0.01
	DefaultSubsteps      = 100
	DefaultLorenzDelayMs = 10
	DefaultTrailLength   = 20000

	DefaultPendulumWidth   = 800
	DefaultPendulumHeight  = 600
	DefaultPendulumDt      = 0.01
	DefaultPendulumDelayMs = 5
	DefaultBobSize         = 20
)

type Config struct {
	LogLevel string         `yaml:"log_level"`
	Lorenz   LorenzConfig   `yaml:"lorenz"`
	Pendulum PendulumConfig `yaml:"pendulum"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type ProjectionConfig struct {
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	ScaleX  float64 `yaml:"scale_x"`
	ScaleY  float64 `yaml:"scale_y"`
}

type TrajectoryConfig struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Z     float64 `yaml:"z"`
	Color string  `yaml:"color"`
}

// RosslerConfig holds the constants used when Model is "rossler".
type RosslerConfig struct {
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
	C float64 `yaml:"c"`
}

type LorenzConfig struct {
	Model        string             `yaml:"model"`
	Window       WindowConfig       `yaml:"window"`
	FrameDelayMs int                `yaml:"frame_delay_ms"`
	Dt           float64            `yaml:"dt"`
	Substeps     int                `yaml:"substeps"`
	Sigma        float64            `yaml:"sigma"`
	Rho          float64            `yaml:"rho"`
	Beta         float64            `yaml:"beta"`
	Rossler      RosslerConfig      `yaml:"rossler"`
	Projection   ProjectionConfig   `yaml:"projection"`
	Trajectories []TrajectoryConfig `yaml:"trajectories"`
	TrailLength  int                `yaml:"trail_length"`
	Background   string             `yaml:"background"`
}

type PendulumConfig struct {
	Window       WindowConfig `yaml:"window"`
	FrameDelayMs int          `yaml:"frame_delay_ms"`
	Dt           float64      `yaml:"dt"`
	M1           float64      `yaml:"m1"`
	M2           float64      `yaml:"m2"`
	L1           float64      `yaml:"l1"`
	L2           float64      `yaml:"l2"`
	Gravity      float64      `yaml:"gravity"`
	Theta1       float64      `yaml:"theta1"`
	Theta2       float64      `yaml:"theta2"`
	P1           float64      `yaml:"p1"`
	P2           float64      `yaml:"p2"`
	// OriginX and OriginY default to the window centre when zero.
	OriginX float64 `yaml:"origin_x"`
	OriginY float64 `yaml:"origin_y"`
	BobSize int     `yaml:"bob_size"`
	// DegeneracyThreshold stops the simulation once a momentum exceeds
	// it. Zero keeps the unguarded behaviour.
	DegeneracyThreshold float64 `yaml:"degeneracy_threshold"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Lorenz:   DefaultLorenz(),
		Pendulum: DefaultPendulum(),
	}
}

func DefaultLorenz() LorenzConfig {
	return LorenzConfig{
		Model:        "lorenz",
		Window:       WindowConfig{Title: "Lorenz Attractor", Width: DefaultLorenzWidth, Height: DefaultLorenzHeight},
		FrameDelayMs: DefaultLorenzDelayMs,
		Dt:           DefaultLorenzDt,
		Substeps:     DefaultSubsteps,
		Sigma:        10.0,
		Rho:          28.0,
		Beta:         8.0 / 3.0,
		Rossler:      RosslerConfig{A: 0.2, B: 0.2, C: 5.7},
		Projection: ProjectionConfig{
			OffsetX: 25,
			OffsetY: 0,
			ScaleX:  float64(DefaultLorenzWidth / 50),
			ScaleY:  float64(DefaultLorenzHeight / 50),
		},
		Trajectories: []TrajectoryConfig{
			{X: 0.01, Color: "#00ff00"},
			{X: 0.02, Color: "#ff0000"},
		},
		TrailLength: DefaultTrailLength,
		Background:  "#000000",
	}
}

func DefaultPendulum() PendulumConfig {
	return PendulumConfig{
		Window:       WindowConfig{Title: "Double Pendulum Simulation", Width: DefaultPendulumWidth, Height: DefaultPendulumHeight},
		FrameDelayMs: DefaultPendulumDelayMs,
		Dt:           DefaultPendulumDt,
		M1:           10,
		M2:           10,
		L1:           150,
		L2:           150,
		Gravity:      9.81,
		Theta1:       math.Pi / 2,
		Theta2:       math.Pi / 2,
		BobSize:      DefaultBobSize,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	return errors.Join(c.Lorenz.Validate(), c.Pendulum.Validate())
}

func (w WindowConfig) validate(scope string) error {
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("%s: window %dx%d: %w", scope, w.Width, w.Height, dynamo.ErrParameterBounds)
	}
	return nil
}

func (l LorenzConfig) Validate() error {
	var errs []error
	errs = append(errs, l.Window.validate("lorenz"))
	if l.Model != "lorenz" && l.Model != "rossler" {
		errs = append(errs, fmt.Errorf("lorenz: unknown model %q", l.Model))
	}
	if l.Dt <= 0 {
		errs = append(errs, fmt.Errorf("lorenz: dt must be positive, got %g: %w", l.Dt, dynamo.ErrParameterBounds))
	}
	if l.Substeps <= 0 {
		errs = append(errs, fmt.Errorf("lorenz: substeps must be positive, got %d: %w", l.Substeps, dynamo.ErrParameterBounds))
	}
	if l.FrameDelayMs < 0 {
		errs = append(errs, fmt.Errorf("lorenz: negative frame delay: %w", dynamo.ErrParameterBounds))
	}
	if l.Projection.ScaleX == 0 || l.Projection.ScaleY == 0 {
		errs = append(errs, fmt.Errorf("lorenz: projection scale must be non-zero: %w", dynamo.ErrParameterBounds))
	}
	if len(l.Trajectories) == 0 {
		errs = append(errs, fmt.Errorf("lorenz: at least one trajectory required"))
	}
	for i, tr := range l.Trajectories {
		if _, err := surface.ParseHex(tr.Color); err != nil {
			errs = append(errs, fmt.Errorf("lorenz: trajectory %d: %w", i, err))
		}
	}
	if _, err := surface.ParseHex(l.Background); err != nil {
		errs = append(errs, fmt.Errorf("lorenz: background: %w", err))
	}
	return errors.Join(errs...)
}

func (p PendulumConfig) Validate() error {
	var errs []error
	errs = append(errs, p.Window.validate("pendulum"))
	if p.Dt <= 0 {
		errs = append(errs, fmt.Errorf("pendulum: dt must be positive, got %g: %w", p.Dt, dynamo.ErrParameterBounds))
	}
	if p.M1 < 0 || p.M2 < 0 || p.L1 <= 0 || p.L2 <= 0 {
		errs = append(errs, fmt.Errorf("pendulum: masses must be non-negative and lengths positive: %w", dynamo.ErrParameterBounds))
	}
	if p.FrameDelayMs < 0 || p.BobSize < 0 || p.DegeneracyThreshold < 0 {
		errs = append(errs, fmt.Errorf("pendulum: negative delay, bob size or threshold: %w", dynamo.ErrParameterBounds))
	}
	return errors.Join(errs...)
}

// Origin returns the pivot, defaulting to the window centre.
func (p PendulumConfig) Origin() (float64, float64) {
	x, y := p.OriginX, p.OriginY
	if x == 0 && y == 0 {
		x, y = float64(p.Window.Width/2), float64(p.Window.Height/2)
	}
	return x, y
}
