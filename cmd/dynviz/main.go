package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/dynviz/internal/analysis"
	"github.com/san-kum/dynviz/internal/config"
	"github.com/san-kum/dynviz/internal/dynamo"
	"github.com/san-kum/dynviz/internal/export"
	"github.com/san-kum/dynviz/internal/metrics"
	"github.com/san-kum/dynviz/internal/scene"
	"github.com/san-kum/dynviz/internal/sim"
	"github.com/san-kum/dynviz/internal/surface"
	"github.com/san-kum/dynviz/internal/surface/raylib"
)

var (
	logLevel   string
	configFile string
	preset     string
	backend    string
	svgOut     string
	viewFrames int
	divFrames  int
	nrgFrames  int
	dt         float64
	substeps   int
	theta1     float64
	theta2     float64
	threshold  float64
	perturb    float64
	allPresets bool
	paramArgs  []string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix:          "dynviz",
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
})

func main() {
	rootCmd := &cobra.Command{
		Use:           "dynviz",
		Short:         "chaotic system visualizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger.SetLevel(level)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")

	lorenzCmd := &cobra.Command{
		Use:   "lorenz",
		Short: "draw strange attractor trajectories",
		Args:  cobra.NoArgs,
		RunE:  runLorenz,
	}
	lorenzCmd.Flags().StringVar(&backend, "backend", "raylib", "rendering surface (raylib, terminal, svg)")
	lorenzCmd.Flags().StringVar(&svgOut, "out", "frame.svg", "output file for the svg backend")
	lorenzCmd.Flags().IntVar(&viewFrames, "frames", 0, "stop after n frames (0 = until quit)")
	lorenzCmd.Flags().Float64Var(&dt, "dt", config.DefaultLorenzDt, "timestep")
	lorenzCmd.Flags().IntVar(&substeps, "substeps", config.DefaultSubsteps, "integration steps per frame")
	lorenzCmd.Flags().StringArrayVar(&paramArgs, "param", nil, "override a model parameter, name=value (repeatable)")

	pendulumCmd := &cobra.Command{
		Use:   "pendulum",
		Short: "animate a double pendulum",
		Args:  cobra.NoArgs,
		RunE:  runPendulum,
	}
	pendulumCmd.Flags().StringVar(&backend, "backend", "raylib", "rendering surface (raylib, terminal, svg)")
	pendulumCmd.Flags().StringVar(&svgOut, "out", "frame.svg", "output file for the svg backend")
	pendulumCmd.Flags().IntVar(&viewFrames, "frames", 0, "stop after n frames (0 = until quit)")
	pendulumCmd.Flags().Float64Var(&dt, "dt", config.DefaultPendulumDt, "timestep")
	pendulumCmd.Flags().Float64Var(&theta1, "theta1", 0, "initial upper angle")
	pendulumCmd.Flags().Float64Var(&theta2, "theta2", 0, "initial lower angle")
	pendulumCmd.Flags().Float64Var(&threshold, "threshold", 0, "stop when a momentum exceeds this (0 = off)")
	pendulumCmd.Flags().StringArrayVar(&paramArgs, "param", nil, "override a model parameter, name=value (repeatable)")

	divergeCmd := &cobra.Command{
		Use:   "diverge",
		Short: "plot trajectory separation and estimate the Lyapunov exponent",
		Args:  cobra.NoArgs,
		RunE:  runDiverge,
	}
	divergeCmd.Flags().IntVar(&divFrames, "frames", 30, "frames to integrate")
	divergeCmd.Flags().Float64Var(&perturb, "perturbation", 1e-8, "initial offset for the Lyapunov estimate")
	divergeCmd.Flags().StringArrayVar(&paramArgs, "param", nil, "override a model parameter, name=value (repeatable)")

	energyCmd := &cobra.Command{
		Use:   "energy",
		Short: "plot double pendulum energy drift",
		Args:  cobra.NoArgs,
		RunE:  runEnergy,
	}
	energyCmd.Flags().IntVar(&nrgFrames, "frames", 2000, "frames to integrate")
	energyCmd.Flags().BoolVar(&allPresets, "all", false, "compare every pendulum preset")
	energyCmd.Flags().StringArrayVar(&paramArgs, "param", nil, "override a model parameter, name=value (repeatable)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range []string{"lorenz", "pendulum"} {
				fmt.Printf("%s:\n", name)
				for _, p := range config.ListPresets(name) {
					fmt.Printf("  %s\n", p)
				}
			}
		},
	}

	rootCmd.AddCommand(lorenzCmd, pendulumCmd, divergeCmd, energyCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, dynamo.ErrInitialization) {
			logger.Error("could not initialize rendering surface", "err", err)
		} else {
			logger.Error(err)
		}
		os.Exit(1)
	}
}

// loadConfig applies the preset, then the config file, then any flag the
// user set explicitly.
func loadConfig(cmd *cobra.Command, name string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(name, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(name))
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	switch name {
	case "lorenz":
		if flags.Changed("dt") {
			cfg.Lorenz.Dt = dt
		}
		if flags.Changed("substeps") {
			cfg.Lorenz.Substeps = substeps
		}
	case "pendulum":
		if flags.Changed("dt") {
			cfg.Pendulum.Dt = dt
		}
		if flags.Changed("theta1") {
			cfg.Pendulum.Theta1 = theta1
		}
		if flags.Changed("theta2") {
			cfg.Pendulum.Theta2 = theta2
		}
		if flags.Changed("threshold") {
			cfg.Pendulum.DegeneracyThreshold = threshold
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyParams hands the --param overrides to a scene.
func applyParams(sc interface{ SetParams(map[string]float64) error }) error {
	params, err := config.ParseParams(paramArgs)
	if err != nil {
		return err
	}
	if err := sc.SetParams(params); err != nil {
		return fmt.Errorf("--param: %w", err)
	}
	return nil
}

func openSurface(name string, w config.WindowConfig) (surface.Surface, error) {
	switch name {
	case "raylib":
		s, err := raylib.Open(w.Title, w.Width, w.Height)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "terminal":
		s, err := surface.OpenTerminal(w.Title, w.Width, w.Height, os.Stdout)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "svg":
		if viewFrames == 0 {
			return nil, fmt.Errorf("the svg backend has no quit event, set --frames")
		}
		s, err := export.OpenSVG(svgOut, w.Width, w.Height)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown backend %q (available: raylib, terminal, svg)", name)
}

func runScene(w config.WindowConfig, delayMs int, sc sim.Scene, opts ...sim.Option) error {
	surf, err := openSurface(backend, w)
	if err != nil {
		return err
	}
	defer func() {
		if err := surf.Close(); err != nil {
			logger.Warn("closing surface", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts = append(opts, sim.WithLogger(logger), sim.WithMaxFrames(viewFrames))
	loop := sim.New(surf, sc, delayMs, opts...)

	logger.Info("running", "title", w.Title, "backend", backend, "size", fmt.Sprintf("%dx%d", w.Width, w.Height))
	err = loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	logger.Info("finished", "frames", loop.Frame(), "t", sc.Time())
	return err
}

func runLorenz(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "lorenz")
	if err != nil {
		return err
	}
	att, err := scene.NewAttractor(cfg.Lorenz)
	if err != nil {
		return err
	}
	if err := applyParams(att); err != nil {
		return err
	}
	logger.Debug("attractor", "model", cfg.Lorenz.Model, "trajectories", len(cfg.Lorenz.Trajectories), "substeps", cfg.Lorenz.Substeps)
	return runScene(cfg.Lorenz.Window, cfg.Lorenz.FrameDelayMs, att)
}

func runPendulum(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "pendulum")
	if err != nil {
		return err
	}
	p := scene.NewPendulum(cfg.Pendulum)
	if err := applyParams(p); err != nil {
		return err
	}
	drift := metrics.NewEnergyDrift(p.System)

	err = runScene(cfg.Pendulum.Window, cfg.Pendulum.FrameDelayMs, p, sim.WithObserver(drift))
	logger.Debug("energy", "initial", drift.Initial(), "current", drift.Current(), "max_drift", drift.Value())
	return err
}

func runDiverge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "lorenz")
	if err != nil {
		return err
	}
	lc := cfg.Lorenz
	if len(lc.Trajectories) < 2 {
		return fmt.Errorf("diverge needs at least two trajectories, got %d", len(lc.Trajectories))
	}

	att, err := scene.NewAttractor(lc)
	if err != nil {
		return err
	}
	if err := applyParams(att); err != nil {
		return err
	}
	x0 := att.States()[0].Clone()

	var div analysis.Divergence
	div.Start(att.States())
	start := time.Now()
	if err := sim.Headless(cmd.Context(), att, divFrames, &div); err != nil {
		return err
	}
	logger.Debug("integrated", "frames", divFrames, "elapsed", time.Since(start))

	fmt.Printf("%s: %d trajectories, %d frames x %d substeps (dt=%g)\n\n", lc.Model, len(lc.Trajectories), divFrames, lc.Substeps, lc.Dt)
	for i := 1; i < len(div.Series); i++ {
		graph := asciigraph.Plot(div.Log10(i, 1e-12),
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("log10 |x%d - x0| per frame", i)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	fmt.Printf("%-12s  %-14s  %-14s\n", "trajectory", "final_sep", "growth")
	fmt.Println(strings.Repeat("-", 44))
	for i := 1; i < len(div.Series); i++ {
		s := div.Series[i]
		fmt.Printf("%-12d  %14.6e  %14.6e\n", i, s[len(s)-1], div.Growth(i))
	}

	duration := float64(divFrames*lc.Substeps) * lc.Dt
	lambda := analysis.LyapunovExponent(att.System, att.Integrator, x0, lc.Dt, duration, perturb)
	fmt.Printf("\nlargest Lyapunov exponent ~ %.4f (over %.1f time units)\n", lambda, duration)
	return nil
}

func runEnergy(cmd *cobra.Command, args []string) error {
	if allPresets {
		return compareEnergy(cmd.Context())
	}

	cfg, err := loadConfig(cmd, "pendulum")
	if err != nil {
		return err
	}
	p := scene.NewPendulum(cfg.Pendulum)
	if err := applyParams(p); err != nil {
		return err
	}
	drift := metrics.NewEnergyDrift(p.System)
	drift.Observe(p.State())

	if err := sim.Headless(cmd.Context(), p, nrgFrames, drift); err != nil {
		var simErr *dynamo.SimulationError
		if !errors.As(err, &simErr) {
			return err
		}
		logger.Warn("stopped early", "step", simErr.Step, "t", simErr.Time, "err", simErr.Wrapped)
	}

	graph := asciigraph.Plot(drift.History(),
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("relative energy drift |E - E0| / |E0|"),
	)
	fmt.Println(graph)
	fmt.Printf("\nE0=%.6g  E=%.6g  max drift=%.3e over %d samples\n", drift.Initial(), drift.Current(), drift.Value(), drift.Samples())
	return nil
}

func compareEnergy(ctx context.Context) error {
	names := config.ListPresets("pendulum")
	drifts := make([]*metrics.EnergyDrift, len(names))
	jobs := make([]sim.Job, len(names))
	for i, name := range names {
		p := scene.NewPendulum(config.GetPreset("pendulum", name).Pendulum)
		if err := applyParams(p); err != nil {
			return err
		}
		drifts[i] = metrics.NewEnergyDrift(p.System)
		drifts[i].Observe(p.State())
		jobs[i] = sim.Job{Scene: p, Observers: []sim.Observer{drifts[i]}}
	}

	err := sim.HeadlessAll(ctx, nrgFrames, jobs...)

	fmt.Printf("%-12s  %-14s  %-10s\n", "preset", "max_drift", "samples")
	fmt.Println(strings.Repeat("-", 40))
	for i, name := range names {
		fmt.Printf("%-12s  %14.6e  %10d\n", name, drifts[i].Value(), drifts[i].Samples())
	}
	if err != nil && !errors.Is(err, dynamo.ErrNumericDegeneracy) {
		return err
	}
	return nil
}
