package scene

import (
	"fmt"

	"github.com/san-kum/dynviz/internal/config"
	"github.com/san-kum/dynviz/internal/dynamo"
	"github.com/san-kum/dynviz/internal/integrators"
	"github.com/san-kum/dynviz/internal/physics"
	"github.com/san-kum/dynviz/internal/projection"
	"github.com/san-kum/dynviz/internal/surface"
)

// spawnPalette colours trajectories added with the pointer.
var spawnPalette = []surface.Color{
	surface.RGB(255, 255, 0),
	surface.RGB(0, 255, 255),
	surface.RGB(255, 0, 255),
	surface.White,
	surface.RGB(0, 128, 255),
	surface.RGB(255, 128, 0),
}

// Trajectory is one integrated point of a strange attractor together with
// the screen points it has visited.
type Trajectory struct {
	State dynamo.State
	Color surface.Color

	initial dynamo.State
	trail   []projection.ScreenPoint
}

// Trail returns the recorded projected points, oldest first.
func (tr *Trajectory) Trail() []projection.ScreenPoint { return tr.trail }

// Attractor integrates N independent trajectories of the same system.
// Each Advance performs Substeps explicit Euler steps per trajectory and
// records one projected point per step.
type Attractor struct {
	System      dynamo.System
	Integrator  dynamo.Integrator
	Projection  projection.Affine
	Viewport    projection.Viewport
	Dt          float64
	Substeps    int
	TrailLength int
	Background  surface.Color

	trajectories []*Trajectory
	t            float64
	spawned      int
}

// NewAttractor builds the scene described by cfg. The system is chosen
// by cfg.Model.
func NewAttractor(cfg config.LorenzConfig) (*Attractor, error) {
	var sys dynamo.System
	switch cfg.Model {
	case "", "lorenz":
		sys = &physics.Lorenz{Sigma: cfg.Sigma, Rho: cfg.Rho, Beta: cfg.Beta}
	case "rossler":
		sys = &physics.Rossler{A: cfg.Rossler.A, B: cfg.Rossler.B, C: cfg.Rossler.C}
	default:
		return nil, fmt.Errorf("unknown attractor model %q", cfg.Model)
	}

	bg, err := surface.ParseHex(cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}

	a := &Attractor{
		System:     sys,
		Integrator: integrators.NewEuler(),
		Projection: projection.Affine{
			OffsetX: cfg.Projection.OffsetX,
			OffsetY: cfg.Projection.OffsetY,
			ScaleX:  cfg.Projection.ScaleX,
			ScaleY:  cfg.Projection.ScaleY,
		},
		Viewport:    projection.Viewport{Width: cfg.Window.Width, Height: cfg.Window.Height},
		Dt:          cfg.Dt,
		Substeps:    cfg.Substeps,
		TrailLength: cfg.TrailLength,
		Background:  bg,
	}

	for i, tc := range cfg.Trajectories {
		col, err := surface.ParseHex(tc.Color)
		if err != nil {
			return nil, fmt.Errorf("trajectory %d: %w", i, err)
		}
		a.Add(dynamo.State{tc.X, tc.Y, tc.Z}, col)
	}
	return a, nil
}

// Add appends a trajectory starting at x0.
func (a *Attractor) Add(x0 dynamo.State, col surface.Color) *Trajectory {
	tr := &Trajectory{State: x0.Clone(), Color: col, initial: x0.Clone()}
	a.trajectories = append(a.trajectories, tr)
	return tr
}

func (a *Attractor) Trajectories() []*Trajectory { return a.trajectories }

func (a *Attractor) Time() float64 { return a.t }

// States returns the current state of every trajectory in insertion order.
func (a *Attractor) States() []dynamo.State {
	out := make([]dynamo.State, len(a.trajectories))
	for i, tr := range a.trajectories {
		out[i] = tr.State
	}
	return out
}

func (a *Attractor) Advance() error {
	for i := 0; i < a.Substeps; i++ {
		for _, tr := range a.trajectories {
			tr.State = a.Integrator.Step(a.System, tr.State, a.t, a.Dt)
			tr.record(a.Projection.Project(tr.State[0], tr.State[1], tr.State[2]), a.TrailLength)
		}
		a.t += a.Dt
	}
	return nil
}

func (tr *Trajectory) record(p projection.ScreenPoint, limit int) {
	tr.trail = append(tr.trail, p)
	if limit > 0 && len(tr.trail) > limit {
		tr.trail = tr.trail[len(tr.trail)-limit:]
	}
}

// Draw clears the surface and plots every visible trail point. Points
// outside the viewport are skipped.
func (a *Attractor) Draw(s surface.Surface) {
	s.SetDrawColor(a.Background)
	s.Clear()
	for _, tr := range a.trajectories {
		s.SetDrawColor(tr.Color)
		for _, p := range tr.trail {
			if x, y, ok := a.Viewport.Pixel(p); ok {
				s.DrawPoint(x, y)
			}
		}
	}
}

// HandleEvent spawns a trajectory under the pointer, clears trails on
// "c" and restarts every trajectory on "r".
func (a *Attractor) HandleEvent(ev surface.Event) {
	switch ev.Kind {
	case surface.EventPointerDown:
		x, y, z := a.Projection.Unproject(projection.ScreenPoint{X: float64(ev.X), Y: float64(ev.Y)})
		col := spawnPalette[a.spawned%len(spawnPalette)]
		a.spawned++
		a.Add(dynamo.State{x, y, z}, col)
	case surface.EventKeyDown:
		switch ev.Key {
		case "c":
			for _, tr := range a.trajectories {
				tr.trail = tr.trail[:0]
			}
		case "r":
			for _, tr := range a.trajectories {
				tr.State = tr.initial.Clone()
				tr.trail = tr.trail[:0]
			}
			a.t = 0
		}
	}
}
