package scene

import (
	"math"

	"github.com/san-kum/dynviz/internal/config"
	"github.com/san-kum/dynviz/internal/dynamo"
	"github.com/san-kum/dynviz/internal/integrators"
	"github.com/san-kum/dynviz/internal/physics"
	"github.com/san-kum/dynviz/internal/projection"
	"github.com/san-kum/dynviz/internal/surface"
)

// Pendulum advances a double pendulum by one semi-implicit step per
// frame and draws it as two rods with square bobs.
type Pendulum struct {
	System     *physics.DoublePendulum
	Integrator *integrators.SemiImplicitEuler
	Kinematics projection.Kinematics
	Dt         float64
	BobSize    int

	Background, Rod, Bob1, Bob2 surface.Color

	initial dynamo.State
	state   dynamo.State
	t       float64
	steps   int
}

func NewPendulum(cfg config.PendulumConfig) *Pendulum {
	ox, oy := cfg.Origin()
	sys := &physics.DoublePendulum{M1: cfg.M1, M2: cfg.M2, L1: cfg.L1, L2: cfg.L2, Gravity: cfg.Gravity}
	x0 := dynamo.State{cfg.Theta1, cfg.Theta2, cfg.P1, cfg.P2}

	return &Pendulum{
		System:     sys,
		Integrator: &integrators.SemiImplicitEuler{Threshold: cfg.DegeneracyThreshold},
		Kinematics: projection.Kinematics{OriginX: ox, OriginY: oy, L1: cfg.L1, L2: cfg.L2},
		Dt:         cfg.Dt,
		BobSize:    cfg.BobSize,
		Background: surface.Black,
		Rod:        surface.White,
		Bob1:       surface.Red,
		Bob2:       surface.Blue,
		initial:    x0,
		state:      x0.Clone(),
	}
}

// State returns [theta1, theta2, p1, p2].
func (p *Pendulum) State() dynamo.State { return p.state }

func (p *Pendulum) States() []dynamo.State { return []dynamo.State{p.state} }

func (p *Pendulum) Time() float64 { return p.t }

// SetState replaces the current state.
func (p *Pendulum) SetState(x dynamo.State) { p.state = x.Clone() }

// Advance takes one step. When the integrator's degeneracy guard trips
// the state is left unchanged and a *dynamo.SimulationError is returned.
func (p *Pendulum) Advance() error {
	next, err := p.Integrator.StepChecked(p.System, p.state, p.t, p.Dt)
	if err != nil {
		return &dynamo.SimulationError{Step: p.steps, Time: p.t, State: p.state.Clone(), Wrapped: err}
	}
	p.state = next
	p.t += p.Dt
	p.steps++
	return nil
}

func (p *Pendulum) Draw(s surface.Surface) {
	s.SetDrawColor(p.Background)
	s.Clear()
	if !p.state.IsValid() {
		return
	}

	o := p.Kinematics.Origin()
	b1, b2 := p.Kinematics.Bobs(p.state[0], p.state[1])

	s.SetDrawColor(p.Rod)
	s.DrawLine(int(o.X), int(o.Y), int(b1.X), int(b1.Y))
	s.DrawLine(int(b1.X), int(b1.Y), int(b2.X), int(b2.Y))

	half := p.BobSize / 2
	s.SetDrawColor(p.Bob1)
	s.FillRect(int(b1.X)-half, int(b1.Y)-half, p.BobSize, p.BobSize)
	s.SetDrawColor(p.Bob2)
	s.FillRect(int(b2.X)-half, int(b2.Y)-half, p.BobSize, p.BobSize)
}

// HandleEvent swings the upper rod towards the pointer and releases the
// pendulum from rest. "r" restores the initial state.
func (p *Pendulum) HandleEvent(ev surface.Event) {
	switch ev.Kind {
	case surface.EventPointerDown:
		dx := float64(ev.X) - p.Kinematics.OriginX
		dy := float64(ev.Y) - p.Kinematics.OriginY
		if dx == 0 && dy == 0 {
			return
		}
		p.state[0] = math.Atan2(dx, dy)
		p.state[2], p.state[3] = 0, 0
	case surface.EventKeyDown:
		if ev.Key == "r" {
			p.state = p.initial.Clone()
			p.t = 0
			p.steps = 0
		}
	}
}
