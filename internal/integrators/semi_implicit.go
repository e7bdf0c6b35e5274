package integrators

import (
	"fmt"
	"math"

	"github.com/san-kum/dynviz/internal/dynamo"
)

// SemiImplicitEuler updates momenta first and then advances positions
// with the momenta it just produced. State layout is [q..., p...].
//
// Threshold bounds the magnitude of any updated momentum in StepChecked;
// zero disables the check. Step never checks.
type SemiImplicitEuler struct {
	Threshold float64
}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

// Step advances x by dt. Systems that are not dynamo.Separable fall back
// to splitting their full derivative, which keeps the same ordering.
func (s *SemiImplicitEuler) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	result := x.Clone()
	q, p := result.Split()

	sep, ok := sys.(dynamo.Separable)
	if !ok {
		sep = splitSystem{sys}
	}

	force := sep.Force(q, p, t)
	for i := range p {
		p[i] += force[i] * dt
	}

	vel := sep.Velocity(q, p)
	for i := range q {
		q[i] += vel[i] * dt
	}

	return result
}

// StepChecked is Step followed by the degeneracy guard.
func (s *SemiImplicitEuler) StepChecked(sys dynamo.System, x dynamo.State, t, dt float64) (dynamo.State, error) {
	next := s.Step(sys, x, t, dt)
	if s.Threshold <= 0 {
		return next, nil
	}

	_, p := next.Split()
	for i, v := range p {
		if math.IsNaN(v) || math.Abs(v) > s.Threshold {
			return x, fmt.Errorf("momentum %d = %g (threshold %g): %w", i, v, s.Threshold, dynamo.ErrNumericDegeneracy)
		}
	}
	return next, nil
}

type splitSystem struct {
	dynamo.System
}

func (s splitSystem) derive(q, p dynamo.State, t float64) dynamo.State {
	x := make(dynamo.State, 0, len(q)+len(p))
	x = append(x, q...)
	x = append(x, p...)
	return s.Derive(x, t)
}

func (s splitSystem) Force(q, p dynamo.State, t float64) dynamo.State {
	_, dp := s.derive(q, p, t).Split()
	return dp
}

func (s splitSystem) Velocity(q, p dynamo.State) dynamo.State {
	dq, _ := s.derive(q, p, 0).Split()
	return dq
}
