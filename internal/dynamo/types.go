package dynamo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	if len(s) == 0 {
		return 0
	}
	return floats.Norm(s, 2)
}

// Distance is the Euclidean distance between two states of equal length.
func (s State) Distance(other State) float64 {
	if len(s) != len(other) {
		panic(ErrDimensionMismatch)
	}
	if len(s) == 0 {
		return 0
	}
	return floats.Distance(s, other, 2)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// Split returns the position and momentum halves of a state laid out as
// [q..., p...]. Both halves alias s.
func (s State) Split() (q, p State) {
	half := len(s) / 2
	return s[:half], s[half:]
}

type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Separable is a system whose state is [q..., p...] and whose position
// rate depends only on the momenta it is handed.
type Separable interface {
	System
	Force(q, p State, t float64) State
	Velocity(q, p State) State
}

type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
