package integrators

import "github.com/san-kum/dynviz/internal/dynamo"

// Euler is the explicit forward scheme x + dt*f(x). No stability check
// is made; dt has to be small enough for the model at hand.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	dx := sys.Derive(x, t)
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
