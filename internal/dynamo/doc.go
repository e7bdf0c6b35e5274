// Package dynamo provides the core primitives shared by every simulation.
//
// The package defines the state vector and the contracts that connect a
// dynamical model to a numerical integrator:
//
//   - [State]: vector representing the system configuration at an instant
//   - [System]: the dynamics model (dX/dt = f(X, t))
//   - [Separable]: systems split into positions and momenta
//   - [Integrator]: advances a state by one fixed time step
//
// # Example
//
//	lor := physics.NewLorenz()
//	euler := integrators.NewEuler()
//	x := dynamo.State{0.01, 0, 0}
//	for i := 0; i < 100; i++ {
//	    x = euler.Step(lor, x, 0, 0.01)
//	}
//
// # Thread Safety
//
// Nothing in this package is synchronized. A simulation is owned by a
// single loop goroutine for its whole lifetime.
package dynamo
