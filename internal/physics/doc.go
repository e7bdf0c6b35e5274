// Package physics provides the dynamics models driven by the visualizations.
//
// Each model implements [dynamo.System], defining the differential
// equations governing the system's evolution:
//
//   - [Lorenz]: butterfly attractor
//   - [Rossler]: single-scroll attractor sharing the Lorenz projection path
//   - [DoublePendulum]: chaotic two-link pendulum, also [dynamo.Separable]
//
// All models implement [dynamo.Configurable]. Derivatives are pure: the
// same state and parameters always produce the same result.
package physics
