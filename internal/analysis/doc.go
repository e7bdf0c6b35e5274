// Package analysis measures how quickly nearby trajectories diverge.
//
//   - [Separation]: distance of every state from the first
//   - [Divergence]: per-frame separation recorder, usable as a sim.Observer
//   - [LyapunovExponent]: largest Lyapunov exponent via renormalized separation
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda := analysis.LyapunovExponent(sys, integ, x0, dt, duration, 1e-8)
//	if lambda > 0 {
//	    // nearby starts diverge exponentially
//	}
package analysis
