// Package scene holds the per-simulation contexts driven by sim.Loop.
//
// A scene owns its system, integrator, projection and state. Nothing is
// shared between scenes, so several can run side by side in one process.
package scene
