package analysis

import (
	"math"

	"github.com/san-kum/dynviz/internal/dynamo"
)

// LyapunovExponent estimates the largest Lyapunov exponent by following
// a reference trajectory and a copy displaced by perturbation along the
// first coordinate. After every step the separation is measured and the
// copy is pulled back to the initial distance along the same direction:
//
//	λ ≈ (1/T) Σ ln(d_i / d_0)
//
// A positive value indicates sensitive dependence on initial conditions.
func LyapunovExponent(
	sys dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	dt, duration float64,
	perturbation float64,
) float64 {
	if len(x0) == 0 || dt <= 0 || perturbation <= 0 {
		return 0
	}

	x := x0.Clone()
	xp := x0.Clone()
	xp[0] += perturbation

	steps := int(duration / dt)
	if steps == 0 {
		return 0
	}

	t := 0.0
	sumLog := 0.0
	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, t, dt)
		xp = integ.Step(sys, xp, t, dt)
		t += dt

		d := x.Distance(xp)
		if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			continue
		}
		sumLog += math.Log(d / perturbation)

		scale := perturbation / d
		diff := xp.Sub(x)
		for j := range diff {
			diff[j] = x[j] + diff[j]*scale
		}
		xp = diff
	}

	return sumLog / (float64(steps) * dt)
}
