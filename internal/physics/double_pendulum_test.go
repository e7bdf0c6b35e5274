package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/dynviz/internal/dynamo"
)

func TestDoublePendulumEquilibrium(t *testing.T) {
	dp := NewDoublePendulum()

	// At rest hanging straight down
	dx := dp.Derive(dynamo.State{0, 0, 0, 0}, 0)

	for i, v := range dx {
		assert.InDelta(t, 0, v, 1e-10, "component %d", i)
	}
}

func TestDoublePendulumDimensions(t *testing.T) {
	assert.Equal(t, 4, NewDoublePendulum().StateDim())
}

func TestDoublePendulumSymmetry(t *testing.T) {
	dp := NewDoublePendulum()

	// Mirrored configurations give mirrored accelerations
	a1, a2 := dp.Accelerations(0.1, 0.1, 0, 0)
	b1, b2 := dp.Accelerations(-0.1, -0.1, 0, 0)

	assert.InDelta(t, 0, a1+b1, 1e-12)
	assert.InDelta(t, 0, a2+b2, 1e-12)
}

func TestDoublePendulumHorizontalStart(t *testing.T) {
	dp := NewDoublePendulum()

	// Both rods horizontal: sin_diff = 0, cos(2θ1-2θ2) = 1.
	a1, a2 := dp.Accelerations(math.Pi/2, math.Pi/2, 0, 0)

	m1, m2, g, l := 10.0, 10.0, 9.81, 150.0
	den := l * (2*m1 + m2 - m2)
	want1 := (-g*(2*m1+m2)*1 - m2*g*math.Sin(math.Pi/2-math.Pi)) / den

	assert.InDelta(t, want1, a1, 1e-12)
	assert.InDelta(t, 0, a2, 1e-12)
}

func TestDoublePendulumVelocityIsMomentum(t *testing.T) {
	dp := NewDoublePendulum()
	v := dp.Velocity(dynamo.State{1, 2}, dynamo.State{0.3, -0.4})
	assert.Equal(t, dynamo.State{0.3, -0.4}, v)
}

func TestDoublePendulumDegenerateDenominator(t *testing.T) {
	// With m1 = 0 the denominator vanishes when θ1 = θ2 and the division
	// is left to propagate.
	dp := &DoublePendulum{M1: 0, M2: 1, L1: 1, L2: 1, Gravity: 9.81}
	a1, _ := dp.Accelerations(0.5, 0.5, 0, 0)
	assert.True(t, math.IsInf(a1, 0) || math.IsNaN(a1))
}

func TestDoublePendulumEnergyAtRest(t *testing.T) {
	dp := NewDoublePendulum()
	e := dp.Energy(dynamo.State{0, 0, 0, 0})
	want := -(10*9.81*150 + 10*9.81*300.0)
	assert.InDelta(t, want, e, 1e-9)
}

func TestDoublePendulumParams(t *testing.T) {
	dp := NewDoublePendulum()
	require.NoError(t, dp.SetParam("l2", 80))
	assert.Equal(t, 80.0, dp.GetParams()["l2"])
	assert.Error(t, dp.SetParam("l3", 1))
}
