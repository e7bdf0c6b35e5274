package integrators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/dynviz/internal/dynamo"
	"github.com/san-kum/dynviz/internal/physics"
)

// recordingPendulum delegates to a real double pendulum and records the
// momenta handed to each stage.
type recordingPendulum struct {
	*physics.DoublePendulum
	forceP    dynamo.State
	forceOut  dynamo.State
	velocityP dynamo.State
}

func (r *recordingPendulum) Force(q, p dynamo.State, t float64) dynamo.State {
	r.forceP = p.Clone()
	r.forceOut = r.DoublePendulum.Force(q, p, t)
	return r.forceOut
}

func (r *recordingPendulum) Velocity(q, p dynamo.State) dynamo.State {
	r.velocityP = p.Clone()
	return r.DoublePendulum.Velocity(q, p)
}

func TestSemiImplicitUpdatesMomentumFirst(t *testing.T) {
	rec := &recordingPendulum{DoublePendulum: &physics.DoublePendulum{
		M1: 10, M2: 10, L1: 150, L2: 150, Gravity: 9.81,
	}}
	dt := 0.01
	x0 := dynamo.State{math.Pi / 2, math.Pi / 2, 0, 0}

	next := NewSemiImplicitEuler().Step(rec, x0, 0, dt)

	require.NotNil(t, rec.velocityP)
	assert.Equal(t, dynamo.State{0, 0}, rec.forceP, "accelerations use pre-step momenta")

	wantP := dynamo.State{0 + rec.forceOut[0]*dt, 0 + rec.forceOut[1]*dt}
	assert.Equal(t, wantP, rec.velocityP, "angle update must consume post-acceleration momenta")
	assert.NotEqual(t, rec.forceP, rec.velocityP)

	assert.Equal(t, wantP[0], next[2])
	assert.Equal(t, wantP[1], next[3])
	assert.InDelta(t, math.Pi/2+wantP[0]*dt, next[0], 1e-15)
	assert.InDelta(t, math.Pi/2+wantP[1]*dt, next[1], 1e-15)
}

func TestSemiImplicitDeterministic(t *testing.T) {
	dp := physics.NewDoublePendulum()
	integ := NewSemiImplicitEuler()
	x0 := dynamo.State{1.1, -0.4, 0.2, 0.7}

	a := integ.Step(dp, x0, 0, 0.01)
	b := integ.Step(dp, x0, 0, 0.01)

	assert.Equal(t, a, b)
	assert.Equal(t, dynamo.State{1.1, -0.4, 0.2, 0.7}, x0)
}

func TestSemiImplicitFallbackSplitsDerivative(t *testing.T) {
	// Harmonic oscillator through the generic Derive path:
	// p' = -q, q' = p, so q1 = q0 + dt*(p0 - dt*q0).
	x := NewSemiImplicitEuler().Step(&oscillator{}, dynamo.State{1, 0}, 0, 0.1)
	assert.InDelta(t, -0.1, x[1], 1e-15)
	assert.InDelta(t, 1-0.01, x[0], 1e-15)
}

func TestSemiImplicitBoundedEnergyOnOscillator(t *testing.T) {
	integ := NewSemiImplicitEuler()
	osc := &oscillator{}
	x := dynamo.State{1, 0}
	for i := 0; i < 100000; i++ {
		x = integ.Step(osc, x, 0, 0.01)
	}
	assert.InDelta(t, 0.5, osc.Energy(x), 0.01)
}

func TestStepCheckedThreshold(t *testing.T) {
	dp := &physics.DoublePendulum{M1: 0, M2: 1, L1: 1, L2: 1, Gravity: 9.81}
	x0 := dynamo.State{0.5, 0.5, 0, 0}

	unchecked := NewSemiImplicitEuler()
	next, err := unchecked.StepChecked(dp, x0, 0, 0.01)
	require.NoError(t, err, "zero threshold disables the guard")
	assert.False(t, next.IsValid())

	guarded := &SemiImplicitEuler{Threshold: 1e6}
	kept, err := guarded.StepChecked(dp, x0, 0, 0.01)
	require.ErrorIs(t, err, dynamo.ErrNumericDegeneracy)
	assert.Equal(t, x0, kept)

	_, err = guarded.StepChecked(physics.NewDoublePendulum(), dynamo.State{1, 1, 0, 0}, 0, 0.01)
	assert.NoError(t, err)
}

type oscillator struct{}

func (o *oscillator) StateDim() int { return 2 }
func (o *oscillator) Derive(x dynamo.State, _ float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}
func (o *oscillator) Energy(x dynamo.State) float64 {
	return 0.5 * (x[0]*x[0] + x[1]*x[1])
}
