package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/san-kum/dynviz/internal/dynamo"
	"github.com/san-kum/dynviz/internal/integrators"
	"github.com/san-kum/dynviz/internal/physics"
)

type scaled struct{}

func (scaled) Energy(x dynamo.State) float64 { return x[0] }

func TestEnergyDriftTracksMaximum(t *testing.T) {
	m := NewEnergyDrift(scaled{})
	assert.Equal(t, "energy_drift", m.Name())

	m.Observe(dynamo.State{10})
	m.Observe(dynamo.State{12})
	m.Observe(dynamo.State{9})

	assert.Equal(t, 10.0, m.Initial())
	assert.Equal(t, 9.0, m.Current())
	assert.Equal(t, 3, m.Samples())
	assert.InDelta(t, 0.2, m.Value(), 1e-12)
	assert.InDeltaSlice(t, []float64{0, 0.2, 0.1}, m.History(), 1e-12)
}

func TestEnergyDriftZeroInitialEnergy(t *testing.T) {
	m := NewEnergyDrift(scaled{})
	m.Observe(dynamo.State{0})
	m.Observe(dynamo.State{5})
	assert.Zero(t, m.Value())
}

func TestEnergyDriftReset(t *testing.T) {
	m := NewEnergyDrift(scaled{})
	m.OnFrame(0, 0, []dynamo.State{{1}})
	m.OnFrame(1, 0, []dynamo.State{{2}})
	assert.NotZero(t, m.Value())

	m.Reset()
	assert.Zero(t, m.Value())
	assert.Zero(t, m.Samples())
	assert.Empty(t, m.History())

	m.OnFrame(0, 0, nil)
	assert.Zero(t, m.Samples())
}

func TestEnergyDriftSemiImplicitPendulum(t *testing.T) {
	sys := physics.NewDoublePendulum()
	integ := integrators.NewSemiImplicitEuler()
	m := NewEnergyDrift(sys)

	x := dynamo.State{math.Pi / 4, math.Pi / 4, 0, 0}
	m.Observe(x)
	for i := 0; i < 2000; i++ {
		x = integ.Step(sys, x, 0, 0.001)
		m.Observe(x)
	}

	assert.True(t, x.IsValid())
	assert.Less(t, m.Value(), 0.05)
}
