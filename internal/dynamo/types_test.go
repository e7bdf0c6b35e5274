package dynamo

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, 2.0, 3.0}, true},
		{"zeros", State{0.0, 0.0}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
		{"with -Inf", State{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.state.IsValid())
		})
	}
}

func TestState_Norm(t *testing.T) {
	tests := []struct {
		state    State
		expected float64
	}{
		{State{3, 4}, 5.0},
		{State{1, 0}, 1.0},
		{State{0, 0}, 0.0},
		{State{1, 1, 1, 1}, 2.0},
		{State{}, 0.0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, tt.state.Norm(), 1e-10, "Norm(%v)", tt.state)
	}
}

func TestState_Distance(t *testing.T) {
	a := State{0.01, 0, 0}
	b := State{0.02, 0, 0}
	assert.InDelta(t, 0.01, a.Distance(b), 1e-15)
	assert.Equal(t, a.Distance(b), b.Distance(a))

	assert.PanicsWithValue(t, ErrDimensionMismatch, func() {
		State{1, 2}.Distance(State{1})
	})
}

func TestState_CloneIsIndependent(t *testing.T) {
	src := State{1, 2, 3}
	c := src.Clone()
	c[0] = 99
	assert.Equal(t, 1.0, src[0])
}

func TestState_Split(t *testing.T) {
	s := State{1, 2, 3, 4}
	q, p := s.Split()
	assert.Equal(t, State{1, 2}, q)
	assert.Equal(t, State{3, 4}, p)

	p[0] = 30
	assert.Equal(t, 30.0, s[2], "halves alias the state")
}

func TestState_Sub(t *testing.T) {
	diff := State{4, 5, 6}.Sub(State{1, 2, 3})
	assert.Equal(t, State{3, 3, 3}, diff)
}

func TestSimError(t *testing.T) {
	err := SimError{Time: 1.5, Step: 150, Message: "test error"}
	assert.Equal(t, "step 150 (t=1.5000): test error", err.Error())
}

func TestSimulationError_Unwrap(t *testing.T) {
	var err error = &SimulationError{Step: 3, Time: 0.03, Wrapped: ErrNumericDegeneracy}
	wrapped := fmt.Errorf("pendulum: %w", err)

	require.ErrorIs(t, wrapped, ErrNumericDegeneracy)

	var simErr *SimulationError
	require.True(t, errors.As(wrapped, &simErr))
	assert.Equal(t, 3, simErr.Step)
	assert.Contains(t, err.Error(), "step 3")
}
