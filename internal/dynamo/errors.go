package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInitialization indicates the rendering surface could not be opened.
	ErrInitialization = errors.New("dynamo: rendering surface unavailable")

	// ErrNumericDegeneracy indicates a momentum update exceeded the
	// configured safety threshold or became non-finite.
	ErrNumericDegeneracy = errors.New("dynamo: numeric degeneracy (momentum out of bounds)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrDimensionMismatch indicates mismatched state dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return SimError{Time: e.Time, Step: e.Step, Message: e.Wrapped.Error()}.Error()
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
