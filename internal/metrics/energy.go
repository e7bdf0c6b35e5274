package metrics

import (
	"math"

	"github.com/san-kum/dynviz/internal/dynamo"
)

// EnergyDrift tracks the relative deviation of a Hamiltonian system's
// energy from its first observed value.
type EnergyDrift struct {
	name          string
	sys           dynamo.Hamiltonian
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
	history       []float64
}

func NewEnergyDrift(sys dynamo.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		sys:  sys,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State) {
	energy := e.sys.Energy(x)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.currentEnergy = energy
	e.samples++

	drift := 0.0
	if e.initialEnergy != 0 {
		drift = math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
	e.history = append(e.history, drift)
}

// OnFrame observes the first state of every frame, so EnergyDrift can be
// attached to a sim.Loop directly.
func (e *EnergyDrift) OnFrame(_ int, _ float64, states []dynamo.State) {
	if len(states) > 0 {
		e.Observe(states[0])
	}
}

// Value returns the maximum relative drift seen so far.
func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Initial() float64 { return e.initialEnergy }
func (e *EnergyDrift) Current() float64 { return e.currentEnergy }
func (e *EnergyDrift) Samples() int     { return e.samples }

// History returns the relative drift of every observation.
func (e *EnergyDrift) History() []float64 { return e.history }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
	e.history = nil
}
