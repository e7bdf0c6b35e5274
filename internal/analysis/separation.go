package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/dynviz/internal/dynamo"
)

// Separation returns the Euclidean distance of every state from the
// first one. The first entry is always zero.
func Separation(states []dynamo.State) []float64 {
	if len(states) == 0 {
		return nil
	}
	out := make([]float64, len(states))
	for i := 1; i < len(states); i++ {
		out[i] = states[0].Distance(states[i])
	}
	return out
}

// Divergence records, frame by frame, how far every trajectory has
// drifted from the first one. It is a sim.Observer.
type Divergence struct {
	Times  []float64
	Series [][]float64

	// Initial holds the separations set by Start, before any frame ran.
	Initial []float64
}

// Start records the separations of states before integration begins.
func (d *Divergence) Start(states []dynamo.State) {
	d.Initial = Separation(states)
}

func (d *Divergence) OnFrame(_ int, t float64, states []dynamo.State) {
	sep := Separation(states)
	for len(d.Series) < len(sep) {
		d.Series = append(d.Series, make([]float64, len(d.Times)))
	}
	for i, v := range sep {
		d.Series[i] = append(d.Series[i], v)
	}
	d.Times = append(d.Times, t)
}

// Log10 returns series i on a log10 scale, with zero distances clamped
// to floor so the result stays finite.
func (d *Divergence) Log10(i int, floor float64) []float64 {
	if i < 0 || i >= len(d.Series) {
		return nil
	}
	out := make([]float64, len(d.Series[i]))
	copy(out, d.Series[i])
	for j, v := range out {
		out[j] = math.Log10(math.Max(v, floor))
	}
	return out
}

// Growth is the ratio of the final separation of series i to the one it
// started from. The start is taken from Initial when Start saw the
// trajectory, otherwise from the first recorded frame. It returns 0 when
// there is nothing to compare or the start is zero.
func (d *Divergence) Growth(i int) float64 {
	if i <= 0 || i >= len(d.Series) || len(d.Series[i]) == 0 {
		return 0
	}
	s := d.Series[i]
	var d0 float64
	switch {
	case i < len(d.Initial):
		d0 = d.Initial[i]
	case len(s) >= 2:
		d0 = s[0]
	}
	if d0 == 0 {
		return 0
	}
	return s[len(s)-1] / d0
}

// Max returns the largest separation reached by any trajectory.
func (d *Divergence) Max() float64 {
	m := 0.0
	for _, s := range d.Series {
		if len(s) > 0 {
			m = math.Max(m, floats.Max(s))
		}
	}
	return m
}
