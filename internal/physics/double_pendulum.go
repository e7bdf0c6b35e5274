package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/dynviz/internal/dynamo"
)

const (
	DefaultBobMass   = 10.0
	DefaultRodLength = 150.0
	DefaultGravity   = 9.81
)

// DoublePendulum is a two-link pendulum with point masses.
// State: [theta1, theta2, p1, p2]. Angles are measured from straight
// down and never wrapped; p1 and p2 are the generalized momenta, which
// advance the angles directly.
type DoublePendulum struct {
	M1, M2  float64
	L1, L2  float64
	Gravity float64
}

func NewDoublePendulum() *DoublePendulum {
	return &DoublePendulum{
		M1: DefaultBobMass, M2: DefaultBobMass,
		L1: DefaultRodLength, L2: DefaultRodLength,
		Gravity: DefaultGravity,
	}
}

func (d *DoublePendulum) StateDim() int { return 4 }

// Accelerations returns the momentum rates for both links. The shared
// denominator term is not guarded; it can approach zero and the result
// then grows without bound.
func (d *DoublePendulum) Accelerations(theta1, theta2, p1, p2 float64) (float64, float64) {
	m1, m2, l1, l2, g := d.M1, d.M2, d.L1, d.L2, d.Gravity

	sinDiff := math.Sin(theta1 - theta2)
	cosDiff := math.Cos(theta1 - theta2)

	coupling := 2*m1 + m2 - m2*math.Cos(2*theta1-2*theta2)
	den1 := l1 * coupling
	den2 := l2 * coupling

	acc1 := (-g*(2*m1+m2)*math.Sin(theta1) -
		m2*g*math.Sin(theta1-2*theta2) -
		2*sinDiff*m2*(p2*p2*l2+p1*p1*l1*cosDiff)) / den1

	acc2 := (2 * sinDiff * (p1*p1*l1*(m1+m2) +
		g*(m1+m2)*math.Cos(theta1) +
		p2*p2*l2*m2*cosDiff)) / den2

	return acc1, acc2
}

func (d *DoublePendulum) Force(q, p dynamo.State, _ float64) dynamo.State {
	a1, a2 := d.Accelerations(q[0], q[1], p[0], p[1])
	return dynamo.State{a1, a2}
}

func (d *DoublePendulum) Velocity(_, p dynamo.State) dynamo.State {
	return dynamo.State{p[0], p[1]}
}

func (d *DoublePendulum) Derive(x dynamo.State, t float64) dynamo.State {
	q, p := x.Split()
	f := d.Force(q, p, t)
	return dynamo.State{p[0], p[1], f[0], f[1]}
}

func (d *DoublePendulum) Energy(x dynamo.State) float64 {
	theta1, theta2, omega1, omega2 := x[0], x[1], x[2], x[3]
	m1, m2, l1, l2, g := d.M1, d.M2, d.L1, d.L2, d.Gravity

	v1sq := l1 * l1 * omega1 * omega1
	v2sq := l1*l1*omega1*omega1 + l2*l2*omega2*omega2 +
		2*l1*l2*omega1*omega2*math.Cos(theta1-theta2)

	ke := 0.5*m1*v1sq + 0.5*m2*v2sq
	y1 := -l1 * math.Cos(theta1)
	y2 := y1 - l2*math.Cos(theta2)
	pe := m1*g*y1 + m2*g*y2

	return ke + pe
}

func (d *DoublePendulum) DefaultState() dynamo.State {
	return dynamo.State{math.Pi / 2, math.Pi / 2, 0, 0}
}

func (d *DoublePendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"m1": d.M1, "m2": d.M2,
		"l1": d.L1, "l2": d.L2,
		"gravity": d.Gravity,
	}
}

func (d *DoublePendulum) SetParam(name string, value float64) error {
	switch name {
	case "m1":
		d.M1 = value
	case "m2":
		d.M2 = value
	case "l1":
		d.L1 = value
	case "l2":
		d.L2 = value
	case "gravity":
		d.Gravity = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
