package scene

import (
	"fmt"
	"sort"

	"github.com/san-kum/dynviz/internal/dynamo"
)

// setParams applies params to sys in name order.
func setParams(sys dynamo.System, params map[string]float64) error {
	if len(params) == 0 {
		return nil
	}
	c, ok := sys.(dynamo.Configurable)
	if !ok {
		return fmt.Errorf("%T has no tunable parameters", sys)
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := c.SetParam(name, params[name]); err != nil {
			return err
		}
	}
	return nil
}

// SetParams overrides parameters of the attractor's system. Running
// trajectories keep their state.
func (a *Attractor) SetParams(params map[string]float64) error {
	return setParams(a.System, params)
}

// Params reports the system's current parameters, or nil when it has none.
func (a *Attractor) Params() map[string]float64 {
	if c, ok := a.System.(dynamo.Configurable); ok {
		return c.GetParams()
	}
	return nil
}

// SetParams overrides pendulum parameters. Rod lengths are also applied to
// the drawing so the bobs stay where the dynamics put them.
func (p *Pendulum) SetParams(params map[string]float64) error {
	if err := setParams(p.System, params); err != nil {
		return err
	}
	p.Kinematics.L1, p.Kinematics.L2 = p.System.L1, p.System.L2
	return nil
}
