package swarm

import (
	"fmt"

	"github.com/milk9111/ratswarm/common"
)

// RampConfig adjusts one agent parameter at a rate driven by the agent's
// distance to the target point.
type RampConfig struct {
	Parameter     string
	CloseDistance float64
	FarDistance   float64
	MaxChangeRate float64
	MinChangeRate float64
	MinValue      float64
	MaxValue      float64
}

// NewRampConfig returns a config for parameter with the default [0, 10]
// value bounds.
func NewRampConfig(parameter string) RampConfig {
	return RampConfig{Parameter: parameter, MinValue: 0, MaxValue: 10}
}

// Validate rejects configs whose thresholds or bounds are inverted or
// whose parameter does not exist.
func (c RampConfig) Validate() error {
	if _, err := ParseParam(c.Parameter); err != nil {
		return err
	}
	if c.FarDistance <= c.CloseDistance {
		return fmt.Errorf("%w: far distance %g must exceed close distance %g", ErrInvalidRamp, c.FarDistance, c.CloseDistance)
	}
	if c.MaxValue < c.MinValue {
		return fmt.Errorf("%w: max value %g below min value %g", ErrInvalidRamp, c.MaxValue, c.MinValue)
	}
	return nil
}

// Rate maps a distance to a change rate. Inside the close threshold the
// rate is MaxChangeRate, beyond the far threshold it is MinChangeRate, and
// between them it is linearly interpolated. With far <= close the ramp
// collapses to a step at the close threshold.
func (c RampConfig) Rate(distance float64) float64 {
	if distance <= c.CloseDistance {
		return c.MaxChangeRate
	}
	if distance >= c.FarDistance {
		return c.MinChangeRate
	}
	span := c.FarDistance - c.CloseDistance
	if span <= 0 {
		return c.MinChangeRate
	}
	t := (distance - c.CloseDistance) / span
	return common.Lerp(c.MaxChangeRate, c.MinChangeRate, t)
}

// Bind validates the config and resolves its parameter slot once, so the
// per-tick path never looks names up.
func (c RampConfig) Bind() (*Binding, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	p, _ := ParseParam(c.Parameter)
	return &Binding{Config: c, Param: p}, nil
}

// Binding is a validated RampConfig with its parameter resolved.
type Binding struct {
	Config RampConfig
	Param  Param
}

// Apply adds rate*dt to the bound parameter, clamps it to the configured
// bounds and returns the stored value.
func (b *Binding) Apply(ps *Params, rate, dt float64) float64 {
	slot := ps.Slot(b.Param)
	*slot = common.Clamp(*slot+rate*dt, b.Config.MinValue, b.Config.MaxValue)
	return *slot
}

// Apply is the unbound form of Binding.Apply. It resolves the parameter by
// name and fails with ErrUnknownParam if the agent has no such parameter.
func Apply(a *Agent, c RampConfig, rate, dt float64) (float64, error) {
	p, err := ParseParam(c.Parameter)
	if err != nil {
		return 0, err
	}
	b := Binding{Config: c, Param: p}
	return b.Apply(&a.Params, rate, dt), nil
}
