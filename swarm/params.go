// Package swarm holds the rat steering rules: the flocking step and the
// distance-driven parameter ramp. Everything here is pure computation over
// plain values; the ECS systems own scheduling and state.
package swarm

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownParam = errors.New("swarm: unknown parameter")
	ErrInvalidRamp  = errors.New("swarm: invalid ramp config")
)

// Param identifies one tunable slot on an agent.
type Param int

const (
	ParamSpeed Param = iota + 1
	ParamCohesion
	ParamAlignment
	ParamSeparation
	ParamSeparationDistance
	ParamGravity
	ParamFollow
)

var paramNames = map[Param]string{
	ParamSpeed:              "speed",
	ParamCohesion:           "cohesionStrength",
	ParamAlignment:          "alignmentStrength",
	ParamSeparation:         "separationStrength",
	ParamSeparationDistance: "separationDistance",
	ParamGravity:            "gravityStrength",
	ParamFollow:             "followStrength",
}

// paramLookup also accepts the short slider names and the old mouse-follow
// field name.
var paramLookup = map[string]Param{
	"speed":               ParamSpeed,
	"cohesionStrength":    ParamCohesion,
	"cohesion":            ParamCohesion,
	"alignmentStrength":   ParamAlignment,
	"alignment":           ParamAlignment,
	"separationStrength":  ParamSeparation,
	"separation":          ParamSeparation,
	"separationDistance":  ParamSeparationDistance,
	"gravityStrength":     ParamGravity,
	"gravity":             ParamGravity,
	"followStrength":      ParamFollow,
	"followMouseStrength": ParamFollow,
	"follow":              ParamFollow,
}

// ParseParam resolves a parameter name to its slot.
func ParseParam(name string) (Param, error) {
	p, ok := paramLookup[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return p, nil
}

func (p Param) String() string {
	if name, ok := paramNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Param(%d)", int(p))
}

// AllParams returns every parameter in declaration order.
func AllParams() []Param {
	out := make([]Param, 0, len(paramNames))
	for p := range paramNames {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Params is the set of per-agent tunables.
type Params struct {
	Speed              float64 `yaml:"speed"`
	CohesionStrength   float64 `yaml:"cohesion_strength"`
	AlignmentStrength  float64 `yaml:"alignment_strength"`
	SeparationStrength float64 `yaml:"separation_strength"`
	SeparationDistance float64 `yaml:"separation_distance"`
	GravityStrength    float64 `yaml:"gravity_strength"`
	FollowStrength     float64 `yaml:"follow_strength"`
}

func DefaultParams() Params {
	return Params{
		Speed:              5,
		CohesionStrength:   1,
		AlignmentStrength:  1,
		SeparationStrength: 1,
		SeparationDistance: 1,
		GravityStrength:    9.8,
		FollowStrength:     2,
	}
}

// Slot returns the storage for p, or nil if p is not a known parameter.
func (ps *Params) Slot(p Param) *float64 {
	if ps == nil {
		return nil
	}
	switch p {
	case ParamSpeed:
		return &ps.Speed
	case ParamCohesion:
		return &ps.CohesionStrength
	case ParamAlignment:
		return &ps.AlignmentStrength
	case ParamSeparation:
		return &ps.SeparationStrength
	case ParamSeparationDistance:
		return &ps.SeparationDistance
	case ParamGravity:
		return &ps.GravityStrength
	case ParamFollow:
		return &ps.FollowStrength
	}
	return nil
}

func (ps *Params) Get(name string) (float64, error) {
	p, err := ParseParam(name)
	if err != nil {
		return 0, err
	}
	return *ps.Slot(p), nil
}

func (ps *Params) Set(name string, value float64) error {
	p, err := ParseParam(name)
	if err != nil {
		return err
	}
	*ps.Slot(p) = value
	return nil
}

// BulkSetter overwrites one parameter on every agent in a population.
type BulkSetter interface {
	SetAll(name string, value float64) error
}
