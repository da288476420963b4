package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/ratswarm/swarm"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SwarmSpec describes the population and the arena it runs in.
type SwarmSpec struct {
	Population int        `yaml:"population"`
	Seed       int64      `yaml:"seed"`
	Workers    int        `yaml:"workers"`
	GridCell   float64    `yaml:"grid_cell"`
	Spawn      BoundsSpec `yaml:"spawn"`
	Bounds     BoundsSpec `yaml:"bounds"`
	Target     TargetSpec `yaml:"target"`
}

type BoundsSpec struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

// TargetSpec picks where the swarm's target point comes from.
type TargetSpec struct {
	Source string    `yaml:"source"`
	Script string    `yaml:"script"`
	Noise  NoiseSpec `yaml:"noise"`
	Fixed  PointSpec `yaml:"fixed"`
}

type NoiseSpec struct {
	Seed      int64   `yaml:"seed"`
	Frequency float64 `yaml:"frequency"`
	CenterX   float64 `yaml:"center_x"`
	CenterY   float64 `yaml:"center_y"`
	ExtentX   float64 `yaml:"extent_x"`
	ExtentY   float64 `yaml:"extent_y"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func LoadSwarmSpec() (*SwarmSpec, error) {
	spec, err := LoadSpec[SwarmSpec]("swarm.yaml")
	if err != nil {
		return nil, err
	}
	if spec.Population < 0 {
		return nil, fmt.Errorf("prefabs: swarm.yaml: population %d is negative", spec.Population)
	}
	if spec.GridCell <= 0 {
		spec.GridCell = 1
	}
	if spec.Workers <= 0 {
		spec.Workers = 1
	}
	return &spec, nil
}

// RampSpec is the on-disk form of a swarm.RampConfig. The value bounds are
// optional and default to [0, 10].
type RampSpec struct {
	Parameter     string   `yaml:"parameter"`
	CloseDistance float64  `yaml:"close_distance"`
	FarDistance   float64  `yaml:"far_distance"`
	MaxChangeRate float64  `yaml:"max_change_rate"`
	MinChangeRate float64  `yaml:"min_change_rate"`
	MinValue      *float64 `yaml:"min_value"`
	MaxValue      *float64 `yaml:"max_value"`
}

func (s RampSpec) Config() swarm.RampConfig {
	c := swarm.NewRampConfig(s.Parameter)
	c.CloseDistance = s.CloseDistance
	c.FarDistance = s.FarDistance
	c.MaxChangeRate = s.MaxChangeRate
	c.MinChangeRate = s.MinChangeRate
	if s.MinValue != nil {
		c.MinValue = *s.MinValue
	}
	if s.MaxValue != nil {
		c.MaxValue = *s.MaxValue
	}
	return c
}

// LoadRamp reads a ramp prefab by name and returns its raw config together
// with the binding. The config is returned even when binding fails so the
// caller can still apply it by name and surface the error per tick.
func LoadRamp(name string) (swarm.RampConfig, *swarm.Binding, error) {
	spec, err := LoadSpec[RampSpec](RampPath(name))
	if err != nil {
		return swarm.RampConfig{}, nil, err
	}
	cfg := spec.Config()
	b, err := cfg.Bind()
	if err != nil {
		return cfg, nil, fmt.Errorf("prefabs: ramp %s: %w", name, err)
	}
	return cfg, b, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
