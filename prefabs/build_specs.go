package prefabs

import (
	"fmt"

	"github.com/milk9111/ratswarm/swarm"
	"gopkg.in/yaml.v3"
)

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// RatComponentSpec seeds a rat's tunables. Params missing from the yaml keep
// their swarm.DefaultParams value.
type RatComponentSpec struct {
	HeadingX float64      `yaml:"heading_x"`
	HeadingY float64      `yaml:"heading_y"`
	Color    *YAMLColor   `yaml:"color"`
	Params   swarm.Params `yaml:"params"`
}

type PhysicsBodyComponentSpec struct {
	Radius     float64 `yaml:"radius"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
}

type DistanceRampComponentSpec struct {
	Ramp string `yaml:"ramp"`
}

// RatSpec is the decoded rat prefab.
type RatSpec struct {
	Name string
	Rat  RatComponentSpec
	Body PhysicsBodyComponentSpec
	Ramp *DistanceRampComponentSpec
}

func LoadRatSpec() (*RatSpec, error) {
	build, err := LoadEntityBuildSpec("rat.yaml")
	if err != nil {
		return nil, err
	}

	spec := &RatSpec{
		Name: build.Name,
		Rat: RatComponentSpec{
			HeadingX: 1,
			Params:   swarm.DefaultParams(),
		},
	}

	if raw, ok := build.Components["rat"]; ok {
		b, err := yaml.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("prefabs: rat.yaml: rat: %w", err)
		}
		// Decode over the defaults so omitted fields survive.
		if err := yaml.Unmarshal(b, &spec.Rat); err != nil {
			return nil, fmt.Errorf("prefabs: rat.yaml: rat: %w", err)
		}
	}

	body, err := DecodeComponentSpec[PhysicsBodyComponentSpec](build.Components["physics_body"])
	if err != nil {
		return nil, fmt.Errorf("prefabs: rat.yaml: physics_body: %w", err)
	}
	spec.Body = body

	if raw, ok := build.Components["distance_ramp"]; ok {
		ramp, err := DecodeComponentSpec[DistanceRampComponentSpec](raw)
		if err != nil {
			return nil, fmt.Errorf("prefabs: rat.yaml: distance_ramp: %w", err)
		}
		spec.Ramp = &ramp
	}

	return spec, nil
}
