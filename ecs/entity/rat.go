package entity

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"github.com/milk9111/ratswarm/ecs"
	"github.com/milk9111/ratswarm/ecs/component"
	"github.com/milk9111/ratswarm/prefabs"
	"github.com/milk9111/ratswarm/swarm"
	"golang.org/x/image/colornames"
	"gonum.org/v1/gonum/spatial/r2"
)

// RatRamp is a ramp prefab resolved once per spawn batch and shared by every
// rat that uses it.
type RatRamp struct {
	Name    string
	Config  swarm.RampConfig
	Binding *swarm.Binding
}

// LoadRatRamp loads the named ramp. A ramp that reads fine but fails
// validation is still returned, unbound, so the swarm applies it by name
// and reports the failure per tick instead of refusing to spawn.
func LoadRatRamp(name string) (*RatRamp, error) {
	cfg, b, err := prefabs.LoadRamp(name)
	if err != nil {
		if !errors.Is(err, swarm.ErrUnknownParam) && !errors.Is(err, swarm.ErrInvalidRamp) {
			return nil, err
		}
		log.Printf("entity: ramp %s unbound: %v", name, err)
	}
	return &RatRamp{Name: name, Config: cfg, Binding: b}, nil
}

// NewRat spawns one rat at (x, y) moving along the prefab heading at its
// configured speed. ramp may be nil.
func NewRat(w *ecs.World, spec *prefabs.RatSpec, ramp *RatRamp, x, y float64) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("rat: nil spec")
	}

	e := ecs.CreateEntity(w)

	params := spec.Rat.Params
	heading := r2.Vec{X: spec.Rat.HeadingX, Y: spec.Rat.HeadingY}
	if n := r2.Norm(heading); n > 0 {
		heading = r2.Scale(1/n, heading)
	} else {
		heading = r2.Vec{X: 1}
	}

	var c color.Color = colornames.Tan
	if spec.Rat.Color != nil && spec.Rat.Color.Color != nil {
		c = spec.Rat.Color.Color
	}

	if err := ecs.Add(w, e, component.RatTagComponent.Kind(), &component.RatTag{}); err != nil {
		return 0, fmt.Errorf("rat: add tag: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("rat: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.RatComponent.Kind(), &component.Rat{
		Velocity: r2.Scale(params.Speed, heading),
		Params:   params,
		Color:    c,
	}); err != nil {
		return 0, fmt.Errorf("rat: add rat: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Radius:     spec.Body.Radius,
		Mass:       spec.Body.Mass,
		Friction:   spec.Body.Friction,
		Elasticity: spec.Body.Elasticity,
	}); err != nil {
		return 0, fmt.Errorf("rat: add physics body: %w", err)
	}

	if ramp != nil {
		if err := ecs.Add(w, e, component.DistanceRampComponent.Kind(), &component.DistanceRamp{
			Name:    ramp.Name,
			Config:  ramp.Config,
			Binding: ramp.Binding,
		}); err != nil {
			return 0, fmt.Errorf("rat: add distance ramp: %w", err)
		}
	}

	return e, nil
}
