package entity

import (
	"fmt"
	"math/rand"

	"github.com/milk9111/ratswarm/ecs"
	"github.com/milk9111/ratswarm/ecs/component"
	"github.com/milk9111/ratswarm/prefabs"
)

// NewArena creates the walled level bounds entity.
func NewArena(w *ecs.World, b prefabs.BoundsSpec) (ecs.Entity, error) {
	if b.MaxX <= b.MinX || b.MaxY <= b.MinY {
		return 0, fmt.Errorf("arena: empty bounds %+v", b)
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		MinX: b.MinX,
		MinY: b.MinY,
		MaxX: b.MaxX,
		MaxY: b.MaxY,
	}); err != nil {
		return 0, err
	}
	return e, nil
}

// NewTarget creates the single target entity. It stays inactive until the
// target system reports a position.
func NewTarget(w *ecs.World) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TargetTagComponent.Kind(), &component.TargetTag{}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.TargetComponent.Kind(), &component.Target{}); err != nil {
		return 0, err
	}
	return e, nil
}

// LoadSwarmToWorld builds the arena, the target and the rat population.
// rampName overrides the ramp named by the rat prefab when non-empty;
// population overrides the swarm prefab when positive.
func LoadSwarmToWorld(w *ecs.World, sw prefabs.SwarmSpec, rat *prefabs.RatSpec, rampName string, population int) ([]ecs.Entity, error) {
	if _, err := NewArena(w, sw.Bounds); err != nil {
		return nil, err
	}
	if _, err := NewTarget(w); err != nil {
		return nil, err
	}

	if rampName == "" && rat.Ramp != nil {
		rampName = rat.Ramp.Ramp
	}
	var ramp *RatRamp
	if rampName != "" {
		r, err := LoadRatRamp(rampName)
		if err != nil {
			return nil, err
		}
		ramp = r
	}

	if population <= 0 {
		population = sw.Population
	}
	rng := rand.New(rand.NewSource(sw.Seed))
	rats := make([]ecs.Entity, 0, population)
	for i := 0; i < population; i++ {
		x := sw.Spawn.MinX + rng.Float64()*(sw.Spawn.MaxX-sw.Spawn.MinX)
		y := sw.Spawn.MinY + rng.Float64()*(sw.Spawn.MaxY-sw.Spawn.MinY)
		e, err := NewRat(w, rat, ramp, x, y)
		if err != nil {
			return nil, err
		}
		rats = append(rats, e)
	}
	return rats, nil
}
